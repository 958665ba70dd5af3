package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
	"github.com/FunnySam/runelite/pkg/overlay"
)

// clearValue passed to a set flag deletes the stored value.
const clearValue = "none"

// standalone stands in for an overlay addressed by name only. The registry
// loads and saves preferences by name, so declared placement is irrelevant.
func standalone(name string) (*overlay.Base, error) {
	if err := apperrors.ValidateOverlayName(name); err != nil {
		return nil, err
	}
	return overlay.NewBase(name, overlay.LayerAboveScene, overlay.PositionTopLeft, overlay.PriorityNone), nil
}

func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the stored placement of an overlay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := standalone(args[0])
			if err != nil {
				return err
			}
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			overlay.NewManager(store, c.Logger).Add(o)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render(o.Name()))
			printKeyValue(w, "location", orUnset(o.PreferredLocation()))
			printKeyValue(w, "size", orUnset(o.PreferredSize()))
			printKeyValue(w, "position", orUnset(o.PreferredPosition()))
			return nil
		},
	}
}

type setOptions struct {
	location string
	size     string
	position string
}

func (c *CLI) setCommand() *cobra.Command {
	var opts setOptions

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Store placement preferences for an overlay",
		Long: `Store placement preferences for an overlay.

Flags that are not given keep their stored value; "none" deletes it.

  overlayctl set XpTracker --location 120:45 --size 200x80
  overlayctl set XpTracker --position BOTTOM_RIGHT --location none`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := standalone(args[0])
			if err != nil {
				return err
			}
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			reg := overlay.NewManager(store, c.Logger)
			reg.Add(o)

			f := cmd.Flags()
			if f.Changed("location") {
				p, err := parsePreference[overlay.Point](opts.location)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "--location")
				}
				o.SetPreferredLocation(p)
			}
			if f.Changed("size") {
				d, err := parsePreference[overlay.Dimension](opts.size)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "--size")
				}
				o.SetPreferredSize(d)
			}
			if f.Changed("position") {
				p, err := parsePosition(opts.position)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidPosition, err, "--position")
				}
				o.SetPreferredPosition(p)
			}

			reg.SaveOverlay(o)
			printSuccess(cmd.OutOrStdout(), "Saved placement for %s", o.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.location, "location", "", `preferred location as X:Y, or "none"`)
	cmd.Flags().StringVar(&opts.size, "size", "", `preferred size as WxH, or "none"`)
	cmd.Flags().StringVar(&opts.position, "position", "", `preferred anchor such as TOP_RIGHT, or "none"`)

	return cmd
}

// parsePreference decodes a flag value into a preference. "none" yields nil.
func parsePreference[T any, PT interface {
	*T
	UnmarshalText([]byte) error
}](s string) (*T, error) {
	if strings.EqualFold(s, clearValue) {
		return nil, nil
	}
	v := new(T)
	if err := PT(v).UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return v, nil
}

// parsePosition is parsePreference for anchors, ignoring case as flags do.
func parsePosition(s string) (*overlay.Position, error) {
	if strings.EqualFold(s, clearValue) {
		return nil, nil
	}
	p, err := overlay.ParsePosition(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *CLI) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <name>...",
		Short: "Delete the stored placement of overlays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			reg := overlay.NewManager(store, c.Logger)
			for _, name := range args {
				o, err := standalone(name)
				if err != nil {
					return err
				}
				reg.ResetOverlay(o)
				printSuccess(cmd.OutOrStdout(), "Reset %s", name)
			}
			return nil
		},
	}
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List overlays with stored placement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.Keys(cmd.Context(), overlay.ConfigGroup)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			names := overlayNames(keys)
			if len(names) == 0 {
				printInfo(w, "No stored placement")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}

// overlayNames extracts the sorted, distinct overlay names from placement
// keys. Keys without a placement suffix are ignored.
func overlayNames(keys []string) []string {
	var names []string
	for _, k := range keys {
		for _, suffix := range []string{overlay.KeyPreferredLocation, overlay.KeyPreferredPosition, overlay.KeyPreferredSize} {
			if name, ok := strings.CutSuffix(k, suffix); ok && name != "" {
				names = append(names, name)
				break
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
