package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/FunnySam/runelite/pkg/overlay"
)

func (c *CLI) layersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers <manifest.toml>",
		Short: "Show draw order per layer for the overlays in a manifest",
		Long: `Register every overlay in the manifest, applying stored placement, and
print the layers in draw order. UNDER_WIDGETS overlays that were dragged to
a fixed location are listed under ABOVE_WIDGETS.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, store, err := c.openRegistry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			layers := reg.Layers()
			w := cmd.OutOrStdout()
			if len(layers) == 0 {
				printInfo(w, "No overlays declared")
				return nil
			}
			for _, l := range overlay.AllLayers() {
				list, ok := layers[l]
				if !ok {
					continue
				}
				fmt.Fprintln(w, StyleTitle.Render(l.String()))
				fmt.Fprintln(w, layerTable(list).Render())
			}
			return nil
		},
	}
}

// layerTable renders one layer's overlays in draw order.
func layerTable(list []overlay.Overlay) *table.Table {
	rows := make([][]string, len(list))
	for i, o := range list {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			o.Name(),
			o.Position().String(),
			o.Priority().String(),
			orUnset(o.PreferredLocation()),
			orUnset(o.PreferredSize()),
			orUnset(o.PreferredPosition()),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Overlay", "Position", "Priority", "Location", "Size", "Anchor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
}
