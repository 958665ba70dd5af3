package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FunnySam/runelite/pkg/config"
)

func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage placement profiles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Print a new profile ID",
		Long: `Print a new profile ID. Pass it with --profile, OVERLAYCTL_PROFILE or the
"profile" setting to keep a separate set of placements.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewProfileID())
			return nil
		},
	})
	return cmd
}

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect overlayctl settings",
	}
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.settingsFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSettings()
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				printWarning(cmd.OutOrStdout(), "%s", err)
			}

			w := cmd.OutOrStdout()
			printKeyValue(w, "backend", s.Backend)
			printKeyValue(w, "profile", orDefault(s.Profile))
			printKeyValue(w, "timeout", s.Timeout.String())
			switch s.Backend {
			case config.BackendFile:
				printKeyValue(w, "path", orDefault(s.File.Path))
			case config.BackendRedis:
				printKeyValue(w, "addr", s.Redis.Addr)
				printKeyValue(w, "db", fmt.Sprint(s.Redis.DB))
				printKeyValue(w, "prefix", s.Redis.Prefix)
			case config.BackendMongo:
				printKeyValue(w, "uri", s.Mongo.URI)
				printKeyValue(w, "database", s.Mongo.Database)
				printKeyValue(w, "collection", s.Mongo.Collection)
			}
			return nil
		},
	}
}

func orDefault(s string) string {
	if s == "" {
		return StyleDim.Render("(default)")
	}
	return s
}
