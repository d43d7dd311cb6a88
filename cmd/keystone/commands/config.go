package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/app"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

// config init: write the resolved settings to the config file.
func configInitCmd() *cobra.Command {
	var (
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the current settings to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipCompat: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := out
			if path == "" {
				p, err := app.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := app.WriteConfigFile(cfg, path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "config file to write (default $XDG_CONFIG_HOME/keystone/keystone.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
