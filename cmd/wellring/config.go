package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/wellring/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Defaults()
			if effective {
				cfg = *a.cfg
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, "print the merged file, environment and flag settings instead")
	return cmd
}
