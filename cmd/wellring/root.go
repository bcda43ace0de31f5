package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/wellring/config"
	"github.com/lixenwraith/wellring/parameter"
)

// app carries state shared by every subcommand after PersistentPreRunE
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "wellring",
		Short:         "Agents orbiting attractor wells in an annular arena",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "TOML config file")
	flags.Uint64("seed", parameter.DefaultSeed, "random seed for agent and well placement and heading noise")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("sim.seed", flags.Lookup("seed"))
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))

	root.AddCommand(newRunCmd(a), newHeadlessCmd(a), newConfigCmd(a))
	return root
}
