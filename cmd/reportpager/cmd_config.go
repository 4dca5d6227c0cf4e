package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/reportpager/config"
	"github.com/tsawler/reportpager/layout"
)

// effectiveConfig is what the config command prints.
type effectiveConfig struct {
	Heights               layout.HeightConfig `json:"heights" yaml:"heights"`
	AvailablePageHeight   float64             `json:"available_page_height" yaml:"available_page_height"`
	LargeSectionThreshold float64             `json:"large_section_threshold" yaml:"large_section_threshold"`
	Engine                config.Engine       `json:"engine" yaml:"engine"`
}

func newConfigCmd(a *app) *cobra.Command {
	var envHelp bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective height configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envHelp {
				help, err := config.EnvHelp()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), help)
				return nil
			}

			cfg, err := a.heightConfig()
			if err != nil {
				return err
			}
			return a.write(cmd, effectiveConfig{
				Heights:               cfg,
				AvailablePageHeight:   cfg.AvailablePageHeight(),
				LargeSectionThreshold: cfg.LargeSectionThreshold(),
				Engine:                a.config.Engine,
			})
		},
	}
	cmd.Flags().BoolVar(&envHelp, "env-help", false, "List the supported environment variables")

	return cmd
}
