package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	pkgconfig "github.com/oerc-s/primordia/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the kernel's effective configuration",
}

var configShowFlags struct {
	env string
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Load the effective configuration and print it as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := pkgconfig.Load(configShowFlags.env)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFlags.env, "env", "", "named config environment to merge over default.yaml")
	configCmd.AddCommand(configShowCmd)
}
