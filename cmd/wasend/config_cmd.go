package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/config"
	"github.com/entrhq/wasend/pkg/whatsapp"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration, including the selector map",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		effective := *cfg
		effective.Selectors = whatsapp.DefaultSelectors().Merge(cfg.Selectors).Overrides()
		data, err := yaml.Marshal(&effective)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, string(data))

		kind, _ := browser.ParseKind(cfg.Browser)
		profile := browser.NewProfileLocator().Discover(kind)
		if profile == "" {
			profile = "(none found, a temporary profile will be used)"
		}
		fmt.Fprintf(out, "# profile directory: %s\n", profile)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := rootFlags.ConfigFile
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}

		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
