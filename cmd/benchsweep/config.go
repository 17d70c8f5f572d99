package main

import (
	"fmt"

	"benchsweep/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration settings",
	Long:  `View the configuration resolved from flags, environment, config file and defaults.`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display all configuration settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Current()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a specific configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !viper.IsSet(key) {
			return fmt.Errorf("key not found in configuration: %s", key)
		}
		value := viper.Get(key)
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
		return nil
	},
}
