package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jselect/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: "Print the configuration after the config file and flags are applied. " +
		"With --write the result is saved instead, in the format of the file extension.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("write"); path != "" {
			if err := config.NewConfigService().SaveToPath(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		data, err := config.Marshal(config.Format(format), cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().String("format", string(config.FormatTOML), "output format: toml, yaml or json")
	configCmd.Flags().String("write", "", "save the configuration to this file")
}
