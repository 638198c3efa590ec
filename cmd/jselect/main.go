package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jselect/internal/config"
	"jselect/pkg/settings"
)

// errAborted is returned when the user quits without submitting
var errAborted = errors.New("aborted")

var rootCmd = &cobra.Command{
	Use:   "jselect",
	Short: "Pick one or more values in the terminal",
	Long: "jselect shows a searchable selection list and prints the chosen value. " +
		"Options come from a YAML or JSON file, or from a remote search endpoint.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jselect %s\n", settings.VersionInformation)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file (toml, yaml or json)")
	config.RegisterFlags(pf)

	f := rootCmd.Flags()
	f.StringP("options", "f", "", "options file (yaml or json)")
	f.StringArray("value", nil, "initial value, repeat for multi select")
	f.String("value-json", "", `initial selection as JSON, e.g. [{"id":"1","text":"One"}]`)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file named by --config, or the user config, and
// layers the explicitly set flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	svc := config.NewConfigService()
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = svc.LoadFromPath(path)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errAborted):
		cancel()
		os.Exit(130)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
