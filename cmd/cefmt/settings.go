package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cefmt/internal/config"
)

// loadConfig reads --config or discovers cefmt.toml from the working
// directory, then applies the persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	path, err := pf.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if pf.Changed("color") {
		if cfg.Output.Color, err = pf.GetString("color"); err != nil {
			return config.Config{}, err
		}
	}
	if pf.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// useColor resolves auto|on|off against stdout.
func useColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func flagBool(cmd *cobra.Command, name string) (bool, error) {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func flagString(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}
