package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/mdfmt/internal/config"
	"github.com/salmonumbrella/mdfmt/internal/mdtable"
)

const (
	widthModeRunes   = "runes"
	widthModeDisplay = "display"
)

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// resolveSetting picks a value with precedence: flag (if set) > env > config.
func resolveSetting(cmd *cobra.Command, flagName, flagValue, envKey, cfgValue string) string {
	if flagChanged(cmd, flagName) {
		return strings.TrimSpace(flagValue)
	}
	if v := strings.TrimSpace(envGet(envKey)); v != "" {
		return v
	}
	return strings.TrimSpace(cfgValue)
}

// resolveWidthMode returns the cell width mode, defaulting to runes.
func resolveWidthMode(cmd *cobra.Command, cfg *config.Config) (string, error) {
	var cfgValue string
	if cfg != nil {
		cfgValue = cfg.WidthMode
	}
	mode := strings.ToLower(resolveSetting(cmd, "width-mode", widthMode, "MDFMT_WIDTH_MODE", cfgValue))
	switch mode {
	case "":
		return widthModeRunes, nil
	case widthModeRunes, widthModeDisplay:
		return mode, nil
	default:
		return "", ValidationError{Message: fmt.Sprintf("invalid width mode %q (expected runes|display)", mode)}
	}
}

// resolveLogLevel returns the logger level. --verbose wins, --quiet raises
// the floor to warn.
func resolveLogLevel(cmd *cobra.Command, cfg *config.Config) (log.Level, error) {
	if verbose {
		return log.DebugLevel, nil
	}
	var cfgValue string
	if cfg != nil {
		cfgValue = cfg.LogLevel
	}
	level, err := parseLogLevel(resolveSetting(cmd, "log-level", logLevel, "MDFMT_LOG_LEVEL", cfgValue))
	if err != nil {
		return level, err
	}
	if quietFlag && level < log.WarnLevel {
		level = log.WarnLevel
	}
	return level, nil
}

func newFormatter(mode string) *mdtable.Formatter {
	if mode == widthModeDisplay {
		return mdtable.New(mdtable.WithWidthFunc(mdtable.DisplayWidth))
	}
	return mdtable.New()
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
