package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/mdfmt/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/mdfmt/config.yaml.

You can view, set, or unset config keys such as output_format, width_mode,
extensions, and log_level.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		if structuredOutputRequested() {
			return printStructured(cmd.Context(), configOutput(cfg))
		}

		out := stdoutFromContext(cmd.Context())
		fmt.Fprintln(out, "Config:")
		fmt.Fprintf(out, "  output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "  width_mode: %s\n", cfg.WidthMode)
		fmt.Fprintf(out, "  extensions: %s\n", strings.Join(cfg.MarkdownExtensions(), ","))
		fmt.Fprintf(out, "  log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := supportedConfigKeys()
		sort.Strings(keys)

		if structuredOutputRequested() {
			return printStructured(cmd.Context(), keys)
		}

		out := stdoutFromContext(cmd.Context())
		fmt.Fprintln(out, "Supported keys:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %s\n", key)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if structuredOutputRequested() {
			return printStructured(cmd.Context(), map[string]string{"path": path})
		}
		_, err = fmt.Fprintln(stdoutFromContext(cmd.Context()), path)
		return err
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

func supportedConfigKeys() []string {
	return []string{
		"output_format",
		"width_mode",
		"extensions",
		"log_level",
	}
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "output_format":
		cfg.OutputFormat = value
	case "width_mode":
		mode := strings.ToLower(value)
		if mode != widthModeRunes && mode != widthModeDisplay {
			return ValidationError{Message: fmt.Sprintf("invalid width_mode %q (expected runes|display)", value)}
		}
		cfg.WidthMode = mode
	case "extensions":
		cfg.Extensions = config.ParseExtensions(value)
	case "log_level":
		if _, err := parseLogLevel(value); err != nil {
			return err
		}
		cfg.LogLevel = strings.ToLower(value)
	default:
		return ValidationError{Message: fmt.Sprintf("unknown config key: %s", key)}
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "output_format":
		cfg.OutputFormat = ""
	case "width_mode":
		cfg.WidthMode = ""
	case "extensions":
		cfg.Extensions = nil
	case "log_level":
		cfg.LogLevel = ""
	default:
		return ValidationError{Message: fmt.Sprintf("unknown config key: %s", key)}
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(cmd.Context(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	_, err = fmt.Fprintf(stdoutFromContext(cmd.Context()), "Updated %s\n", key)
	return err
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := clearConfigValue(cfg, key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(cmd.Context(), map[string]string{
			"status": "unset",
			"key":    key,
		})
	}

	_, err = fmt.Fprintf(stdoutFromContext(cmd.Context()), "Unset %s\n", key)
	return err
}

func configOutput(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"output_format": cfg.OutputFormat,
		"width_mode":    cfg.WidthMode,
		"extensions":    cfg.MarkdownExtensions(),
		"log_level":     cfg.LogLevel,
	}
}
