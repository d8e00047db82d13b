package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/mdfmt/internal/config"
	"github.com/salmonumbrella/mdfmt/internal/output"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf("mdfmt version %s (commit: %s, built: %s)\n", version, commit, date)
}

// Global flags
var (
	outputFmt  string
	outputType output.Format
	configFile string
	queryExpr  string
	queryFile  string
	errorFmt   string
	quietFlag  bool
	verbose    bool
	widthMode  string
	logLevel   string
)

// Root command flags
var inplace bool

// Resolved in PersistentPreRunE.
var (
	activeConfig    = &config.Config{}
	activeWidthMode = widthModeRunes
)

var rootCmd = &cobra.Command{
	Use:   "mdfmt [flags] <input> [output]",
	Short: "Align the columns of markdown tables",
	Long: `mdfmt re-renders every pipe table in a markdown document so that each
column has a uniform width and the cell delimiters line up.

A table is any run of consecutive lines beginning with '|'. Header
separator cells (three or more dashes) are redrawn to the column width.
Everything outside tables is copied unchanged.

Use - as the input to read from stdin. Without an output path the result
is printed to stdout.

Environment Variables:
  MDFMT_WIDTH_MODE  Cell width mode (runes|display)
  MDFMT_LOG_LEVEL   Log level (debug|info|warn|error)`,
	Version:       version,
	Args:          cobra.RangeArgs(1, 2),
	SilenceErrors: true,
	RunE:          runFormat,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{}
		if !isConfigCommand(cmd) {
			loadedCfg, err := loadConfigFromFlag()
			if err != nil {
				return formatConfigLoadError(err)
			}
			cfg = loadedCfg
		}
		activeConfig = cfg

		// Output format selection: --output > config > default
		formatStr := outputFmt
		if !flagChanged(cmd, "output") && strings.TrimSpace(cfg.OutputFormat) != "" {
			formatStr = strings.TrimSpace(cfg.OutputFormat)
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return ValidationError{Message: err.Error()}
		}
		outputType = format
		outputFmt = string(format)

		// jq query
		if queryExpr != "" && queryFile != "" {
			return ValidationError{Message: "use only one of --query or --query-file"}
		}
		if queryFile != "" {
			loaded, err := readInputSource(queryFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			queryExpr = strings.TrimSpace(loaded)
		}

		// Default quiet mode for non-interactive structured output
		if !flagChanged(cmd, "quiet") && !isTerminal(cmd.OutOrStdout()) && output.IsStructured(outputType) {
			quietFlag = true
		}

		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}
		level, err := resolveLogLevel(cmd, cfg)
		if err != nil {
			return err
		}
		mode, err := resolveWidthMode(cmd, cfg)
		if err != nil {
			return err
		}
		activeWidthMode = mode

		logger := newLogger(cmd.ErrOrStderr(), level)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = output.WithFormat(ctx, outputType)
		ctx = output.WithQuery(ctx, queryExpr)
		ctx = output.WithQuiet(ctx, quietFlag)
		ctx = WithErrorFormat(ctx, errorFmt)
		ctx = withLogger(ctx, logger)
		cmd.SetContext(ctx)

		// Arguments are valid by now; later failures are not usage errors.
		cmd.SilenceUsage = true

		logger.Debug("settings resolved", "output", outputType, "width_mode", activeWidthMode, "level", level)
		return nil
	},
}

func isConfigCommand(cmd *cobra.Command) bool {
	return cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config")
}

// Execute runs the root command
func Execute() error {
	executed, err := rootCmd.ExecuteC()
	if err != nil {
		ctx := context.Background()
		if executed != nil && executed.Context() != nil {
			ctx = executed.Context()
		}
		printCommandError(ctx, err)
		return err
	}
	return nil
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() output.Format {
	if outputType != "" {
		return outputType
	}
	parsed, err := output.ParseFormat(outputFmt)
	if err != nil {
		return output.FormatText
	}
	return parsed
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input := args[0]
	var outputPath string
	if len(args) > 1 {
		outputPath = args[1]
	}

	if inplace && isStdinSource(input) {
		return ValidationError{Message: "--inplace requires an input file, not stdin"}
	}

	stdin := stdinFromContext(ctx)
	if isStdinSource(input) && isTerminal(stdin) && !output.QuietFromContext(ctx) {
		logger.Info("reading markdown from the terminal, finish with Ctrl-D")
	}
	doc, err := readInputSource(input, stdin)
	if err != nil {
		return err
	}

	res := newFormatter(activeWidthMode).FormatDocument(doc)
	logger.Debug("formatted document", "input", input, "tables", res.Tables, "rows", res.Rows, "changed", res.Changed)

	switch {
	case inplace:
		if outputPath != "" {
			logger.Warn("output path is ignored because --inplace was supplied", "output", outputPath)
		}
		wd, err := getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		dest := filepath.Join(wd, filepath.Base(input))
		logger.Debug("writing in place", "path", dest)
		return writeOutput(dest, res.Text)
	case outputPath != "":
		return writeOutput(outputPath, res.Text)
	default:
		text := res.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := fmt.Fprint(stdoutFromContext(ctx), text)
		return err
	}
}

func init() {
	rootCmd.SetVersionTemplate(versionTemplate())

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format for reports (text|json|ndjson|table|yaml)")
	rootCmd.PersistentFlags().StringVar(&queryExpr, "query", "", "jq expression to filter JSON output")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read jq expression from file (use - for stdin)")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error, env: MDFMT_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&widthMode, "width-mode", widthModeRunes, "Cell width measure (runes|display, env: MDFMT_WIDTH_MODE)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/mdfmt/config.yaml)")

	rootCmd.Flags().BoolVarP(&inplace, "inplace", "i", false, "Overwrite the input file (written to its base name in the current directory)")
}

func isTerminal(v interface{}) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
