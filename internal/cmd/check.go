package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/mdfmt/internal/mdtable"
	"github.com/salmonumbrella/mdfmt/internal/output"
	"github.com/salmonumbrella/mdfmt/internal/textdiff"
)

const stdinName = "<stdin>"

type checkCommandParams struct {
	list  bool
	diff  bool
	write bool
	fail  bool
}

var checkParams = checkCommandParams{}

// fileResult is one entry of the check report.
type fileResult struct {
	Path    string `json:"path" yaml:"path"`
	Changed bool   `json:"changed" yaml:"changed"`
	Tables  int    `json:"tables" yaml:"tables"`
	Rows    int    `json:"rows" yaml:"rows"`
	Written bool   `json:"written,omitempty" yaml:"written,omitempty"`
}

type checkReport []fileResult

func (r checkReport) changed() int {
	n := 0
	for _, f := range r {
		if f.Changed {
			n++
		}
	}
	return n
}

// Table renders the report for --output table.
func (r checkReport) Table() output.Table {
	t := output.Table{Headers: []string{"PATH", "CHANGED", "TABLES", "ROWS"}}
	for _, f := range r {
		t.Rows = append(t.Rows, []string{f.Path, strconv.FormatBool(f.Changed), strconv.Itoa(f.Tables), strconv.Itoa(f.Rows)})
	}
	return t
}

var checkCmd = &cobra.Command{
	Use:   "check [path|glob ...]",
	Short: "Report markdown files whose tables are not aligned",
	Long: `Check markdown files for unaligned tables.

Arguments may be files, directories (walked recursively) or globs such as
'docs/**/*.md'. Directories and globs only pick up files with one of the
configured extensions (default .md and .markdown). Without arguments the
document is read from stdin.

By default the paths of files that would change are printed. With '-d' a
unified diff is printed instead. With '-w' changed files are rewritten in
place. With '--fail' the command exits with status 2 if any file would
change.

With --output json|ndjson|yaml|table a report of every checked file is
printed instead, which --query can filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), &checkParams, args)
	},
}

func runCheck(ctx context.Context, params *checkCommandParams, args []string) error {
	logger := loggerFromContext(ctx)
	formatter := newFormatter(activeWidthMode)
	out := stdoutFromContext(ctx)
	report := reportRequested()

	results := checkReport{}
	if len(args) == 0 {
		if params.write {
			return ValidationError{Message: "--write requires file arguments"}
		}
		doc, err := readInputSource(stdinSource, stdinFromContext(ctx))
		if err != nil {
			return err
		}
		res := formatter.FormatDocument(doc)
		results = append(results, newFileResult(stdinName, res))
		if !report {
			if err := printChange(out, params, stdinName, doc, res); err != nil {
				return err
			}
		}
	} else {
		paths, err := resolvePaths(args, activeConfig.MarkdownExtensions())
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			logger.Warn("no markdown files matched", "args", args)
		}
		for _, path := range paths {
			result, err := checkFile(ctx, params, formatter, out, path, report)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
	}

	if report {
		if err := printStructured(ctx, results); err != nil {
			return err
		}
	}

	changed := results.changed()
	if !output.QuietFromContext(ctx) {
		logger.Info("check finished", "files", len(results), "unformatted", changed)
	}
	if params.fail && changed > 0 {
		return UnformattedError{Count: changed}
	}
	return nil
}

func reportRequested() bool {
	format := GetOutputFormat()
	return output.IsStructured(format) || format == output.FormatTable
}

func newFileResult(path string, res mdtable.Result) fileResult {
	return fileResult{Path: path, Changed: res.Changed, Tables: res.Tables, Rows: res.Rows}
}

func checkFile(ctx context.Context, params *checkCommandParams, formatter *mdtable.Formatter, out io.Writer, path string, report bool) (fileResult, error) {
	logger := loggerFromContext(ctx)

	doc, err := readInputSource(path, nil)
	if err != nil {
		return fileResult{}, err
	}
	res := formatter.FormatDocument(doc)
	result := newFileResult(path, res)
	logger.Debug("checked file", "path", path, "tables", res.Tables, "changed", res.Changed)

	if !report {
		if err := printChange(out, params, path, doc, res); err != nil {
			return result, err
		}
	}

	if params.write && res.Changed {
		if err := writeOutput(path, res.Text); err != nil {
			return result, err
		}
		result.Written = true
		logger.Debug("rewrote file", "path", path)
	}
	return result, nil
}

// printChange prints the path (or a diff with -d) of a document that would
// change. -l takes precedence over -d.
func printChange(out io.Writer, params *checkCommandParams, name, doc string, res mdtable.Result) error {
	if !res.Changed {
		return nil
	}
	if params.diff && !params.list {
		_, err := fmt.Fprint(out, textdiff.Unified(name, doc, res.Text))
		return err
	}
	_, err := fmt.Fprintln(out, name)
	return err
}

func init() {
	checkCmd.Flags().BoolVarP(&checkParams.list, "list", "l", false, "list files whose formatting would change")
	checkCmd.Flags().BoolVarP(&checkParams.diff, "diff", "d", false, "display a diff of the changes")
	checkCmd.Flags().BoolVarP(&checkParams.write, "write", "w", false, "rewrite files in place")
	checkCmd.Flags().BoolVar(&checkParams.fail, "fail", false, "exit with status 2 if any file would change")

	rootCmd.AddCommand(checkCmd)
}
