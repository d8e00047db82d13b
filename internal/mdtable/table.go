// Package mdtable aligns the columns of pipe tables found in markdown text.
//
// A table block is any run of consecutive lines starting with '|'. Cells are
// padded so that every column has a uniform width across the whole block and
// header separator cells are redrawn as a dash run of that width. Nothing
// else in the document is touched.
package mdtable

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	delimiter = "|"
	dash      = '-'

	// minSeparatorLength is both the shortest dash run recognized as a
	// separator cell and the width such a cell contributes to its column.
	minSeparatorLength = 3
)

// WidthFunc measures the rendered length of a cell's content.
type WidthFunc func(string) int

// RuneWidth counts code points.
func RuneWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// DisplayWidth counts terminal cells, so wide CJK characters count as two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// IsSeparator reports whether cell is a header separator: at least three
// dashes and nothing else.
func IsSeparator(cell string) bool {
	if len(cell) < minSeparatorLength {
		return false
	}
	for i := 0; i < len(cell); i++ {
		if cell[i] != dash {
			return false
		}
	}
	return true
}

// ParseRow splits a table line into trimmed cells. One leading and one
// trailing delimiter are dropped before splitting.
func ParseRow(line string) []string {
	line = strings.TrimPrefix(line, delimiter)
	line = strings.TrimSuffix(line, delimiter)

	cells := strings.Split(line, delimiter)
	for i, cell := range cells {
		cells[i] = strings.Trim(cell, " ")
	}
	return cells
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithWidthFunc sets how cell content is measured. A nil func is ignored.
func WithWidthFunc(fn WidthFunc) Option {
	return func(f *Formatter) {
		if fn != nil {
			f.width = fn
		}
	}
}

// Formatter re-renders table blocks. It holds no per-document state and is
// safe for concurrent use.
type Formatter struct {
	width WidthFunc
}

// New returns a Formatter measuring cells with RuneWidth unless overridden.
func New(opts ...Option) *Formatter {
	f := &Formatter{width: RuneWidth}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// contribution is the width a cell claims in its column.
func (f *Formatter) contribution(cell string) int {
	if IsSeparator(cell) {
		return minSeparatorLength
	}
	return f.width(cell)
}

// columnWidths returns the target width of every column index reached by
// at least one row.
func (f *Formatter) columnWidths(rows [][]string) []int {
	var widths []int
	for _, cells := range rows {
		for j, cell := range cells {
			w := f.contribution(cell)
			if j == len(widths) {
				widths = append(widths, w)
				continue
			}
			if w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

// FormatTable aligns one table block. The result has exactly one line per
// input line, in order. Rows keep their own cell count.
func (f *Formatter) FormatTable(lines []string) []string {
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = ParseRow(line)
	}
	widths := f.columnWidths(rows)

	out := make([]string, len(rows))
	var b strings.Builder
	for i, cells := range rows {
		b.Reset()
		b.WriteString(delimiter)
		for j, cell := range cells {
			b.WriteByte(' ')
			if IsSeparator(cell) {
				b.WriteString(strings.Repeat(string(dash), widths[j]))
			} else {
				b.WriteString(cell)
				if pad := widths[j] - f.width(cell); pad > 0 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			b.WriteByte(' ')
			b.WriteString(delimiter)
		}
		out[i] = b.String()
	}
	return out
}
