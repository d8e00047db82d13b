package mdtable

import "strings"

type state int

const (
	stateScanning state = iota
	stateInTable
)

// Result is a formatted document plus what was done to it.
type Result struct {
	Text    string
	Tables  int
	Rows    int
	Changed bool
}

// classifier walks a document line by line, buffering table blocks and
// handing each one to the formatter when it closes.
type classifier struct {
	f      *Formatter
	state  state
	table  []string
	out    []string
	tables int
	rows   int
}

func (c *classifier) feed(line string) {
	isRow := strings.HasPrefix(line, delimiter)

	switch c.state {
	case stateScanning:
		if isRow {
			c.table = append(c.table, line)
			c.state = stateInTable
			return
		}
		c.out = append(c.out, line)
	case stateInTable:
		if isRow {
			c.table = append(c.table, line)
			return
		}
		c.flush()
		c.out = append(c.out, line)
	}
}

// flush formats the buffered block and returns to scanning.
func (c *classifier) flush() {
	if len(c.table) > 0 {
		c.out = append(c.out, c.f.FormatTable(c.table)...)
		c.tables++
		c.rows += len(c.table)
	}
	c.table = nil
	c.state = stateScanning
}

func (c *classifier) close() []string {
	if c.state == stateInTable {
		c.flush()
	}
	return c.out
}

// FormatDocument aligns every table block in doc. Lines outside table
// blocks are copied unchanged.
func (f *Formatter) FormatDocument(doc string) Result {
	lines := strings.Split(doc, "\n")
	c := &classifier{f: f, out: make([]string, 0, len(lines))}
	for _, line := range lines {
		c.feed(line)
	}

	text := strings.Join(c.close(), "\n")
	return Result{
		Text:    text,
		Tables:  c.tables,
		Rows:    c.rows,
		Changed: text != doc,
	}
}

// Format aligns every table block in doc.
func (f *Formatter) Format(doc string) string {
	return f.FormatDocument(doc).Text
}

var defaultFormatter = New()

// Format aligns every table block in doc using code point widths.
func Format(doc string) string {
	return defaultFormatter.Format(doc)
}
