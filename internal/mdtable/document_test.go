package mdtable

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "aligns table with short dash cells as text",
			in:   "|a|bb|\n|-|--|\n|ccc|d|",
			want: "| a   | bb |\n| -   | -- |\n| ccc | d  |",
		},
		{
			name: "no table",
			in:   "hello\n\nworld\n",
			want: "hello\n\nworld\n",
		},
		{
			name: "flush at end of document",
			in:   "|x|y|\n|1|2|",
			want: "| x | y |\n| 1 | 2 |",
		},
		{
			name: "blank line closes table",
			in:   "|a|\n|bbb|\n\n|c|\n",
			want: "| a   |\n| bbb |\n\n| c |\n",
		},
		{
			name: "text line closes table and is kept whole",
			in:   "|a|\n|bb|\nafter the table\n|c|",
			want: "| a  |\n| bb |\nafter the table\n| c |",
		},
		{
			name: "tables widen independently",
			in:   "|a|\n\n|bbbb|",
			want: "| a |\n\n| bbbb |",
		},
		{
			name: "indented bar is not a table",
			in:   "  |a|b|\n|c|",
			want: "  |a|b|\n| c |",
		},
		{
			name: "empty document",
			in:   "",
			want: "",
		},
		{
			name: "whitespace preserved outside tables",
			in:   "  lead\t \n\n   \n|x|",
			want: "  lead\t \n\n   \n| x |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Format(tt.in)); diff != "" {
				t.Fatalf("Format mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	docs := []string{
		"# Title\n\n|a|bb|\n|-|--|\n|ccc|d|\n\ntext\n",
		"|x|y|\n|1|2|",
		"|a|\n|bbb|c|dddd|\n|ee|f|\nend",
		"| h |\n|-----------|\n| value |\n",
		"|日本|x|\n|abcd|y|\n",
	}

	f := New()
	for _, doc := range docs {
		once := f.Format(doc)
		twice := f.Format(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("second pass changed output for %q (-first +second):\n%s", doc, diff)
		}
	}
}

func TestFormatPreservesLineCount(t *testing.T) {
	doc := "intro\n|a|b|\n|---|---|\n|1|2|\n|3|\nmiddle\n\n|z|\n"
	got := Format(doc)
	if strings.Count(got, "\n") != strings.Count(doc, "\n") {
		t.Fatalf("line count changed:\n%q\n%q", doc, got)
	}
}

func TestFormatDocumentStats(t *testing.T) {
	res := New().FormatDocument("|a|\n|b|\n\ntext\n|c|")
	if res.Tables != 2 {
		t.Errorf("expected 2 tables, got %d", res.Tables)
	}
	if res.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", res.Rows)
	}
	if res.Changed != true {
		t.Errorf("expected changed document")
	}

	res = New().FormatDocument("| a |\n")
	if res.Changed {
		t.Errorf("expected formatted document to be unchanged, got %q", res.Text)
	}
	if res.Tables != 1 || res.Rows != 1 {
		t.Errorf("unexpected stats %+v", res)
	}

	res = New().FormatDocument("plain\n")
	if res.Tables != 0 || res.Rows != 0 || res.Changed {
		t.Errorf("unexpected stats for plain text %+v", res)
	}
}

func TestClassifierStates(t *testing.T) {
	c := &classifier{f: New()}
	if c.state != stateScanning {
		t.Fatalf("expected initial scanning state")
	}

	c.feed("")
	if c.state != stateScanning || len(c.table) != 0 {
		t.Fatalf("empty line should keep scanning")
	}

	c.feed("|a|")
	if c.state != stateInTable || len(c.table) != 1 {
		t.Fatalf("row should open a table")
	}

	c.feed("|b|")
	if c.state != stateInTable || len(c.table) != 2 {
		t.Fatalf("row should extend the table")
	}

	c.feed("text")
	if c.state != stateScanning || c.table != nil {
		t.Fatalf("text should close the table")
	}

	c.feed("|c|")
	out := c.close()
	want := []string{"", "| a |", "| b |", "text", "| c |"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatConcurrent(t *testing.T) {
	f := New()
	done := make(chan string, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- f.Format("|a|bb|\n|ccc|d|")
		}()
	}
	for i := 0; i < cap(done); i++ {
		if got := <-done; got != "| a   | bb |\n| ccc | d  |" {
			t.Fatalf("unexpected output %q", got)
		}
	}
}
