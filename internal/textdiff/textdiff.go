// Package textdiff renders line-oriented unified diffs.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

type line struct {
	op   diffmatchpatch.Operation
	text string
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func diffLines(before, after string) []line {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []line
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			out = append(out, line{op: d.Type, text: text})
		}
	}
	return out
}

// Unified returns a unified diff from before to after, labelled with name.
// Identical inputs produce an empty string.
func Unified(name, before, after string) string {
	if before == after {
		return ""
	}
	lines := diffLines(before, after)

	// oldAt[i] and newAt[i] are the line counts preceding lines[i].
	oldAt := make([]int, len(lines)+1)
	newAt := make([]int, len(lines)+1)
	for i, l := range lines {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.op != diffmatchpatch.DiffInsert {
			oldAt[i+1]++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newAt[i+1]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s (formatted)\n", name, name)
	for i := 0; i < len(lines); {
		if lines[i].op == diffmatchpatch.DiffEqual {
			i++
			continue
		}

		last := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != diffmatchpatch.DiffEqual {
				last = j
			} else if j-last > 2*Context {
				break
			}
		}
		start := max(0, i-Context)
		end := min(len(lines), last+Context+1)

		writeHunk(&b, lines[start:end], oldAt[start], oldAt[end]-oldAt[start], newAt[start], newAt[end]-newAt[start])
		i = end
	}
	return b.String()
}

func hunkRange(at, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", at)
	}
	if count == 1 {
		return fmt.Sprintf("%d", at+1)
	}
	return fmt.Sprintf("%d,%d", at+1, count)
}

func writeHunk(b *strings.Builder, lines []line, oldAt, oldCount, newAt, newCount int) {
	fmt.Fprintf(b, "@@ -%s +%s @@\n", hunkRange(oldAt, oldCount), hunkRange(newAt, newCount))
	for _, l := range lines {
		switch l.op {
		case diffmatchpatch.DiffDelete:
			b.WriteByte('-')
		case diffmatchpatch.DiffInsert:
			b.WriteByte('+')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			b.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
