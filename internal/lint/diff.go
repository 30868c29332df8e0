package lint

import (
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 2

type diffLine struct {
	op   diffpatch.Operation
	text string
}

// Diff writes a unified diff of a file before and after fixes. Nothing is
// written when the contents are equal.
func Diff(w io.Writer, name string, before, after []byte) error {
	lines := diffLines(string(before), string(after))

	var changed bool
	for _, l := range lines {
		if l.op != diffpatch.DiffEqual {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s (fixed)\n", name, name)

	var oldLine, newLine int
	for i := 0; i < len(lines); {
		if lines[i].op == diffpatch.DiffEqual {
			oldLine++
			newLine++
			i++
			continue
		}

		// A hunk spans changes separated by at most 2*diffContext equal lines.
		start := max(i-diffContext, 0)
		for j := i - 1; j >= start; j-- {
			if lines[j].op != diffpatch.DiffEqual {
				start = j + 1
				break
			}
		}
		end := i
		for end < len(lines) {
			if lines[end].op != diffpatch.DiffEqual {
				end++
				continue
			}
			run := end
			for run < len(lines) && lines[run].op == diffpatch.DiffEqual {
				run++
			}
			if run == len(lines) || run-end > 2*diffContext {
				end = min(end+diffContext, len(lines))
				break
			}
			end = run
		}

		oldStart := oldLine - (i - start) + 1
		newStart := newLine - (i - start) + 1
		var oldCount, newCount int
		for _, l := range lines[start:end] {
			switch l.op {
			case diffpatch.DiffEqual:
				oldCount++
				newCount++
			case diffpatch.DiffDelete:
				oldCount++
			case diffpatch.DiffInsert:
				newCount++
			}
		}

		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines[start:end] {
			switch l.op {
			case diffpatch.DiffEqual:
				b.WriteString(" ")
			case diffpatch.DiffDelete:
				b.WriteString("-")
			case diffpatch.DiffInsert:
				b.WriteString("+")
			}
			b.WriteString(l.text)
			b.WriteString("\n")
		}

		for _, l := range lines[i:end] {
			switch l.op {
			case diffpatch.DiffEqual:
				oldLine++
				newLine++
			case diffpatch.DiffDelete:
				oldLine++
			case diffpatch.DiffInsert:
				newLine++
			}
		}
		i = end
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

// diffLines computes a line level diff.
func diffLines(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, b, table := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var res []diffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			res = append(res, diffLine{op: d.Type, text: line})
		}
	}

	return res
}
