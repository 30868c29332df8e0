package lint

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/sirkon/jsxtext/internal/markup"
)

// TextEdit replaces source bytes [Pos, End) with NewText. Pos == End means
// insertion.
type TextEdit struct {
	Pos     int    `json:"pos"`
	End     int    `json:"end"`
	NewText string `json:"newText"`
}

// Fix is a set of edits resolving a single report.
type Fix struct {
	Message string
	Edits   []TextEdit
}

// WrapFix wraps the node into the tag, so that it becomes the only child of
// its new parent.
func WrapFix(node markup.Node, tag string) *Fix {
	return &Fix{
		Message: fmt.Sprintf("Wrap into <%s>", tag),
		Edits: []TextEdit{
			{Pos: node.Pos(), End: node.Pos(), NewText: "<" + tag + ">"},
			{Pos: node.End(), End: node.End(), NewText: "</" + tag + ">"},
		},
	}
}

// ErrOverlappingEdits is returned when edits touch the same source range.
var ErrOverlappingEdits = errors.New("overlapping edits")

// ApplyEdits applies edits to src. Edits are sorted by position, insertions
// at the same offset keep their relative order.
func ApplyEdits(src []byte, edits []TextEdit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return cmp.Compare(a.Pos, b.Pos)
	})

	var (
		buf  bytes.Buffer
		last int
	)
	for _, e := range sorted {
		if e.Pos < 0 || e.End < e.Pos || e.End > len(src) {
			return nil, fmt.Errorf("edit [%d, %d) is out of source bounds [0, %d)", e.Pos, e.End, len(src))
		}
		if e.Pos < last {
			return nil, fmt.Errorf("edit [%d, %d): %w", e.Pos, e.End, ErrOverlappingEdits)
		}

		buf.Write(src[last:e.Pos])
		buf.WriteString(e.NewText)
		last = e.End
	}
	buf.Write(src[last:])

	return buf.Bytes(), nil
}

// ApplyFixes applies fixes of all reports to src.
func ApplyFixes(src []byte, reports []Report) ([]byte, error) {
	var edits []TextEdit
	for _, rep := range reports {
		if rep.Fix == nil {
			continue
		}
		edits = append(edits, rep.Fix.Edits...)
	}
	if len(edits) == 0 {
		return src, nil
	}

	return ApplyEdits(src, edits)
}
