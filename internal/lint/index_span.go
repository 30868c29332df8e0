package lint

import (
	"github.com/sirkon/rbtree"

	"github.com/sirkon/jsxtext/internal/markup"
)

// nodeSpan stores a [start, end) span of a markup node and a nested RB-tree
// for spans fully contained in it.
type nodeSpan struct {
	start int
	end   int

	node     markup.Node
	children *rbtree.Tree[*nodeSpan]
}

// Cmp orders disjoint spans. Overlapping spans compare equal.
//
// Spans of a markup tree never overlap partially: any two overlapping spans
// are in a containment relationship. So "equal" means superspan or subspan
// and InsertReturn gives the overlapping entry to fix the hierarchy up.
func (n *nodeSpan) Cmp(other *nodeSpan) int {
	if n.end <= other.start {
		return -1
	}
	if n.start >= other.end {
		return 1
	}
	return 0
}

func contains(a, b *nodeSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// attachInto inserts span s into t:
//   - s is disjoint with every entry of t: it becomes a new entry;
//   - s contains the overlapping entry r: r is replaced in place by s and
//     the old r is attached under it;
//   - r contains s: s is attached into r's children.
//
// Spans must be added outer first, otherwise a superspan covering several
// existing entries would only adopt one of them.
func attachInto(t *rbtree.Tree[*nodeSpan], s *nodeSpan) {
	r := t.InsertReturn(s)
	if r == s {
		return
	}

	if contains(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*nodeSpan]()
		}
		attachInto(r.children, s)
		return
	}

	if contains(s, r) {
		old := *r
		*r = *s
		if r.children == nil {
			r.children = rbtree.New[*nodeSpan]()
		}
		attachInto(r.children, &old)
		return
	}

	panic("attachInto: partially overlapping spans")
}

func descendSearch(n *nodeSpan, pos int) markup.Node {
	if n == nil {
		return nil
	}
	if n.children == nil {
		return n.node
	}

	child := n.children.Search(&nodeSpan{start: pos, end: pos + 1})
	if child == nil {
		return n.node
	}
	if v := descendSearch(child, pos); v != nil {
		return v
	}
	return n.node
}
