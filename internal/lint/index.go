package lint

import (
	"github.com/sirkon/rbtree"

	"github.com/sirkon/jsxtext/internal/markup"
)

// Index answers which markup node covers a source offset.
type Index struct {
	tree    *rbtree.Tree[*nodeSpan]
	parents map[markup.Node]*markup.Element
}

// NewIndex indexes every markup node of the file.
func NewIndex(f *markup.File) *Index {
	idx := &Index{
		tree:    rbtree.New[*nodeSpan](),
		parents: map[markup.Node]*markup.Element{},
	}
	markup.WalkFile(f, func(n markup.Node, parent *markup.Element) bool {
		idx.Add(n)
		if parent != nil {
			idx.parents[n] = parent
		}
		return true
	})

	return idx
}

// Add registers a node. Enclosing nodes must be added before the nodes
// they hold.
func (idx *Index) Add(n markup.Node) {
	if n.End() <= n.Pos() {
		return
	}
	attachInto(idx.tree, &nodeSpan{start: n.Pos(), end: n.End(), node: n})
}

// At returns the innermost node covering the offset, or nil.
func (idx *Index) At(offset int) markup.Node {
	res := idx.tree.Search(&nodeSpan{start: offset, end: offset + 1})
	if res == nil {
		return nil
	}
	return descendSearch(res, offset)
}

// Parent returns the element holding n among its children. It is nil for
// roots, attribute values and markup nested in expressions.
func (idx *Index) Parent(n markup.Node) *markup.Element {
	return idx.parents[n]
}
