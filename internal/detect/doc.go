// Package detect implements the sibling conflict check: a conditional text
// interpolation like {cond && 'text'} rendered next to other text or simple
// value interpolations of the same parent, without a wrapping element.
//
// Only the immediate operands of the logical expression are examined. A chain
// like {a && b && 'text'} is checked as (a && b) && 'text', while
// {a && ('x' || b)} is not reported since neither immediate operand is a
// literal.
package detect
