// Package lint drives the jsxtext check over markup files.
//
// [Engine] parses a file, walks its markup trees depth-first, calls the
// sibling conflict check for every expression container and collects reports
// into a [ReportEngine]. Every violation carries a [Fix] wrapping the
// offending container into a tag. Printers render reports as text, JSON or
// LSP diagnostics, [Diff] shows what fixes would change.
package lint
