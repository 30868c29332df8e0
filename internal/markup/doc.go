// Package markup defines the JSX markup tree and extracts it from host source
// files.
//
// The tree consists of three node variants:
//
//   - [Element]: a tag or a fragment with attributes and ordered children;
//   - [Text]: raw text between tags, or a string literal used as a child;
//   - [Container]: an {expression} rendered in place of its value.
//
// Expressions are a closed set of variants tagged by [Kind]. Only the subset
// of JavaScript that appears inside markup is parsed: host code around markup
// roots is scanned lexically and never interpreted, so [Parse] works the same
// way for .jsx, .tsx and Go files with embedded markup.
//
// Known limitation: regular expression literals in host code are not
// recognized, a quote inside one may hide markup that follows it.
package markup
