// Package config loads the jsxtext configuration file.
//
// An example of the .jsxtext.yaml file:
//
//	extensions: [.mdx]
//	skip-dirs: [dist, build]
//	wrapper: span
//	severity: warning
//	format: text
//	skip: 'name endsWith ".stories.jsx" || size > 1000000'
//
// The skip predicate is an expr-lang expression evaluated for every file
// against path, name, dir, ext and size.
package config
