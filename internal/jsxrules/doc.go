// Package jsxrules defines the jsxtext rule metadata and its message catalog.
//
// Reporters refer to messages by [MessageID] only. Resolving an identifier
// into human-readable text is the job of whoever presents diagnostics, see
// [Message].
package jsxrules
