package jsxrules

import "fmt"

// MessageID identifies a diagnostic message of the rule.
type MessageID int

const (
	messageInvalid MessageID = iota

	NoUnwrappedJSX
)

var messageIDValueMap = map[MessageID]string{
	NoUnwrappedJSX: "noUnwrappedJSX",
}

// String returns the catalog key of the message.
// Example: "noUnwrappedJSX"
func (id MessageID) String() string {
	v, ok := messageIDValueMap[id]
	if !ok {
		return fmt.Sprintf("message-unknown(%d)", id)
	}

	return v
}

// ParseMessageID maps a catalog key back to its identifier.
func ParseMessageID(key string) (MessageID, bool) {
	for id, v := range messageIDValueMap {
		if v == key {
			return id, true
		}
	}

	return messageInvalid, false
}

// Type classifies what kind of issue a rule finds.
type Type string

const (
	TypeProblem    Type = "problem"
	TypeSuggestion Type = "suggestion"
	TypeLayout     Type = "layout"
)

// Fixable tells what kind of automatic rewrite a rule offers.
type Fixable string

const (
	FixableNone       Fixable = ""
	FixableCode       Fixable = "code"
	FixableWhitespace Fixable = "whitespace"
)

// Docs is the documentation part of the rule metadata.
type Docs struct {
	Description string
	Category    string
	URL         string
}

// RuleMeta describes a rule for registration and presentation.
type RuleMeta struct {
	Name     string
	Type     Type
	Fixable  Fixable
	Docs     Docs
	Messages map[string]string
}

// Meta is the metadata of the jsxtext rule.
var Meta = RuleMeta{
	Name:    "no-unwrapped-jsx-text",
	Type:    TypeProblem,
	Fixable: FixableCode,
	Docs: Docs{
		Description: "JSX text that share a common parent with other elements should be wrapped by a <span> tag",
		Category:    "Possible Errors",
		URL:         "https://github.com/sayari-analytics/graph-ui/issues/901",
	},
	Messages: map[string]string{
		"noUnwrappedJSX": "No unwrapped JSX text",
	},
}

// Message resolves a message identifier into its text.
func Message(id MessageID) (string, bool) {
	msg, ok := Meta.Messages[id.String()]
	return msg, ok
}
