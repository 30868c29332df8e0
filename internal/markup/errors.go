package markup

import "fmt"

// SyntaxError is a markup parsing failure. Offset points into the source the
// failing root was extracted from.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

func (p *parser) errorf(offset int, format string, a ...any) error {
	return &SyntaxError{
		Offset: offset,
		Msg:    fmt.Sprintf(format, a...),
	}
}
