package config

import (
	"encoding"
	"fmt"
)

// Severity of reported problems.
type Severity int

const (
	_ Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityHint
)

var severityValueMap = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityHint:    "hint",
}

func (s Severity) String() string {
	v, ok := severityValueMap[s]
	if !ok {
		return fmt.Sprintf("severity-invalid(%d)", s)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*Severity)(nil)
	_ encoding.TextMarshaler   = Severity(0)
)

func (s *Severity) UnmarshalText(b []byte) error {
	for k, v := range severityValueMap {
		if v == string(b) {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", b)
}

func (s Severity) MarshalText() ([]byte, error) {
	v, ok := severityValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Severity(%d)", s)
	}

	return []byte(v), nil
}

// Format of the report output.
type Format int

const (
	_ Format = iota
	FormatText
	FormatJSON
	FormatLSP
)

var formatValueMap = map[Format]string{
	FormatText: "text",
	FormatJSON: "json",
	FormatLSP:  "lsp",
}

func (f Format) String() string {
	v, ok := formatValueMap[f]
	if !ok {
		return fmt.Sprintf("format-invalid(%d)", f)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*Format)(nil)
	_ encoding.TextMarshaler   = Format(0)
)

func (f *Format) UnmarshalText(b []byte) error {
	for k, v := range formatValueMap {
		if v == string(b) {
			*f = k
			return nil
		}
	}

	return fmt.Errorf("unknown output format %q", b)
}

func (f Format) MarshalText() ([]byte, error) {
	v, ok := formatValueMap[f]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Format(%d)", f)
	}

	return []byte(v), nil
}
