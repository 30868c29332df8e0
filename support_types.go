package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/sirkon/jsxtext/internal/config"
)

var (
	_ flag.Value = (*extensionsValue)(nil)
	_ flag.Value = (*severityValue)(nil)
)

// extensionsValue collects markup file extensions from a comma separated
// list. The flag may be repeated.
type extensionsValue []string

func (e *extensionsValue) String() string {
	return strings.Join(*e, ",")
}

func (e *extensionsValue) Set(text string) error {
	for _, ext := range strings.Split(text, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		*e = append(*e, ext)
	}

	return nil
}

// severityValue overrides the configured severity when set.
type severityValue struct {
	v   config.Severity
	set bool
}

func (s *severityValue) String() string {
	if !s.set {
		return ""
	}

	return s.v.String()
}

func (s *severityValue) Set(text string) error {
	if err := s.v.UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("set severity: %w", err)
	}
	s.set = true

	return nil
}
