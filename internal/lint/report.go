package lint

import (
	"cmp"
	"fmt"
	"go/token"
	"io"
	"slices"
	"sync"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/jsxrules"
)

// ReportEngine collects problems found in markup files. It is safe for
// concurrent use.
type ReportEngine struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase    ReportPhase
	Severity config.Severity

	// Message is zero for syntax errors.
	Message jsxrules.MessageID
	Text    string

	Pos token.Pos
	End token.Pos

	Fix *Fix
}

// ReportPhase marks the stage where a report was generated.
type ReportPhase int

const (
	_           ReportPhase = iota
	ReportParse             // markup extraction and parsing
	ReportCheck             // rule checks
)

func (p ReportPhase) String() string {
	switch p {
	case ReportParse:
		return "parse"
	case ReportCheck:
		return "check"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a ReportEngine to a fixed phase.
type ReporterPhase struct {
	parent *ReportEngine
	phase  ReportPhase
}

// Phase returns a reporter that sets the given phase for all reports
// produced through it.
func (r *ReportEngine) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record.
func (r *ReportEngine) Report(rep Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Report records a report under the bound phase. An empty text is resolved
// from the message catalog.
func (rp *ReporterPhase) Report(rep Report) {
	rep.Phase = rp.phase
	if rep.Text == "" {
		rep.Text, _ = jsxrules.Message(rep.Message)
	}
	rp.parent.Report(rep)
}

// Reports returns a snapshot of all collected records.
func (r *ReportEngine) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Sorted returns a snapshot of reports ordered by their position.
func (r *ReportEngine) Sorted() []Report {
	out := r.Reports()
	slices.SortStableFunc(out, func(a, b Report) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
	return out
}

// Len returns the number of collected reports.
func (r *ReportEngine) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// PrintSummary prints all collected reports in a compact form.
func (r *ReportEngine) PrintSummary(w io.Writer, fset *token.FileSet) {
	for _, rep := range r.Sorted() {
		pos := fset.Position(rep.Pos)
		fmt.Fprintf(w, "[%s] %s: %s (%s:%d)\n",
			rep.Phase,
			rep.Severity,
			rep.Text,
			pos.Filename,
			pos.Line,
		)
	}
}
