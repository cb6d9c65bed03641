package domain

import (
	"strings"
	"time"
)

// Finding is the result of a health check that did not pass.
type Finding struct {
	Check    string   `json:"check"`
	Severity string   `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message,omitempty"`
	Paths    []string `json:"paths,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// String renders the finding the way it is shown after an install: title,
// explanation, then the offending paths indented below.
func (f Finding) String() string {
	var b strings.Builder
	b.WriteString(f.Title)
	b.WriteString("\n")
	if f.Message != "" {
		b.WriteString(f.Message)
		b.WriteString("\n")
	}
	for _, p := range f.Paths {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

// AuditReport collects the outcome of auditing one installed formula.
type AuditReport struct {
	Formula     string    `json:"formula"`
	Keg         string    `json:"keg,omitempty"`
	TapRevision string    `json:"tap_revision,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Findings    []Finding `json:"findings"`
	Failure     *Finding  `json:"failure,omitempty"`
}

// Passed reports whether the audit found nothing that blocks the install.
func (r AuditReport) Passed() bool { return r.Failure == nil }

// CaveatsReport is the advisory text for one installed formula.
type CaveatsReport struct {
	Formula string `json:"formula"`
	Caveats string `json:"caveats"`
	Empty   bool   `json:"empty"`
}
