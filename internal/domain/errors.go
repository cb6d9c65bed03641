package domain

import "fmt"

// IOFailure is an unexpected filesystem error hit while inspecting a keg.
type IOFailure struct {
	Op   string
	Path string
	Err  error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error { return e.Err }

// ProbeFailure is a subprocess probe of the user's environment that failed or
// returned output that could not be used.
type ProbeFailure struct {
	Probe string
	Err   error
}

func (e *ProbeFailure) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Probe, e.Err)
}

func (e *ProbeFailure) Unwrap() error { return e.Err }

// AuditFailure blocks a successful install report.
type AuditFailure struct {
	Formula string
	Finding Finding
}

func (e *AuditFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Formula, e.Finding.Title)
}
