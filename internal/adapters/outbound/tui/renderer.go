package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkeg/openkeg/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	arrowStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderCaveats formats a caveats block for a terminal. An empty report
// renders as nothing.
func RenderCaveats(report *domain.CaveatsReport) string {
	if report.Empty {
		return ""
	}
	var b strings.Builder
	b.WriteString(arrowStyle.Render("==>") + " " + titleStyle.Render("Caveats"))
	b.WriteString("\n")
	b.WriteString(report.Caveats)
	return b.String()
}

// PlainCaveats is RenderCaveats without styling, for pipes and files.
func PlainCaveats(report *domain.CaveatsReport) string {
	if report.Empty {
		return ""
	}
	return "==> Caveats\n" + report.Caveats
}

// RenderAuditReport formats audit findings, worst first.
func RenderAuditReport(report *domain.AuditReport) string {
	var b strings.Builder

	header := titleStyle.Render(report.Formula)
	if rev := shortHash(report.TapRevision); rev != "" {
		header += "  " + faintStyle.Render(rev)
	}
	b.WriteString(arrowStyle.Render("==>") + " " + header + "\n")
	if report.Keg != "" {
		b.WriteString("  " + fileStyle.Render(shortenPath(report.Keg)) + "\n")
	}
	b.WriteString("  " + separatorLine + "\n\n")

	if report.Failure != nil {
		renderFinding(&b, *report.Failure)
	}
	for _, f := range report.Findings {
		renderFinding(&b, f)
	}

	errs, warns := countSeverities(report)
	switch {
	case errs == 0 && warns == 0:
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	default:
		b.WriteString("  ")
		if errs > 0 {
			b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errs)))
			b.WriteString("  ")
		}
		if warns > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warns)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PlainAuditReport lists findings in the form shown after an install.
func PlainAuditReport(report *domain.AuditReport) string {
	var b strings.Builder
	if report.Failure != nil {
		b.WriteString("Error: ")
		b.WriteString(report.Failure.String())
		b.WriteString("\n")
	}
	for _, f := range report.Findings {
		b.WriteString("Warning: ")
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	fmt.Fprintf(b, "    %s %s\n", severityTag(f.Severity), titleStyle.Render(f.Title))
	if f.Message != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Message, "\n"), "\n") {
			fmt.Fprintf(b, "          %s\n", dimStyle.Render(line))
		}
	}
	for _, p := range f.Paths {
		fmt.Fprintf(b, "          %s\n", fileStyle.Render(p))
	}
	b.WriteString("\n")
}

func severityTag(severity string) string {
	if severity == domain.SeverityError {
		return errorTagStyle.Render("error")
	}
	return warnTagStyle.Render("warn ")
}

func countSeverities(report *domain.AuditReport) (errors, warnings int) {
	all := report.Findings
	if report.Failure != nil {
		all = append([]domain.Finding{*report.Failure}, all...)
	}
	for _, f := range all {
		if f.Severity == domain.SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func shortenPath(path string) string {
	if idx := strings.Index(path, "Cellar/"); idx >= 0 {
		return path[idx:]
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}
