// Package render turns a validation report into its output formats: styled
// terminal text, markdown, CSV, JSON summary, and GitHub Actions
// annotations. Renderers are pure string builders; writing is the caller's
// concern.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cryptomod/cryptomod/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Text renders the report as a styled terminal summary.
func Text(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("cryptomod")
	subtitle := dimStyle.Render("Cryptographic Module Validation")

	verdict := passStyle.Render("COMPLIANT")
	if report.InvalidModules > 0 {
		verdict = failStyle.Render("NON-COMPLIANT")
	}
	counts := fmt.Sprintf("%d modules   %d valid   %d invalid   %d warnings",
		report.TotalModules, report.ValidModules, report.InvalidModules, report.WarningsCount)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + dimStyle.Render(counts)))
	b.WriteString("\n\n")

	if !report.SnapshotTakenAt.IsZero() {
		b.WriteString("  " + dimStyle.Render("snapshot: "+report.SnapshotTakenAt.Format("2006-01-02 15:04 MST")) + "\n")
	}
	if report.CommitHash != "" {
		b.WriteString("  " + dimStyle.Render("commit: "+shortHash(report.CommitHash)) + "\n")
	}
	b.WriteString("\n")

	for _, result := range report.Results {
		renderResult(&b, result)
	}

	b.WriteString("  " + separatorLine + "\n")
	b.WriteString(fmt.Sprintf("  exit code %d\n", report.ExitCode))

	return b.String()
}

func renderResult(b *strings.Builder, result domain.ModuleResult) {
	marker := passStyle.Render("✓")
	if !result.Valid {
		marker = failStyle.Render("✗")
	}

	line := fmt.Sprintf("  %s %s", marker, titleStyle.Render(result.Module))
	if result.CertificateNumber > 0 {
		line += "  " + dimStyle.Render(fmt.Sprintf("#%d", result.CertificateNumber))
	}
	if result.CMVPStatus != "" {
		line += "  " + dimStyle.Render(result.CMVPStatus)
	}
	b.WriteString(line + "\n")

	for _, f := range result.Findings {
		tag := warnTagStyle.Render("WARN ")
		if f.IsError() {
			tag = errorTagStyle.Render("ERROR")
		}
		b.WriteString(fmt.Sprintf("      %s %s %s\n", tag, f.Code, dimStyle.Render(f.Message)))
	}
	if n := len(result.Suppressed); n > 0 {
		b.WriteString("      " + faintStyle.Render(fmt.Sprintf("%d warning(s) suppressed", n)) + "\n")
	}
	if result.File != "" && len(result.Findings) > 0 {
		b.WriteString("      " + fileStyle.Render(result.File) + "\n")
	}
	b.WriteString("\n")
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
