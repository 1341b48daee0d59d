package render

import (
	"time"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// Summary is the machine-readable companion to the markdown report: modules
// grouped by compliance status with the fields POA&M tooling consumes.
type Summary struct {
	Timestamp string        `json:"timestamp"`
	Counts    SummaryCounts `json:"summary"`
	Modules   SummaryGroups `json:"modules"`
}

type SummaryCounts struct {
	Total          int `json:"total"`
	Compliant      int `json:"compliant"`
	ActionRequired int `json:"actionRequired"`
	NonCompliant   int `json:"nonCompliant"`
	Warnings       int `json:"warnings"`
}

type SummaryGroups struct {
	Compliant      []SummaryEntry `json:"compliant"`
	ActionRequired []SummaryEntry `json:"action_required"`
	NonCompliant   []SummaryEntry `json:"non_compliant"`
}

type SummaryEntry struct {
	Name               string   `json:"name"`
	CertificateNumber  int      `json:"certificateNumber,omitempty"`
	CMVPStatus         string   `json:"cmvpStatus,omitempty"`
	Standard           string   `json:"standard,omitempty"`
	DataClassification []string `json:"dataClassification,omitempty"`
	Location           string   `json:"location,omitempty"`
	Errors             []string `json:"errors"`
	Warnings           []string `json:"warnings"`
}

// BuildSummary groups the report for JSON output.
func BuildSummary(report *domain.Report, records map[string]*domain.ModuleRecord) Summary {
	g := groupResults(report)

	summary := Summary{
		Timestamp: report.GeneratedAt.UTC().Format(time.RFC3339),
		Counts: SummaryCounts{
			Total:          report.TotalModules,
			Compliant:      len(g.compliant),
			ActionRequired: len(g.actionRequired),
			NonCompliant:   len(g.nonCompliant),
			Warnings:       report.WarningsCount,
		},
		Modules: SummaryGroups{
			Compliant:      entries(g.compliant, records),
			ActionRequired: entries(g.actionRequired, records),
			NonCompliant:   entries(g.nonCompliant, records),
		},
	}
	return summary
}

func entries(results []domain.ModuleResult, records map[string]*domain.ModuleRecord) []SummaryEntry {
	out := make([]SummaryEntry, 0, len(results))
	for _, r := range results {
		entry := SummaryEntry{
			Name:              r.Module,
			CertificateNumber: r.CertificateNumber,
			CMVPStatus:        r.CMVPStatus,
			Errors:            messages(r.Findings, domain.SeverityError),
			Warnings:          messages(r.Findings, domain.SeverityWarning),
		}
		if rec, ok := records[r.Module]; ok {
			entry.Standard = rec.Spec.Validation.Standard
			entry.DataClassification = rec.Spec.Usage.DataClassification
			entry.Location = rec.Spec.Usage.Location
		}
		out = append(out, entry)
	}
	return out
}

func messages(findings []domain.Finding, sev domain.Severity) []string {
	msgs := []string{}
	for _, f := range findings {
		if f.Severity == sev {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}
