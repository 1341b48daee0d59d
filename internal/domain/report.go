package domain

import "time"

// Process exit codes, in order of precedence. Structural validity must hold
// before certificate identity can be trusted, which must hold before policy
// timing means anything; schema errors therefore win exit-code selection.
const (
	ExitOK               = 0
	ExitSchemaError      = 1
	ExitCertificateError = 2
	ExitPolicyError      = 3
)

// ModuleResult is the validation outcome for a single record. Findings keep
// generation order: schema first, then certificate and policy. Suppressed
// holds warnings dropped by the record's suppression annotations, retained
// for audit.
type ModuleResult struct {
	Module            string    `json:"module"`
	File              string    `json:"file,omitempty"`
	Valid             bool      `json:"valid"`
	CertificateNumber int       `json:"certificateNumber,omitempty"`
	CMVPStatus        string    `json:"cmvpStatus,omitempty"`
	Findings          []Finding `json:"findings"`
	Suppressed        []Finding `json:"suppressed,omitempty"`
}

// ErrorCount returns the number of error-severity findings.
func (r ModuleResult) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.IsError() {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings after
// suppression.
func (r ModuleResult) WarningCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// HasErrorInCategory reports whether any error finding belongs to the
// given category.
func (r ModuleResult) HasErrorInCategory(cat Category) bool {
	for _, f := range r.Findings {
		if f.IsError() && f.Category == cat {
			return true
		}
	}
	return false
}

// Report is the aggregate result of one validation run. It is created fresh
// per run and never persisted by the engine itself.
type Report struct {
	GeneratedAt     time.Time      `json:"timestamp"`
	SnapshotTakenAt time.Time      `json:"snapshotTimestamp,omitempty"`
	CommitHash      string         `json:"commitHash,omitempty"`
	TotalModules    int            `json:"totalModules"`
	ValidModules    int            `json:"validModules"`
	InvalidModules  int            `json:"invalidModules"`
	WarningsCount   int            `json:"warningsCount"`
	Results         []ModuleResult `json:"results"`
	ExitCode        int            `json:"exitCode"`
}

// Summarize aggregates per-module results into a Report, computing counts
// and the batch exit code. Result order is preserved.
func Summarize(results []ModuleResult) *Report {
	report := &Report{Results: results}
	for _, r := range results {
		report.TotalModules++
		if r.Valid {
			report.ValidModules++
		} else {
			report.InvalidModules++
		}
		report.WarningsCount += r.WarningCount()
	}
	report.ExitCode = exitCodeFor(results)
	return report
}

// exitCodeFor derives the batch exit code. Warnings never block: a batch
// with only warnings exits 0.
func exitCodeFor(results []ModuleResult) int {
	code := ExitOK
	for _, cat := range []Category{CategoryPolicy, CategoryCertificate, CategorySchema} {
		for _, r := range results {
			if r.HasErrorInCategory(cat) {
				switch cat {
				case CategorySchema:
					code = ExitSchemaError
				case CategoryCertificate:
					code = ExitCertificateError
				case CategoryPolicy:
					code = ExitPolicyError
				}
				break
			}
		}
	}
	return code
}
