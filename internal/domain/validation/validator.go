// Package validation drives a module record through the schema checker, the
// certificate snapshot lookup, and the policy rules, and aggregates the
// outcome into a deterministic batch report.
package validation

import (
	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/domain/policy"
	"github.com/cryptomod/cryptomod/internal/domain/schema"
)

// Validator validates module records against a loaded certificate snapshot.
// The snapshot is read-only for the validator's lifetime; validating a
// record has no side effects, so records may be validated concurrently.
type Validator struct {
	snapshot  *domain.Snapshot
	certRules []policy.Rule
	recRules  []policy.Rule
}

// New creates a Validator over the given snapshot with the standard rule set.
func New(snapshot *domain.Snapshot) *Validator {
	return &Validator{
		snapshot:  snapshot,
		certRules: policy.CertificateRules,
		recRules:  policy.RecordRules,
	}
}

// ValidateOne runs a single record through all three rule layers. Schema
// findings come first, then certificate and policy findings, in generation
// order. Schema errors do not short-circuit: later checks run wherever
// their fields are present, so one pass surfaces the complete problem set.
func (v *Validator) ValidateOne(rec *domain.ModuleRecord, ctx policy.Context) domain.ModuleResult {
	findings := schema.Check(rec)

	result := domain.ModuleResult{
		Module: rec.Name(),
		File:   rec.SourceFile,
	}

	// Certificate rules only make sense once a certificate number is
	// structurally present; its absence is already a schema finding.
	if number := rec.Spec.Validation.CertificateNumber; number > 0 {
		result.CertificateNumber = number
		entry, found := v.snapshot.Resolve(number)
		lookup := policy.Lookup{Entry: entry, Found: found}
		if found {
			result.CMVPStatus = string(entry.Status)
		}
		findings = append(findings, policy.Evaluate(v.certRules, rec, lookup, ctx)...)
	}

	findings = append(findings, policy.Evaluate(v.recRules, rec, policy.Lookup{}, ctx)...)

	kept, suppressed := policy.Suppress(rec, findings)
	result.Findings = kept
	result.Suppressed = suppressed
	result.Valid = result.ErrorCount() == 0

	return result
}

// ValidateAll validates records in input order and aggregates the batch
// report. Given the same records, snapshot, and context, the report is
// identical run to run.
func (v *Validator) ValidateAll(recs []*domain.ModuleRecord, ctx policy.Context) *domain.Report {
	results := make([]domain.ModuleResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, v.ValidateOne(rec, ctx))
	}

	report := domain.Summarize(results)
	report.GeneratedAt = ctx.Now
	if v.snapshot != nil {
		report.SnapshotTakenAt = v.snapshot.TakenAt
	}
	return report
}

// ParseFailure builds the result for a record file that could not be
// decoded at all. The engine never aborts on a bad record; the failure
// becomes a schema-category finding and the batch continues.
func ParseFailure(path string, err error) domain.ModuleResult {
	return domain.ModuleResult{
		Module: "unknown",
		File:   path,
		Valid:  false,
		Findings: []domain.Finding{{
			Severity: domain.SeverityError,
			Code:     domain.CodeSchemaParseError,
			Category: domain.CategorySchema,
			Message:  "record could not be parsed: " + err.Error(),
			Module:   "unknown",
		}},
	}
}
