package policy

import "github.com/cryptomod/cryptomod/internal/domain"

// Suppress partitions findings by the record's suppression annotations.
// Only warnings are ever suppressed; error-severity findings pass through
// regardless of annotation. Suppressed warnings are returned separately so
// reports can still account for them.
func Suppress(rec *domain.ModuleRecord, findings []domain.Finding) (kept, suppressed []domain.Finding) {
	set := rec.Spec.Suppressions
	if set == nil || len(set.Rules) == 0 {
		return findings, nil
	}

	for _, f := range findings {
		if f.Severity == domain.SeverityWarning && set.Suppresses(f.Code) {
			suppressed = append(suppressed, f)
			continue
		}
		kept = append(kept, f)
	}
	return kept, suppressed
}
