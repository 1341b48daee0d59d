package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptomod/cryptomod/internal/domain"
)

func resultWith(cat domain.Category, sev domain.Severity) domain.ModuleResult {
	return domain.ModuleResult{
		Module: "m",
		Valid:  sev != domain.SeverityError,
		Findings: []domain.Finding{
			{Severity: sev, Code: "X", Category: cat, Message: "m"},
		},
	}
}

func TestSummarize_Counts(t *testing.T) {
	report := domain.Summarize([]domain.ModuleResult{
		{Module: "a", Valid: true},
		resultWith(domain.CategoryPolicy, domain.SeverityWarning),
		resultWith(domain.CategorySchema, domain.SeverityError),
	})

	assert.Equal(t, 3, report.TotalModules)
	assert.Equal(t, 2, report.ValidModules)
	assert.Equal(t, 1, report.InvalidModules)
	assert.Equal(t, 1, report.WarningsCount)
	assert.Equal(t, domain.ExitSchemaError, report.ExitCode)
}

func TestSummarize_ExitCodePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		results []domain.ModuleResult
		want    int
	}{
		{"empty batch", nil, domain.ExitOK},
		{"warnings only", []domain.ModuleResult{resultWith(domain.CategoryCertificate, domain.SeverityWarning)}, domain.ExitOK},
		{"policy", []domain.ModuleResult{resultWith(domain.CategoryPolicy, domain.SeverityError)}, domain.ExitPolicyError},
		{"certificate over policy", []domain.ModuleResult{
			resultWith(domain.CategoryPolicy, domain.SeverityError),
			resultWith(domain.CategoryCertificate, domain.SeverityError),
		}, domain.ExitCertificateError},
		{"schema over everything", []domain.ModuleResult{
			resultWith(domain.CategoryPolicy, domain.SeverityError),
			resultWith(domain.CategoryCertificate, domain.SeverityError),
			resultWith(domain.CategorySchema, domain.SeverityError),
		}, domain.ExitSchemaError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Summarize(tt.results).ExitCode)
		})
	}
}

func TestModuleResult_Counting(t *testing.T) {
	r := domain.ModuleResult{Findings: []domain.Finding{
		{Severity: domain.SeverityError, Category: domain.CategorySchema},
		{Severity: domain.SeverityWarning, Category: domain.CategoryPolicy},
		{Severity: domain.SeverityWarning, Category: domain.CategoryCertificate},
	}}

	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 2, r.WarningCount())
	assert.True(t, r.HasErrorInCategory(domain.CategorySchema))
	assert.False(t, r.HasErrorInCategory(domain.CategoryPolicy))
}

func TestSuppressionSet(t *testing.T) {
	var unset *domain.SuppressionSet
	assert.False(t, unset.Suppresses(domain.CodePPSRefMissing))

	set := &domain.SuppressionSet{Rules: []string{domain.CodePPSRefMissing}}
	assert.True(t, set.Suppresses(domain.CodePPSRefMissing))
	assert.False(t, set.Suppresses(domain.CodeCertHistorical))
}

func TestModuleRecordName(t *testing.T) {
	var nilRec *domain.ModuleRecord
	assert.Equal(t, "unknown", nilRec.Name())
	assert.Equal(t, "unknown", (&domain.ModuleRecord{}).Name())

	rec := &domain.ModuleRecord{Metadata: domain.Metadata{Name: "openssl-fips"}}
	assert.Equal(t, "openssl-fips", rec.Name())
}

func TestSnapshotResolve(t *testing.T) {
	var nilSnap *domain.Snapshot
	_, ok := nilSnap.Resolve(1)
	assert.False(t, ok)
	assert.Zero(t, nilSnap.Total())

	snap := &domain.Snapshot{Certificates: map[int]domain.CertificateEntry{
		4282: {Status: domain.StatusActive},
	}}
	entry, ok := snap.Resolve(4282)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusActive, entry.Status)
	assert.Equal(t, 1, snap.Total())
}
