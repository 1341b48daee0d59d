package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/domain/policy"
)

// evaluation instants used across the tests; fixed so day arithmetic is exact
var (
	farFromSunset  = time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC)  // 654 days before the 140-2 cutoff
	nearSunset     = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)   // 51 days before
	pastSunset     = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)  // after
)

func record() *domain.ModuleRecord {
	return &domain.ModuleRecord{
		APIVersion: domain.APIVersionV1,
		Kind:       domain.KindCryptoModule,
		Metadata:   domain.Metadata{Name: "bc-fips", UUID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		Spec: domain.ModuleSpec{
			Module: domain.ModuleDescriptor{
				Name:   "Bouncy Castle FIPS Java API",
				Vendor: "Legion of the Bouncy Castle",
				Type:   domain.ModuleTypeSoftware,
			},
			Validation: domain.ValidationDescriptor{
				Standard:          domain.StandardFIPS1403,
				CertificateNumber: 4616,
				SecurityLevel:     1,
			},
			Usage: domain.UsageDescriptor{
				DataClassification: []string{domain.ClassificationDataAtRest},
				Location:           "document-store",
				Purpose:            "field-level encryption",
			},
		},
	}
}

func found(entry domain.CertificateEntry) policy.Lookup {
	return policy.Lookup{Entry: entry, Found: true}
}

func certCodes(rec *domain.ModuleRecord, cert policy.Lookup, ctx policy.Context) []string {
	findings := policy.Evaluate(policy.CertificateRules, rec, cert, ctx)
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func recordCodes(rec *domain.ModuleRecord, ctx policy.Context) []string {
	findings := policy.Evaluate(policy.RecordRules, rec, policy.Lookup{}, ctx)
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func TestCertificateStatus_NotFoundIsError(t *testing.T) {
	rec := record()
	findings := policy.Evaluate(policy.CertificateRules, rec, policy.Lookup{}, policy.Context{Now: farFromSunset})

	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeCertNotFound, findings[0].Code)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
	assert.Equal(t, domain.CategoryCertificate, findings[0].Category)
}

func TestCertificateStatus_Revoked(t *testing.T) {
	cert := found(domain.CertificateEntry{Status: domain.StatusRevoked, ModuleName: "Bouncy Castle FIPS Java API"})
	findings := policy.Evaluate(policy.CertificateRules, record(), cert, policy.Context{Now: farFromSunset})

	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeCertRevoked, findings[0].Code)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
}

func TestCertificateStatus_HistoricalIsWarning(t *testing.T) {
	cert := found(domain.CertificateEntry{Status: domain.StatusHistorical, ModuleName: "Bouncy Castle FIPS Java API"})
	findings := policy.Evaluate(policy.CertificateRules, record(), cert, policy.Context{Now: farFromSunset})

	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeCertHistorical, findings[0].Code)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
}

func TestCertificateStatus_ActiveIsClean(t *testing.T) {
	cert := found(domain.CertificateEntry{Status: domain.StatusActive, ModuleName: "Bouncy Castle FIPS Java API"})
	assert.Empty(t, certCodes(record(), cert, policy.Context{Now: farFromSunset}))
}

func TestCertificateSunset_Thresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		sunsetDate string
		want       string
	}{
		{"far future is clean", "2026-06-01", ""},
		{"within ninety days warns", "2025-08-01", domain.CodeCertExpiring},
		{"day of sunset warns", "2025-06-01", domain.CodeCertExpiring},
		{"past sunset errors", "2025-05-31", domain.CodeCertExpired},
		{"malformed cached date is skipped", "06/01/2025", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert := found(domain.CertificateEntry{
				Status:     domain.StatusActive,
				ModuleName: "Bouncy Castle FIPS Java API",
				SunsetDate: tt.sunsetDate,
			})
			got := certCodes(record(), cert, policy.Context{Now: now})
			if tt.want == "" {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, []string{tt.want}, got)
			}
		})
	}
}

func TestRegisteredNameMatch(t *testing.T) {
	tests := []struct {
		name       string
		declared   string
		registered string
		mismatch   bool
	}{
		{"exact match", "OpenSSL FIPS Provider", "OpenSSL FIPS Provider", false},
		{"case-insensitive match", "openssl fips provider", "OpenSSL FIPS Provider", false},
		{"two shared words", "OpenSSL FIPS Provider", "OpenSSL FIPS Object Module", false},
		{"camel-cased registration", "OpenSSL Provider", "OpenSSLProvider", false},
		{"unrelated names", "OpenSSL FIPS Provider", "Ubuntu Kernel Crypto API", true},
		{"missing registered name", "OpenSSL FIPS Provider", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record()
			rec.Spec.Module.Name = tt.declared
			cert := found(domain.CertificateEntry{Status: domain.StatusActive, ModuleName: tt.registered})

			got := certCodes(rec, cert, policy.Context{Now: farFromSunset})
			if tt.mismatch {
				assert.Equal(t, []string{domain.CodeCertNameMismatch}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestStandardSunset_FarAheadWarnsWithDayCount(t *testing.T) {
	rec := record()
	rec.Spec.Validation.Standard = domain.StandardFIPS1402

	findings := policy.Evaluate(policy.RecordRules, rec, policy.Lookup{}, policy.Context{Now: farFromSunset})
	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeFIPS1402Sunset, findings[0].Code)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "654 days")
}

func TestStandardSunset_WithinWindowIsError(t *testing.T) {
	rec := record()
	rec.Spec.Validation.Standard = domain.StandardFIPS1402

	findings := policy.Evaluate(policy.RecordRules, rec, policy.Lookup{}, policy.Context{Now: nearSunset})
	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeFIPS1402SunsetUrgent, findings[0].Code)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "51 days")
}

func TestStandardSunset_PastCutoffIsNonCompliant(t *testing.T) {
	rec := record()
	rec.Spec.Validation.Standard = domain.StandardFIPS1402

	got := recordCodes(rec, policy.Context{Now: pastSunset})
	assert.Equal(t, []string{domain.CodeFIPS1402NonCompliant}, got)
}

func TestStandardSunset_FIPS1403NeverFires(t *testing.T) {
	assert.Empty(t, recordCodes(record(), policy.Context{Now: pastSunset}))
}

func TestSecurityLevelAdequacy(t *testing.T) {
	rec := record()
	rec.Spec.Validation.SecurityLevel = 1

	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset}),
		"no minimum configured means no finding")

	got := recordCodes(rec, policy.Context{Now: farFromSunset, MinSecurityLevel: 2})
	assert.Equal(t, []string{domain.CodeSecurityLevelLow}, got)

	rec.Spec.Validation.SecurityLevel = 3
	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset, MinSecurityLevel: 2}))
}

func TestInheritanceDocumentation(t *testing.T) {
	rec := record()
	rec.Spec.Usage.Inheritance = &domain.Inheritance{Type: domain.InheritancePartial, Provider: "aws"}

	findings := policy.Evaluate(policy.RecordRules, rec, policy.Lookup{}, policy.Context{Now: farFromSunset})
	require.Len(t, findings, 1)
	assert.Equal(t, domain.CodeInheritanceDocMissing, findings[0].Code)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)

	rec.Spec.Usage.Inheritance.Documentation = "crm-appendix-c.pdf"
	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset}))

	rec.Spec.Usage.Inheritance = &domain.Inheritance{Type: domain.InheritanceNone}
	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset}))
}

func TestTransitServiceReference(t *testing.T) {
	rec := record()
	rec.Spec.Usage.DataClassification = []string{domain.ClassificationDataInTransit}

	got := recordCodes(rec, policy.Context{Now: farFromSunset})
	assert.Equal(t, []string{domain.CodePPSRefMissing}, got)

	rec.Spec.PortProtocolServiceRef = []string{"https-443"}
	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset}))

	rec.Spec.PortProtocolServiceRef = nil
	rec.Spec.Usage.DataClassification = []string{domain.ClassificationDataAtRest}
	assert.Empty(t, recordCodes(rec, policy.Context{Now: farFromSunset}))
}
