package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/domain/policy"
)

func TestSuppress_WarningsOnly(t *testing.T) {
	rec := record()
	rec.Spec.Suppressions = &domain.SuppressionSet{
		Rules:         []string{domain.CodePPSRefMissing, domain.CodeCertRevoked},
		Justification: "internal-only service, no external ports",
	}

	findings := []domain.Finding{
		{Severity: domain.SeverityWarning, Code: domain.CodePPSRefMissing, Category: domain.CategoryPolicy},
		{Severity: domain.SeverityError, Code: domain.CodeCertRevoked, Category: domain.CategoryCertificate},
		{Severity: domain.SeverityWarning, Code: domain.CodeCertHistorical, Category: domain.CategoryCertificate},
	}

	kept, suppressed := policy.Suppress(rec, findings)

	require.Len(t, suppressed, 1)
	assert.Equal(t, domain.CodePPSRefMissing, suppressed[0].Code)

	require.Len(t, kept, 2)
	assert.Equal(t, domain.CodeCertRevoked, kept[0].Code,
		"an annotated error severity finding is never suppressed")
	assert.Equal(t, domain.CodeCertHistorical, kept[1].Code,
		"warnings without a matching annotation stay")
}

func TestSuppress_NoAnnotations(t *testing.T) {
	rec := record()
	findings := []domain.Finding{
		{Severity: domain.SeverityWarning, Code: domain.CodePPSRefMissing},
	}

	kept, suppressed := policy.Suppress(rec, findings)
	assert.Equal(t, findings, kept)
	assert.Empty(t, suppressed)
}
