package domain

// Severity classifies how a finding affects module validity.
// It is an explicit field rather than something inferred from the rule
// code, so the suppression filter can enforce that errors are never dropped.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups rule codes by the layer that produced them. The batch
// exit code is derived from categories in order of precedence:
// schema > certificate > policy.
type Category string

const (
	CategorySchema      Category = "schema"
	CategoryCertificate Category = "certificate"
	CategoryPolicy      Category = "policy"
)

// Rule codes are a compatibility surface: suppression annotations and CI
// automation match on them exactly.
const (
	// Schema checker
	CodeSchemaMissingField  = "SCHEMA_MISSING_FIELD"
	CodeSchemaInvalidEnum   = "SCHEMA_INVALID_ENUM"
	CodeSchemaInvalidFormat = "SCHEMA_INVALID_FORMAT"
	CodeSchemaInvalidValue  = "SCHEMA_INVALID_VALUE"
	CodeSchemaEmptyList     = "SCHEMA_EMPTY_LIST"
	CodeSchemaParseError    = "SCHEMA_PARSE_ERROR"

	// Certificate rules
	CodeCertNotFound     = "CMVP_CERT_NOT_FOUND"
	CodeCertRevoked      = "CMVP_CERT_REVOKED"
	CodeCertHistorical   = "CMVP_CERT_HISTORICAL"
	CodeCertExpired      = "CMVP_CERT_EXPIRED"
	CodeCertExpiring     = "CMVP_CERT_EXPIRING"
	CodeCertNameMismatch = "CMVP_NAME_MISMATCH"

	// Policy rules
	CodeFIPS1402Sunset        = "FIPS_140_2_SUNSET"
	CodeFIPS1402SunsetUrgent  = "FIPS_140_2_SUNSET_URGENT"
	CodeFIPS1402NonCompliant  = "FIPS_140_2_NONCOMPLIANT"
	CodeSecurityLevelLow      = "SECURITY_LEVEL_LOW"
	CodeInheritanceDocMissing = "INHERITANCE_DOC_MISSING"
	CodePPSRefMissing         = "PPS_REF_MISSING"
)

// Finding is one structured issue produced during validation. Findings are
// immutable once created; validation appends them, never mutates them.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Module   string   `json:"module,omitempty"`
}

// IsError reports whether the finding makes its module invalid.
func (f Finding) IsError() bool { return f.Severity == SeverityError }
