// Package policy applies time- and context-sensitive compliance rules to a
// validated module record plus its resolved certificate status. Each rule is
// an independent pure function; all of them run so a single pass reports
// every applicable issue.
package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/camelcase"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// FIPS1402Sunset is the FedRAMP acceptance cutoff for FIPS 140-2 modules.
var FIPS1402Sunset = time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC)

// sunsetWarningDays is the window in which an approaching sunset escalates
// from a warning to an error.
const sunsetWarningDays = 90

// Context carries the evaluation instant and optional caller-supplied
// requirements. The clock is passed in, never read ambiently, so evaluation
// is reproducible.
type Context struct {
	Now              time.Time
	MinSecurityLevel int
}

// Lookup is the outcome of resolving a record's certificate number against
// the snapshot. NotFound is a value, not an error; the status rule turns it
// into a finding.
type Lookup struct {
	Entry domain.CertificateEntry
	Found bool
}

// Rule evaluates one compliance concern for a record.
type Rule func(rec *domain.ModuleRecord, cert Lookup, ctx Context) []domain.Finding

// CertificateRules run only when the record carries a certificate number.
var CertificateRules = []Rule{
	certificateStatus,
	certificateSunset,
	registeredNameMatch,
}

// RecordRules run on every record regardless of certificate resolution.
var RecordRules = []Rule{
	standardSunset,
	securityLevelAdequacy,
	inheritanceDocumentation,
	transitServiceReference,
}

// Evaluate runs the given rules in order and concatenates their findings.
func Evaluate(rules []Rule, rec *domain.ModuleRecord, cert Lookup, ctx Context) []domain.Finding {
	var findings []domain.Finding
	for _, rule := range rules {
		findings = append(findings, rule(rec, cert, ctx)...)
	}
	return findings
}

// certificateStatus maps the CMVP status of the record's certificate to a
// finding: Historical is a currency problem, Revoked and NotFound are
// identity/trust problems.
func certificateStatus(rec *domain.ModuleRecord, cert Lookup, _ Context) []domain.Finding {
	number := rec.Spec.Validation.CertificateNumber

	if !cert.Found {
		return []domain.Finding{certFinding(rec, domain.SeverityError, domain.CodeCertNotFound,
			fmt.Sprintf("certificate #%d was not found in the CMVP snapshot; verify the number or refresh the cache", number))}
	}

	switch cert.Entry.Status {
	case domain.StatusRevoked:
		return []domain.Finding{certFinding(rec, domain.SeverityError, domain.CodeCertRevoked,
			fmt.Sprintf("certificate #%d has been REVOKED; this module must be replaced immediately", number))}
	case domain.StatusHistorical:
		return []domain.Finding{certFinding(rec, domain.SeverityWarning, domain.CodeCertHistorical,
			fmt.Sprintf("certificate #%d is Historical; document in POA&M and plan migration to an Active certificate", number))}
	}
	return nil
}

// certificateSunset checks the per-certificate sunset date recorded in the
// snapshot. A malformed cached date is skipped; the snapshot is external
// data the record author cannot fix.
func certificateSunset(rec *domain.ModuleRecord, cert Lookup, ctx Context) []domain.Finding {
	if !cert.Found || cert.Entry.SunsetDate == "" {
		return nil
	}
	sunset, err := time.Parse("2006-01-02", cert.Entry.SunsetDate)
	if err != nil {
		return nil
	}

	number := rec.Spec.Validation.CertificateNumber
	days := daysUntil(sunset, ctx.Now)

	switch {
	case days < 0:
		return []domain.Finding{certFinding(rec, domain.SeverityError, domain.CodeCertExpired,
			fmt.Sprintf("certificate #%d sunset date (%s) has passed; its validation has expired", number, cert.Entry.SunsetDate))}
	case days <= sunsetWarningDays:
		return []domain.Finding{certFinding(rec, domain.SeverityWarning, domain.CodeCertExpiring,
			fmt.Sprintf("certificate #%d sunsets in %d days (%s); plan renewal or replacement", number, days, cert.Entry.SunsetDate))}
	}
	return nil
}

// registeredNameMatch fuzzily compares the declared module name with the
// CMVP-registered one. Names sharing fewer than two words are flagged so a
// transposed certificate number gets noticed.
func registeredNameMatch(rec *domain.ModuleRecord, cert Lookup, _ Context) []domain.Finding {
	declared := rec.Spec.Module.Name
	registered := cert.Entry.ModuleName
	if !cert.Found || declared == "" || registered == "" {
		return nil
	}
	if strings.EqualFold(declared, registered) {
		return nil
	}

	common := 0
	registeredWords := nameWords(registered)
	for w := range nameWords(declared) {
		if registeredWords[w] {
			common++
		}
	}
	if common >= 2 {
		return nil
	}

	return []domain.Finding{{
		Severity: domain.SeverityWarning,
		Code:     domain.CodeCertNameMismatch,
		Category: domain.CategoryCertificate,
		Message:  fmt.Sprintf("module name may not match the CMVP record: declared %q, registered %q", declared, registered),
		Path:     "spec.module.name",
		Module:   rec.Name(),
	}}
}

// standardSunset applies the fixed FIPS 140-2 acceptance cutoff. FIPS 140-3
// records never fire.
func standardSunset(rec *domain.ModuleRecord, _ Lookup, ctx Context) []domain.Finding {
	if rec.Spec.Validation.Standard != domain.StandardFIPS1402 {
		return nil
	}

	days := daysUntil(FIPS1402Sunset, ctx.Now)
	path := "spec.validation.standard"

	switch {
	case days < 0:
		return []domain.Finding{policyFinding(rec, domain.SeverityError, domain.CodeFIPS1402NonCompliant, path,
			"FIPS 140-2 modules are no longer acceptable after September 21, 2026; migrate to a FIPS 140-3 validated module")}
	case days <= sunsetWarningDays:
		return []domain.Finding{policyFinding(rec, domain.SeverityError, domain.CodeFIPS1402SunsetUrgent, path,
			fmt.Sprintf("FIPS 140-2 acceptance ends in %d days (September 21, 2026); migration to FIPS 140-3 is overdue", days))}
	default:
		return []domain.Finding{policyFinding(rec, domain.SeverityWarning, domain.CodeFIPS1402Sunset, path,
			fmt.Sprintf("FIPS 140-2 acceptance ends in %d days (September 21, 2026); plan migration to FIPS 140-3", days))}
	}
}

// securityLevelAdequacy fires only when the caller supplies a minimum
// required level; there is deliberately no built-in threshold.
func securityLevelAdequacy(rec *domain.ModuleRecord, _ Lookup, ctx Context) []domain.Finding {
	level := rec.Spec.Validation.SecurityLevel
	if ctx.MinSecurityLevel <= 0 || level <= 0 || level >= ctx.MinSecurityLevel {
		return nil
	}
	return []domain.Finding{policyFinding(rec, domain.SeverityWarning, domain.CodeSecurityLevelLow,
		"spec.validation.securityLevel",
		fmt.Sprintf("security level %d is below the required minimum of %d", level, ctx.MinSecurityLevel))}
}

// inheritanceDocumentation requires a documentation reference whenever a
// module is inherited, partially or fully, from a providing service.
func inheritanceDocumentation(rec *domain.ModuleRecord, _ Lookup, _ Context) []domain.Finding {
	inh := rec.Spec.Usage.Inheritance
	if inh == nil || inh.Type == domain.InheritanceNone || inh.Type == "" {
		return nil
	}
	if inh.Type != domain.InheritancePartial && inh.Type != domain.InheritanceFull {
		return nil // malformed type is a schema finding, not a policy one
	}
	if inh.Documentation != "" {
		return nil
	}
	return []domain.Finding{policyFinding(rec, domain.SeverityError, domain.CodeInheritanceDocMissing,
		"spec.usage.inheritance.documentation",
		fmt.Sprintf("%s inheritance requires a documentation reference for the providing service", inh.Type))}
}

// transitServiceReference nudges data-in-transit modules to reference the
// Ports/Protocols/Services table.
func transitServiceReference(rec *domain.ModuleRecord, _ Lookup, _ Context) []domain.Finding {
	inTransit := false
	for _, cls := range rec.Spec.Usage.DataClassification {
		if cls == domain.ClassificationDataInTransit {
			inTransit = true
			break
		}
	}
	if !inTransit || len(rec.Spec.PortProtocolServiceRef) > 0 {
		return nil
	}
	return []domain.Finding{policyFinding(rec, domain.SeverityWarning, domain.CodePPSRefMissing,
		"spec.portProtocolServiceRef",
		"data-in-transit modules should reference Ports/Protocols/Services table entries via portProtocolServiceRef")}
}

func certFinding(rec *domain.ModuleRecord, sev domain.Severity, code, msg string) domain.Finding {
	return domain.Finding{
		Severity: sev,
		Code:     code,
		Category: domain.CategoryCertificate,
		Message:  msg,
		Path:     "spec.validation.certificateNumber",
		Module:   rec.Name(),
	}
}

func policyFinding(rec *domain.ModuleRecord, sev domain.Severity, code, path, msg string) domain.Finding {
	return domain.Finding{
		Severity: sev,
		Code:     code,
		Category: domain.CategoryPolicy,
		Message:  msg,
		Path:     path,
		Module:   rec.Name(),
	}
}

// daysUntil returns whole days from now until target, negative once past.
func daysUntil(target, now time.Time) int {
	return int(target.Sub(now).Hours() / 24)
}

// nameWords splits a module name into a lowercased word set. Vendor names
// are frequently camel-cased ("OpenSSL FIPS Provider" vs "OpenSSLProvider"),
// so each whitespace token is split again on case boundaries.
func nameWords(name string) map[string]bool {
	words := make(map[string]bool)
	for _, field := range strings.Fields(name) {
		for _, part := range camelcase.Split(field) {
			part = strings.ToLower(strings.Trim(part, ".,()-"))
			if part != "" {
				words[part] = true
			}
		}
	}
	return words
}
