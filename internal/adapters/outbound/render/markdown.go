package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// grouped splits results into the three report buckets: clean, valid but
// warned (needs a POA&M entry), and invalid.
type grouped struct {
	compliant      []domain.ModuleResult
	actionRequired []domain.ModuleResult
	nonCompliant   []domain.ModuleResult
}

func groupResults(report *domain.Report) grouped {
	var g grouped
	for _, r := range report.Results {
		switch {
		case !r.Valid:
			g.nonCompliant = append(g.nonCompliant, r)
		case r.WarningCount() > 0:
			g.actionRequired = append(g.actionRequired, r)
		default:
			g.compliant = append(g.compliant, r)
		}
	}
	return g
}

// Markdown renders the full compliance report. records maps module name to
// its definition, for columns the result alone does not carry.
func Markdown(report *domain.Report, records map[string]*domain.ModuleRecord) string {
	var b strings.Builder

	timestamp := report.GeneratedAt.UTC().Format(time.RFC3339)

	fmt.Fprintf(&b, "# Cryptographic Module Validation Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", timestamp)
	if !report.SnapshotTakenAt.IsZero() {
		fmt.Fprintf(&b, "**CMVP Snapshot:** %s  \n", report.SnapshotTakenAt.UTC().Format(time.RFC3339))
	}
	if report.CommitHash != "" {
		fmt.Fprintf(&b, "**Commit:** `%s`  \n", shortHash(report.CommitHash))
	}
	fmt.Fprintf(&b, "**Total Modules:** %d\n\n---\n\n", report.TotalModules)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Modules | %d |\n", report.TotalModules)
	fmt.Fprintf(&b, "| Compliant | %d |\n", report.ValidModules)
	fmt.Fprintf(&b, "| Non-Compliant | %d |\n", report.InvalidModules)
	fmt.Fprintf(&b, "| Warnings | %d |\n\n", report.WarningsCount)

	g := groupResults(report)

	if len(g.compliant) > 0 {
		b.WriteString("## Compliant Modules\n\n")
		b.WriteString("| Module | Certificate | Status | Standard |\n|--------|-------------|--------|----------|\n")
		for _, r := range g.compliant {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				r.Module, certColumn(r), statusColumn(r), standardFor(r.Module, records))
		}
		b.WriteString("\n")
	}

	if len(g.actionRequired) > 0 {
		b.WriteString("## Action Required (POA&M)\n\n")
		b.WriteString("| Module | Certificate | Status | Issue |\n|--------|-------------|--------|-------|\n")
		for _, r := range g.actionRequired {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				r.Module, certColumn(r), statusColumn(r), firstIssue(r, domain.SeverityWarning))
		}
		b.WriteString("\n")
	}

	if len(g.nonCompliant) > 0 {
		b.WriteString("## Non-Compliant (Immediate Action Required)\n\n")
		b.WriteString("| Module | Certificate | Issue |\n|--------|-------------|-------|\n")
		for _, r := range g.nonCompliant {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Module, certColumn(r), firstIssue(r, domain.SeverityError))
		}
		b.WriteString("\n")
	}

	writeInventory(&b, records)

	b.WriteString("---\n\n## Validation Details\n\n")
	b.WriteString("<details>\n<summary>Full Validation Log (JSON)</summary>\n\n```json\n")
	if data, err := json.MarshalIndent(report, "", "  "); err == nil {
		b.Write(data)
	}
	b.WriteString("\n```\n\n</details>\n\n---\n\n")

	b.WriteString("## References\n\n")
	b.WriteString("- [NIST CMVP](https://csrc.nist.gov/projects/cryptographic-module-validation-program)\n")
	b.WriteString("- [FedRAMP Policy for Cryptographic Module Selection](https://www.fedramp.gov/resources/documents/)\n")
	b.WriteString("- [FIPS 140-3 Standard](https://csrc.nist.gov/publications/detail/fips/140/3/final)\n")

	return b.String()
}

// writeInventory groups modules by data classification, DIT/DAR/DIU order.
func writeInventory(b *strings.Builder, records map[string]*domain.ModuleRecord) {
	b.WriteString("---\n\n## Module Inventory by Data Classification\n\n")

	labels := []struct {
		key   string
		label string
	}{
		{domain.ClassificationDataInTransit, "Data in Transit (DIT)"},
		{domain.ClassificationDataAtRest, "Data at Rest (DAR)"},
		{domain.ClassificationDataInUse, "Data in Use (DIU)"},
	}

	// Stable order regardless of map iteration.
	var names []string
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, l := range labels {
		fmt.Fprintf(b, "### %s\n\n", l.label)
		found := false
		for _, name := range names {
			rec := records[name]
			for _, cls := range rec.Spec.Usage.DataClassification {
				if cls != l.key {
					continue
				}
				fmt.Fprintf(b, "- **%s** (#%d) - %s\n",
					name, rec.Spec.Validation.CertificateNumber, rec.Spec.Usage.Purpose)
				found = true
				break
			}
		}
		if !found {
			b.WriteString("*No modules registered for this classification*\n")
		}
		b.WriteString("\n")
	}
}

func certColumn(r domain.ModuleResult) string {
	if r.CertificateNumber == 0 {
		return "N/A"
	}
	return fmt.Sprintf("#%d", r.CertificateNumber)
}

func statusColumn(r domain.ModuleResult) string {
	if r.CMVPStatus == "" {
		return "Unknown"
	}
	return r.CMVPStatus
}

func standardFor(name string, records map[string]*domain.ModuleRecord) string {
	if rec, ok := records[name]; ok && rec.Spec.Validation.Standard != "" {
		return rec.Spec.Validation.Standard
	}
	return "N/A"
}

// firstIssue returns the first finding of the given severity, truncated for
// table layout.
func firstIssue(r domain.ModuleResult, sev domain.Severity) string {
	for _, f := range r.Findings {
		if f.Severity == sev {
			if len(f.Message) > 80 {
				return f.Message[:80]
			}
			return f.Message
		}
	}
	return "No details"
}
