package render

import (
	"fmt"
	"strings"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// GitHubActions renders the report as workflow annotations so findings show
// up inline on pull requests.
func GitHubActions(report *domain.Report) string {
	var b strings.Builder

	for _, r := range report.Results {
		for _, f := range r.Findings {
			level := "warning"
			if f.IsError() {
				level = "error"
			}
			fmt.Fprintf(&b, "::%s file=%s::[%s] %s\n", level, r.File, f.Code, f.Message)
		}
	}

	switch {
	case report.InvalidModules > 0:
		fmt.Fprintf(&b, "::error::Validation failed: %d invalid module(s)\n", report.InvalidModules)
	case report.WarningsCount > 0:
		fmt.Fprintf(&b, "::warning::Validation passed with %d warning(s)\n", report.WarningsCount)
	default:
		fmt.Fprintf(&b, "::notice::All %d module(s) validated successfully\n", report.TotalModules)
	}

	return b.String()
}
