package render

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// CSV renders the per-module results as an inventory table, one row per
// module, for spreadsheet-driven audits.
func CSV(report *domain.Report, records map[string]*domain.ModuleRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"module", "certificate", "cmvpStatus", "standard", "dataClassification", "valid", "errors", "warnings"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, r := range report.Results {
		standard, classification := "", ""
		if rec, ok := records[r.Module]; ok {
			standard = rec.Spec.Validation.Standard
			classification = strings.Join(rec.Spec.Usage.DataClassification, ";")
		}

		row := []string{
			r.Module,
			certColumn(r),
			statusColumn(r),
			standard,
			classification,
			strconv.FormatBool(r.Valid),
			strconv.Itoa(r.ErrorCount()),
			strconv.Itoa(r.WarningCount()),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}
