package application

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cryptomod/cryptomod/internal/adapters/outbound/render"
)

// ReportService runs a validation pass and writes the markdown compliance
// report plus its JSON summary companion.
type ReportService struct {
	validate *ValidateService
}

// NewReportService creates a ReportService on top of an existing
// ValidateService.
func NewReportService(validate *ValidateService) *ReportService {
	return &ReportService{validate: validate}
}

// Generate validates and writes the markdown report to outPath. The JSON
// summary lands at jsonPath, or next to the markdown when jsonPath is empty.
func (s *ReportService) Generate(opts ValidateOptions, outPath, jsonPath string) error {
	report, files, err := s.validate.Run(opts)
	if err != nil {
		return err
	}
	records := RecordsByName(files)

	if err := writeFile(outPath, render.Markdown(report, records)); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}

	if jsonPath == "" {
		jsonPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"
	}
	summary := render.BuildSummary(report, records)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(jsonPath, string(data)); err != nil {
		return fmt.Errorf("writing JSON summary: %w", err)
	}

	return nil
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
