package application

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// ConvertService converts module records between YAML (the canonical source
// format) and JSON (for downstream tooling), following the Kubernetes
// convention of YAML in the repo, JSON on the wire.
type ConvertService struct {
	log *zap.SugaredLogger
}

// NewConvertService creates a ConvertService.
func NewConvertService(log *zap.SugaredLogger) *ConvertService {
	return &ConvertService{log: log}
}

// ConvertFile converts a single file, choosing direction by extension.
// Returns the output path written.
func (s *ConvertService) ConvertFile(inPath, outPath string) (string, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return "", err
	}

	var out []byte
	var outExt string
	switch ext := strings.ToLower(filepath.Ext(inPath)); ext {
	case ".yaml", ".yml":
		out, err = yamlToJSON(data)
		outExt = ".json"
	case ".json":
		out, err = jsonToYAML(data)
		outExt = ".yaml"
	default:
		return "", fmt.Errorf("unknown file type %q", ext)
	}
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", inPath, err)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + outExt
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return outPath, os.WriteFile(outPath, out, 0644)
}

// ConvertDir batch-converts a directory tree to the target format ("json"
// or "yaml"), mirroring the input layout under outDir. Files that fail to
// convert are logged and skipped.
func (s *ConvertService) ConvertDir(inDir, outDir, format string) ([]string, error) {
	if format != "json" && format != "yaml" {
		return nil, fmt.Errorf("unknown target format %q", format)
	}

	var converted []string
	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "_") || !matchesSource(d.Name(), format) {
			return nil
		}

		rel, relErr := filepath.Rel(inDir, path)
		if relErr != nil {
			return relErr
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+"."+format)

		if _, err := s.ConvertFile(path, outPath); err != nil {
			s.log.Warnf("skipping %s: %v", rel, err)
			return nil
		}
		converted = append(converted, outPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converted, nil
}

// Merge collects every YAML record under inDir into one JSON list document.
// Undecodable files are logged and skipped.
func (s *ConvertService) Merge(inDir, outFile string) (int, error) {
	type listDoc struct {
		APIVersion string `json:"apiVersion"`
		Kind       string `json:"kind"`
		Items      []any  `json:"items"`
	}
	doc := listDoc{APIVersion: domain.APIVersionV1, Kind: domain.KindModuleList, Items: []any{}}

	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if strings.HasPrefix(d.Name(), "_") || (ext != ".yaml" && ext != ".yml") {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			s.log.Warnf("skipping %s: %v", path, readErr)
			return nil
		}
		var item map[string]any
		if err := yaml.Unmarshal(data, &item); err != nil {
			s.log.Warnf("skipping %s: %v", path, err)
			return nil
		}
		if rel, relErr := filepath.Rel(inDir, path); relErr == nil {
			item["_source"] = rel
		}
		doc.Items = append(doc.Items, item)
		return nil
	})
	if err != nil {
		return 0, err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(outFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, err
		}
	}
	return len(doc.Items), os.WriteFile(outFile, out, 0644)
}

func matchesSource(name, targetFormat string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if targetFormat == "json" {
		return ext == ".yaml" || ext == ".yml"
	}
	return ext == ".json"
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func jsonToYAML(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
