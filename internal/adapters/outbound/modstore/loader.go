// Package modstore loads module record files from the inventory directory.
package modstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// Loader implements domain.RecordSource by walking a directory tree for
// YAML module definitions.
type Loader struct {
	log *zap.SugaredLogger
}

// New creates a Loader.
func New(log *zap.SugaredLogger) *Loader {
	return &Loader{log: log}
}

// Load walks dir for *.yaml and *.yml files, skipping names with a leading
// underscore (generated/internal files). Files that cannot be read or
// decoded are returned with Err set rather than failing the batch; the walk
// order is lexical, so results are deterministic.
func (l *Loader) Load(dir string) ([]domain.RecordFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("modules directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("modules path %s is not a directory", dir)
	}

	var files []domain.RecordFile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, "_") || name == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "_") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, l.loadFile(path, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return files, nil
}

func (l *Loader) loadFile(path, rel string) domain.RecordFile {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Warnf("could not read %s: %v", rel, err)
		return domain.RecordFile{Path: rel, Err: err}
	}

	var rec domain.ModuleRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		l.log.Warnf("could not decode %s: %v", rel, err)
		return domain.RecordFile{Path: rel, Err: fmt.Errorf("decoding YAML: %w", err)}
	}

	// An empty document decodes without error but holds nothing useful.
	if rec.APIVersion == "" && rec.Kind == "" && rec.Metadata.Name == "" {
		return domain.RecordFile{Path: rel, Err: fmt.Errorf("empty or non-record YAML document")}
	}

	rec.SourceFile = rel
	return domain.RecordFile{Path: rel, Record: &rec}
}
