package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/domain/policy"
	"github.com/cryptomod/cryptomod/internal/domain/validation"
)

// ValidateService wires the record and snapshot sources to the validation
// engine and stamps the resulting report.
type ValidateService struct {
	records   domain.RecordSource
	snapshots domain.SnapshotSource
	configs   domain.ConfigLoader
	git       domain.GitInfo
}

// NewValidateService creates a ValidateService with all required adapters.
func NewValidateService(
	records domain.RecordSource,
	snapshots domain.SnapshotSource,
	configs domain.ConfigLoader,
	git domain.GitInfo,
) *ValidateService {
	return &ValidateService{records: records, snapshots: snapshots, configs: configs, git: git}
}

// ValidateOptions control one validation run. Zero-valued fields fall back
// to .cryptomod.yaml and its defaults.
type ValidateOptions struct {
	RepoDir          string
	ModulesDir       string
	SnapshotDir      string
	MinSecurityLevel int
	Strict           bool

	// Now pins the evaluation instant; zero means wall clock. Fixing it
	// makes the whole report reproducible.
	Now time.Time
}

// Run validates every record in the modules directory against the loaded
// snapshot. The returned record files feed renderers that need fields the
// report does not carry.
func (s *ValidateService) Run(opts ValidateOptions) (*domain.Report, []domain.RecordFile, error) {
	if opts.RepoDir == "" {
		opts.RepoDir = "."
	}
	repoDir := opts.RepoDir

	cfg, err := s.configs.Load(repoDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	opts = mergeOptions(opts, cfg)

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	snapshot, err := s.snapshots.Load(opts.SnapshotDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading certificate snapshot: %w", err)
	}

	files, err := s.records.Load(opts.ModulesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading module records: %w", err)
	}

	validator := validation.New(snapshot)
	ctx := policy.Context{Now: now, MinSecurityLevel: opts.MinSecurityLevel}

	results := make([]domain.ModuleResult, 0, len(files))
	for _, f := range files {
		if f.Err != nil {
			results = append(results, validation.ParseFailure(f.Path, f.Err))
			continue
		}
		results = append(results, validator.ValidateOne(f.Record, ctx))
	}

	if opts.Strict {
		results = promoteWarnings(results)
	}

	report := domain.Summarize(results)
	report.GeneratedAt = now
	report.SnapshotTakenAt = snapshot.TakenAt

	if s.git != nil && s.git.IsGitRepo(repoDir) {
		if hash, err := s.git.CommitHash(repoDir); err == nil {
			report.CommitHash = hash
		}
	}

	return report, files, nil
}

// mergeOptions overlays explicit options on top of the repo config. Paths
// coming from the config file are relative to the repository root.
func mergeOptions(opts ValidateOptions, cfg domain.Config) ValidateOptions {
	if opts.ModulesDir == "" {
		opts.ModulesDir = filepath.Join(opts.RepoDir, cfg.ModulesDir)
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = filepath.Join(opts.RepoDir, cfg.SnapshotDir)
	}
	if opts.MinSecurityLevel == 0 {
		opts.MinSecurityLevel = cfg.MinSecurityLevel
	}
	opts.Strict = opts.Strict || cfg.Strict
	return opts
}

// promoteWarnings implements strict mode: every post-suppression warning
// becomes an error of its own category, so warning-only batches gate CI.
func promoteWarnings(results []domain.ModuleResult) []domain.ModuleResult {
	out := make([]domain.ModuleResult, 0, len(results))
	for _, r := range results {
		promoted := r
		promoted.Findings = make([]domain.Finding, 0, len(r.Findings))
		for _, f := range r.Findings {
			if f.Severity == domain.SeverityWarning {
				f.Severity = domain.SeverityError
				f.Message = "[strict] " + f.Message
			}
			promoted.Findings = append(promoted.Findings, f)
		}
		promoted.Valid = promoted.ErrorCount() == 0
		out = append(out, promoted)
	}
	return out
}

// RecordsByName indexes successfully parsed records for renderers.
func RecordsByName(files []domain.RecordFile) map[string]*domain.ModuleRecord {
	records := make(map[string]*domain.ModuleRecord, len(files))
	for _, f := range files {
		if f.Record != nil {
			records[f.Record.Name()] = f.Record
		}
	}
	return records
}
