// Package certcache loads the pre-fetched CMVP certificate snapshot from
// disk. The cache is written by an out-of-band refresh job; validation only
// ever reads it, and never touches the network.
package certcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cryptomod/cryptomod/internal/domain"
)

// Store implements domain.SnapshotSource over the on-disk cache layout:
// <dir>/certificates/NNNN-NNNN.json range files keyed by certificate number,
// plus <dir>/metadata.json describing the snapshot.
type Store struct {
	log *zap.SugaredLogger
}

// New creates a Store.
func New(log *zap.SugaredLogger) *Store {
	return &Store{log: log}
}

type metadata struct {
	LastUpdated       string         `json:"lastUpdated"`
	StatusCounts      map[string]int `json:"statusCounts"`
	TotalCertificates int            `json:"totalCertificates"`
}

// Load reads every range file into one snapshot. A single unreadable range
// file is logged and skipped; an entirely unreadable cache is the one
// engine-level precondition failure and returns an error.
func (s *Store) Load(dir string) (*domain.Snapshot, error) {
	certDir := filepath.Join(dir, "certificates")
	if _, err := os.Stat(certDir); err != nil {
		certDir = dir // older caches keep range files at the top level
	}

	entries, err := os.ReadDir(certDir)
	if err != nil {
		return nil, fmt.Errorf("reading certificate cache %s: %w", certDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" || e.Name() == "metadata.json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	snapshot := &domain.Snapshot{
		Certificates: make(map[int]domain.CertificateEntry),
		StatusCounts: make(map[domain.CertificateStatus]int),
	}

	loaded := 0
	for _, name := range names {
		path := filepath.Join(certDir, name)
		if err := s.loadRangeFile(path, snapshot); err != nil {
			s.log.Warnf("skipping cache file %s: %v", name, err)
			continue
		}
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no readable certificate files in %s", certDir)
	}

	s.loadMetadata(dir, snapshot)
	return snapshot, nil
}

// loadRangeFile merges one range file. Range files map certificate numbers
// (as JSON object keys) to entries.
func (s *Store) loadRangeFile(path string, snapshot *domain.Snapshot) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]domain.CertificateEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}

	for key, entry := range raw {
		number, err := strconv.Atoi(key)
		if err != nil {
			s.log.Warnf("ignoring non-numeric certificate key %q in %s", key, filepath.Base(path))
			continue
		}
		if entry.CertificateNumber == 0 {
			entry.CertificateNumber = number
		}
		snapshot.Certificates[number] = entry
		snapshot.StatusCounts[entry.Status]++
	}
	return nil
}

// loadMetadata picks up the snapshot timestamp if the refresh job wrote one.
// A missing or malformed metadata file is not fatal; the snapshot just has
// no known age.
func (s *Store) loadMetadata(dir string, snapshot *domain.Snapshot) {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return
	}

	var md metadata
	if err := json.Unmarshal(data, &md); err != nil {
		s.log.Warnf("could not decode snapshot metadata: %v", err)
		return
	}
	if takenAt, err := time.Parse(time.RFC3339, md.LastUpdated); err == nil {
		snapshot.TakenAt = takenAt
	}
}
