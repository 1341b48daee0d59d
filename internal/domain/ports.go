package domain

// RecordFile is one file found in the modules directory. Err is set when
// the file could not be read or decoded; the engine turns that into a
// parse-error finding rather than aborting the batch.
type RecordFile struct {
	Path   string
	Record *ModuleRecord
	Err    error
}

// RecordSource loads module records from a directory tree.
type RecordSource interface {
	Load(dir string) ([]RecordFile, error)
}

// SnapshotSource loads a pre-fetched certificate snapshot. Implementations
// never reach the network.
type SnapshotSource interface {
	Load(dir string) (*Snapshot, error)
}

// GitInfo exposes repository metadata for report stamping.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// ConfigLoader reads the repo-level tool configuration.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}
