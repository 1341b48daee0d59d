package domain

import "fmt"

// Config holds repo-level settings loaded from .cryptomod.yaml. Flags
// override anything set here.
type Config struct {
	ModulesDir       string `yaml:"modulesDir"       json:"modulesDir,omitempty"`
	SnapshotDir      string `yaml:"snapshotDir"      json:"snapshotDir,omitempty"`
	MinSecurityLevel int    `yaml:"minSecurityLevel" json:"minSecurityLevel,omitempty"`
	Strict           bool   `yaml:"strict"           json:"strict,omitempty"`
}

// DefaultConfig returns the zero configuration: validate ./modules against
// ./cmvp-cache with no minimum security level.
func DefaultConfig() Config {
	return Config{
		ModulesDir:  "modules",
		SnapshotDir: "cmvp-cache",
	}
}

// Validate checks the config for invalid values.
func (c Config) Validate() error {
	if c.MinSecurityLevel < 0 || c.MinSecurityLevel > 4 {
		return fmt.Errorf("minSecurityLevel %d out of range (0 disables, 1-4 enforce)", c.MinSecurityLevel)
	}
	return nil
}
