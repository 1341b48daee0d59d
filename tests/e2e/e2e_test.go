package e2e_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "cryptomod-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "cryptomod")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/cryptomod")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

const goodModule = `apiVersion: fedramp.gov/v1
kind: CryptographicModule
metadata:
  name: %s
  uuid: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
spec:
  module:
    name: OpenSSL FIPS Provider
    vendor: OpenSSL Software Foundation
    type: software
  validation:
    standard: FIPS 140-3
    certificateNumber: %s
    securityLevel: 1
  usage:
    dataClassification:
      - data-at-rest
    location: storage
    purpose: volume encryption
`

// newRepo writes an inventory repo fixture and returns its modules and
// snapshot directories.
func newRepo(t *testing.T, modules map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()

	modulesDir := filepath.Join(root, "modules")
	require.NoError(t, os.MkdirAll(modulesDir, 0o755))
	for name, content := range modules {
		require.NoError(t, os.WriteFile(filepath.Join(modulesDir, name), []byte(content), 0o644))
	}

	snapshotDir := filepath.Join(root, "cmvp-cache")
	require.NoError(t, os.MkdirAll(filepath.Join(snapshotDir, "certificates"), 0o755))
	cache := `{
		"4282": {"moduleName": "OpenSSL FIPS Provider", "status": "Active"},
		"3928": {"moduleName": "OpenSSL FIPS Provider", "status": "Historical"},
		"2357": {"moduleName": "OpenSSL FIPS Provider", "status": "Revoked"}
	}`
	require.NoError(t, os.WriteFile(
		filepath.Join(snapshotDir, "certificates", "2000-4999.json"), []byte(cache), 0o644))

	return modulesDir, snapshotDir
}

func module(name, cert string) string {
	return fmt.Sprintf(goodModule, name, cert)
}

func TestE2E_ValidateClean(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"openssl.yaml": module("openssl-fips", "4282"),
	})

	out, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "COMPLIANT")
}

func TestE2E_ValidateWarningsExitZero(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"legacy.yaml": module("legacy", "3928"),
	})

	_, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir)
	assert.Equal(t, 0, code, "Historical is a warning; warnings never gate")
}

func TestE2E_SchemaErrorExitsOne(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"garbled.yaml": "{{ not a record",
	})

	_, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir)
	assert.Equal(t, 1, code)
}

func TestE2E_CertificateErrorExitsTwo(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"revoked.yaml": module("revoked", "2357"),
	})

	_, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir)
	assert.Equal(t, 2, code)
}

func TestE2E_SchemaBeatsCertificate(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"revoked.yaml": module("revoked", "2357"),
		"garbled.yaml": "{{ not a record",
	})

	_, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir)
	assert.Equal(t, 1, code)
}

func TestE2E_StrictPromotesWarnings(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"legacy.yaml": module("legacy", "3928"),
	})

	_, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir, "--strict")
	assert.Equal(t, 2, code, "promoted warning keeps its certificate category")
}

func TestE2E_ValidateJSON(t *testing.T) {
	modulesDir, snapshotDir := newRepo(t, map[string]string{
		"openssl.yaml": module("openssl-fips", "4282"),
	})

	out, code := run(t, "validate", "--modules", modulesDir, "--snapshot", snapshotDir, "--format", "json")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"totalModules": 1`)
}

func TestE2E_UUID(t *testing.T) {
	out, code := run(t, "uuid")
	assert.Equal(t, 0, code)
	_, err := uuid.Parse(strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "cryptomod")
}
