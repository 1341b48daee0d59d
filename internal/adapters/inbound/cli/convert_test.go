package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptomod/cryptomod/internal/adapters/inbound/cli"
)

func TestConvertCommand_SingleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "openssl.yaml")
	require.NoError(t, os.WriteFile(in, []byte(moduleYAML), 0o644))

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"convert", in})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "openssl.json"))
	assert.Contains(t, buf.String(), "Converted:")
}

func TestConvertCommand_DirectoryNeedsFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openssl.yaml"), []byte(moduleYAML), 0o644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"convert", dir})
	assert.Error(t, cmd.Execute())
}

func TestConvertCommand_Merge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openssl.yaml"), []byte(moduleYAML), 0o644))
	out := filepath.Join(t.TempDir(), "all-modules.json")

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"convert", dir, "--merge", "--output", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CryptographicModuleList")
	assert.Contains(t, buf.String(), "Merged 1 modules")
}
