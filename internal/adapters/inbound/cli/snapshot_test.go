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

func TestSnapshotCommand(t *testing.T) {
	_, snapshotDir := fixture(t, "4282")
	require.NoError(t, os.WriteFile(
		filepath.Join(snapshotDir, "metadata.json"),
		[]byte(`{"lastUpdated": "2024-12-05T06:00:00Z"}`), 0o644))

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"snapshot", "--snapshot", snapshotDir})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Certificates: 1")
	assert.Contains(t, buf.String(), "2024-12-05")
	assert.Contains(t, buf.String(), "Active")
}

func TestSnapshotCommand_MissingCache(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"snapshot", "--snapshot", filepath.Join(t.TempDir(), "nothing")})
	assert.Error(t, cmd.Execute())
}
