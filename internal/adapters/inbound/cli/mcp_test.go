package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/inbound/cli"
)

func TestMCPServeCommandExists(t *testing.T) {
	out, err := execute(t, "mcp", "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "stdio")
}

func TestMCPServe_InvalidConfigFailsBeforeServing(t *testing.T) {
	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, ".landingzone.yaml"),
		[]byte("ready_dir: out\nrejected_dir: out\n"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"mcp", "serve", "--config-dir", cfgDir})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}
