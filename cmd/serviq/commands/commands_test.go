package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "serviq "+version)
}

func TestExportRequiresTarget(t *testing.T) {
	t.Chdir(t.TempDir())
	rootCmd.SetArgs([]string{"export", "--storage", "memory"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestExportByNumber(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"export", "--storage", "memory", "--dir", dir, "--settle-delay", "0s", "SRV-8431"})

	require.NoError(t, rootCmd.Execute())
	info, err := os.Stat(filepath.Join(dir, "invoice-SRV-8431.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
