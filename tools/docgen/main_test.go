package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "card-lister", Short: "List cards"}
	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run one batch",
		Run:   func(*cobra.Command, []string) {},
	})
	return root
}

func TestRun_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, run(testRoot(), dir, "markdown"))

	data, err := os.ReadFile(filepath.Join(dir, "card-lister.md"))
	require.NoError(t, err)
	s := string(data)
	assert.True(t, len(s) > len(generatedNote) && s[:len(generatedNote)] == generatedNote)
	assert.Contains(t, s, "(./card-lister_run.md)")
	assert.NotContains(t, s, "Auto generated by spf13/cobra")

	assert.FileExists(t, filepath.Join(dir, "card-lister_run.md"))
}

func TestRun_OtherFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, run(testRoot(), dir, "yaml"))
	assert.FileExists(t, filepath.Join(dir, "card-lister_run.yaml"))

	dir = t.TempDir()
	require.NoError(t, run(testRoot(), dir, "man"))
	assert.FileExists(t, filepath.Join(dir, "card-lister-run.1"))
}

func TestRun_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := run(testRoot(), t.TempDir(), "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "html"`)
}
