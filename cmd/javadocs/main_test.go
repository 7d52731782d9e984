package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	parser := newParser(&out)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&Global{Out: &out})
	return out.String(), err
}

func TestCheck_EmbeddedDataset(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded")
	assert.Contains(t, out, "13 topics")
}

func TestCheck_InvalidDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "topics"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(
		"categories:\n  - name: Fundamentals\n    icon: x\n    topics: [missing]\n"), 0o600))

	_, err := run(t, "check", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestTopics_ListsRoutes(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "/docs/fundamentals/getting-started")
	assert.Contains(t, out, "/docs/object-oriented-programming/classes-and-objects")
}
