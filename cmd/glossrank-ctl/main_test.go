package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := rootCommand()
	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"trending", "show"},
		{"trending", "warm"},
		{"features"},
		{"recommend"},
		{"scorer", "health"},
		{"scorer", "train"},
		{"servelog", "init"},
		{"servelog", "summary"},
		{"version"},
	} {
		cmd, rest, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Empty(t, rest, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestParseUser(t *testing.T) {
	id, err := parseUser("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseUser(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadInput(t *testing.T) {
	b, err := readInput(strings.NewReader(`{"a":1}`), "-")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))

	p := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(p, []byte(`[1]`), 0o600))
	b, err = readInput(strings.NewReader("ignored"), p)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(b))
}

func TestFeaturesRequiresUserArg(t *testing.T) {
	root := rootCommand()
	root.SetArgs([]string{"features"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := rootCommand()
	root.SetArgs([]string{"version"})
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "glossrank-ctl")
}
