package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "extract")
}

func TestExtractCmd_RejectsInvalidURLWithoutNetwork(t *testing.T) {
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"extract", "ftp://aliexpress.com/item/1.html"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Empty(t, stdout.String())

	// The envelope is the first line on stderr; cobra appends its own error line.
	line, _, _ := bytes.Cut(stderr.Bytes(), []byte("\n"))
	var env map[string]any
	require.NoError(t, json.Unmarshal(line, &env), stderr.String())
	assert.Equal(t, "invalid_url_protocol", env["error"])
}

func TestExtractCmd_RequiresOneArg(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract"})

	assert.Error(t, root.ExecuteContext(context.Background()))
}
