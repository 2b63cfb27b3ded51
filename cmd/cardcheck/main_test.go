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

func TestCheck(t *testing.T) {
	in := `[
		{"url":"posts/boot.html","title":"Boot","description":"d","metadata":"Written 2024"},
		{"url":"https://example.com","title":"Elsewhere","description":"d"},
		{"url":"","title":"","description":"d","metadata":"Caution: draft"}
	]`
	table, problems, err := check(strings.NewReader(in), "manni-dm.dev")
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"1", "online", "Boot", "article"}, table.Rows[0])
	assert.Equal(t, []string{"2", "external", "Elsewhere", "external"}, table.Rows[1])
	assert.Equal(t, "internal", table.Rows[2][1])
	assert.Equal(t, []string{"card 3 has no url", "card 3 has no title"}, problems)

	text := table.RenderToString()
	assert.Contains(t, text, "Elsewhere")
	assert.Contains(t, text, "Status")
}

func TestCheckInvalid(t *testing.T) {
	_, _, err := check(strings.NewReader(`{"url":"x"}`), "")
	assert.ErrorContains(t, err, "invalid collection")
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"url":"https://manni-dm.dev/x","title":"Mine"}]`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, checkFile(&buf, path, "manni-dm.dev", true))
	assert.Contains(t, buf.String(), "links.json: 1 cards")
	assert.Contains(t, buf.String(), "online")

	assert.Error(t, checkFile(&buf, filepath.Join(t.TempDir(), "missing.json"), "", true))
}
