// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	query := Query{FreeText: "attention", Category: "cs.CL", MaxResults: 5, SortBy: "submitted"}
	out := sampleOutput()
	out.BackendErrors = []string{"listing: timeout"}

	require.NoError(t, WriteQueryFile(path, query, out))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)

	assert.Equal(t, query, qf.Query.ToQuery())
	assert.Equal(t, 2, qf.Summary.Total)
	assert.False(t, qf.Summary.Timestamp.IsZero())

	got := qf.Output()
	require.Len(t, got.Results, 2)
	assert.Equal(t, "1706.03762", got.Results[0].Identifier)
	assert.True(t, got.Results[0].Date.Equal(out.Results[0].Date))
	assert.Equal(t, 2, got.DupsRemoved)
	assert.Equal(t, []string{"listing: timeout"}, got.BackendErrors)
}

func TestReadQueryFileErrors(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading query file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("query: [unterminated"), 0o644))
	_, err = ReadQueryFile(bad)
	assert.ErrorContains(t, err, "parsing query file")
}
