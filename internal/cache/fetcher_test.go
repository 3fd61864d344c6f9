package cache

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_RoundTrip(t *testing.T) {
	content := bytes.Repeat([]byte("standard_name,canonical_units\nair_temperature,K\n"), 2048)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer server.Close()

	localPath := filepath.Join(t.TempDir(), "table.xml")

	fetcher := NewFetcher(nil)
	err := fetcher.Fetch(context.Background(), Remote{URL: server.URL + "/table.xml"}, localPath)
	require.NoError(t, err)

	got, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, content, got, "downloaded bytes must match served bytes exactly")

	info, err := os.Stat(localPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), "table must be world-readable")

	_, err = os.Stat(localPath + ".part")
	assert.True(t, os.IsNotExist(err), "no temporary file left behind on success")
}

func TestFetch_CreatesSpoolDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("table"))
	}))
	defer server.Close()

	localPath := filepath.Join(t.TempDir(), "spool", "nested", "table.xml")

	err := NewFetcher(nil).Fetch(context.Background(), Remote{URL: server.URL}, localPath)
	require.NoError(t, err)

	got, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("table"), got)
}

func TestFetch_HTTPErrorLeavesFileUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	localPath := filepath.Join(dir, "table.xml")
	previous := []byte("previous table contents")
	require.NoError(t, os.WriteFile(localPath, previous, 0644))

	err := NewFetcher(nil).Fetch(context.Background(), Remote{URL: server.URL}, localPath)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")

	got, readErr := os.ReadFile(localPath)
	require.NoError(t, readErr)
	assert.Equal(t, previous, got, "pre-fetch contents must survive a failed fetch")
}

func TestFetch_InterruptedTransferLeavesFileUntouched(t *testing.T) {
	// Announce more bytes than are sent so the client sees an unexpected EOF
	// partway through the copy.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(1<<20))
		_, _ = w.Write([]byte("partial"))
	}))
	defer server.Close()

	dir := t.TempDir()
	localPath := filepath.Join(dir, "table.xml")
	previous := []byte("previous table contents")
	require.NoError(t, os.WriteFile(localPath, previous, 0644))

	err := NewFetcher(nil).Fetch(context.Background(), Remote{URL: server.URL}, localPath)
	require.Error(t, err)

	got, readErr := os.ReadFile(localPath)
	require.NoError(t, readErr)
	assert.Equal(t, previous, got, "partial download must never be visible at the cache path")
}

func TestFetch_InterruptedTransferAbsentFileStaysAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(1<<20))
		_, _ = w.Write([]byte("partial"))
	}))
	defer server.Close()

	localPath := filepath.Join(t.TempDir(), "table.xml")

	err := NewFetcher(nil).Fetch(context.Background(), Remote{URL: server.URL}, localPath)
	require.Error(t, err)

	_, statErr := os.Stat(localPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_UnreachableServer(t *testing.T) {
	// Grab a port that is closed by the time the fetch runs.
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	localPath := filepath.Join(t.TempDir(), "table.xml")

	err := NewFetcher(nil).Fetch(context.Background(), Remote{URL: url}, localPath)
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	localPath := filepath.Join(t.TempDir(), "table.xml")
	require.NoError(t, NewFetcher(nil).Fetch(context.Background(), Remote{URL: server.URL}, localPath))

	assert.Equal(t, DefaultUserAgent, gotAgent)
}
