package cache

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFileWithAge creates a file whose mtime lies age in the past (or the
// future, for negative values).
func writeFileWithAge(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestIsFresh_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-file.xml")

	tests := []struct {
		name       string
		maxAgeDays float64
	}{
		{"zero threshold", 0},
		{"one day", 1},
		{"huge threshold", 1e9},
		{"infinite threshold", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh, err := IsFresh(missing, tt.maxAgeDays)
			require.NoError(t, err, "a missing file is not an I/O error")
			assert.False(t, fresh, "a missing file is never fresh")
		})
	}
}

func TestIsFresh_ExistingFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		age        time.Duration
		maxAgeDays float64
		want       bool
	}{
		{"hours old within one day", 6 * time.Hour, 1, true},
		{"two days old within three days", 48 * time.Hour, 3, true},
		{"two days old past one day", 48 * time.Hour, 1, false},
		{"one second old with zero threshold", time.Second, 0, false},
		{"future mtime", -time.Hour, 1, false},
		{"future mtime with huge threshold", -time.Hour, 1e9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFileWithAge(t, dir, "table-"+tt.name+".xml", tt.age)

			fresh, err := IsFresh(path, tt.maxAgeDays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fresh)
		})
	}
}

func TestAgeDays(t *testing.T) {
	dir := t.TempDir()
	path := writeFileWithAge(t, dir, "table.xml", 36*time.Hour)

	age, err := AgeDays(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, age, 0.01)
}

func TestAgeDays_FutureMtimeIsNegative(t *testing.T) {
	dir := t.TempDir()
	path := writeFileWithAge(t, dir, "table.xml", -2*time.Hour)

	age, err := AgeDays(path)
	require.NoError(t, err)
	assert.Negative(t, age)
}

func TestAgeDays_Missing(t *testing.T) {
	_, err := AgeDays(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}
