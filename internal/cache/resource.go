// Package cache manages local copies of the CF reference tables: it decides
// when a cached copy is stale, fetches replacements atomically, and reports
// per-resource refresh outcomes.
package cache

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Location is the classified form of a configured source string. It is either
// a Remote (a true URL, subject to the refresh protocol) or a LocalPath (an
// administrator-supplied file that is never fetched).
type Location interface {
	// Source returns the original configured source string.
	Source() string
}

// Remote identifies a resource reachable over the network. Only Remote values
// can be handed to the Fetcher.
type Remote struct {
	URL string
}

// Source returns the resource URL.
func (r Remote) Source() string { return r.URL }

// LocalPath identifies a caller-managed file on the local filesystem.
// Local resources are passed through unchanged: never fetched, even when
// missing or stale.
type LocalPath struct {
	Path string
}

// Source returns the filesystem path.
func (l LocalPath) Source() string { return l.Path }

// Classify determines whether a configured source string names a remote
// resource or a local file. A source is local when it carries a file scheme,
// starts with a path separator, or contains no scheme separator at all;
// everything else is remote.
func Classify(source string) Location {
	if strings.HasPrefix(source, "file:") {
		trimmed := strings.TrimPrefix(source, "file://")
		trimmed = strings.TrimPrefix(trimmed, "file:")
		return LocalPath{Path: trimmed}
	}
	if strings.HasPrefix(source, "/") || !strings.Contains(source, "://") {
		return LocalPath{Path: source}
	}
	return Remote{URL: source}
}

// Resource binds a named reference table to its classified source, its cache
// destination, and the freshness threshold that governs it. Resources are
// built once per run and not mutated afterwards.
type Resource struct {
	// Name is a short human-readable label used in reports ("standard names").
	Name string
	// Source is the classified origin of the resource.
	Source Location
	// CachePath is where the local copy lives. For remote sources this is the
	// basename of the URL joined to the spool directory; for local sources it
	// is the configured path itself.
	CachePath string
	// MaxAgeDays is the freshness threshold in days. Zero forces a refresh on
	// every run.
	MaxAgeDays float64
}

// NewResource classifies source and derives the cache destination inside
// spoolDir. The derivation is deterministic: the same (source, spoolDir) pair
// always yields the same CachePath, so successive runs observe the same file.
func NewResource(name, source, spoolDir string, maxAgeDays float64) Resource {
	loc := Classify(source)
	return Resource{
		Name:       name,
		Source:     loc,
		CachePath:  cachePathFor(loc, spoolDir),
		MaxAgeDays: maxAgeDays,
	}
}

func cachePathFor(loc Location, spoolDir string) string {
	switch l := loc.(type) {
	case Remote:
		return filepath.Join(spoolDir, remoteBasename(l.URL))
	case LocalPath:
		return l.Path
	}
	return ""
}

// remoteBasename extracts the final path element of a URL for use as the
// cache filename. Falls back to slicing the raw string when the URL does not
// parse, so a fetchable-but-odd URL still maps to a stable name.
func remoteBasename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(rawURL)
}
