package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultUserAgent is the user agent string for table downloads.
const DefaultUserAgent = "cftables/1.0"

// tempSuffix is appended to the cache path to form the download destination.
// The temporary file lives in the same directory as the final path so the
// install rename stays on one filesystem.
const tempSuffix = ".part"

// Options configures fetch behavior.
type Options struct {
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher downloads remote resources and installs them atomically over their
// cache paths. The client carries no timeout: a stalled server blocks the
// run, which is acceptable for a short-lived CLI driven by an external
// scheduler.
type Fetcher struct {
	client  *http.Client
	options *Options
}

// NewFetcher creates a Fetcher with the given options, falling back to
// defaults when opts is nil.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Fetcher{
		client:  &http.Client{},
		options: opts,
	}
}

// Fetch downloads src into localPath. The content is streamed into a
// temporary sibling file, made world-readable, and renamed over localPath in
// a single step, so no reader of localPath ever observes partial content. On
// any failure localPath is left exactly as it was; a stray temporary file may
// remain and is removed on a best-effort basis.
//
// The signature accepts only Remote locations: local sources are
// caller-managed and must never reach the fetcher.
func (f *Fetcher) Fetch(ctx context.Context, src Remote, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return &FetchError{URL: src.URL, Message: "failed to create spool directory", Cause: err}
	}

	tempPath := localPath + tempSuffix

	out, err := os.Create(tempPath)
	if err != nil {
		return &FetchError{URL: src.URL, Message: "failed to create temporary file", Cause: err}
	}

	if err := f.download(ctx, src.URL, out); err != nil {
		_ = out.Close()
		_ = os.Remove(tempPath)
		return err
	}

	// Both streams must be closed before the rename publishes the file.
	if err := out.Close(); err != nil {
		_ = os.Remove(tempPath)
		return &FetchError{URL: src.URL, Message: "failed to finalize temporary file", Cause: err}
	}

	// The downstream checker may run as a different user than the one that
	// refreshed the cache, so the table has to be readable by everyone.
	if err := os.Chmod(tempPath, 0644); err != nil {
		_ = os.Remove(tempPath)
		return &FetchError{URL: src.URL, Message: "failed to set permissions", Cause: err}
	}

	if err := os.Rename(tempPath, localPath); err != nil {
		_ = os.Remove(tempPath)
		return &FetchError{URL: src.URL, Message: "failed to install downloaded file", Cause: err}
	}

	return nil
}

// download streams the body of url into w in bounded chunks.
func (f *Fetcher) download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.options.UserAgent)
	for key, value := range f.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &FetchError{URL: url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: url, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return &FetchError{URL: url, Message: "transfer interrupted", Cause: err}
	}

	return nil
}
