package cache

import (
	"context"

	"github.com/google/uuid"
)

// Status describes what happened to a single resource during a refresh run.
type Status string

const (
	// StatusSkipped means no fetch was needed: the resource is local, or its
	// cached copy is still fresh.
	StatusSkipped Status = "skipped"
	// StatusRefreshed means a fetch ran and the cache file was replaced.
	StatusRefreshed Status = "refreshed"
	// StatusFailed means a fetch was attempted and failed; the previous cache
	// file, if any, is untouched.
	StatusFailed Status = "failed"
)

// ResourceResult is the per-resource outcome of a refresh run.
type ResourceResult struct {
	Resource Resource
	Status   Status
	// Err is set only when Status is StatusFailed.
	Err error
}

// Outcome aggregates the results of one refresh run.
type Outcome struct {
	// RunID correlates log lines and reports belonging to this run.
	RunID   uuid.UUID
	Results []ResourceResult
}

// AnyFailure reports whether at least one resource failed to refresh. The
// overall process exit status depends on this even when downstream checks
// still proceed against stale copies.
func (o *Outcome) AnyFailure() bool {
	for _, r := range o.Results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// FirstError returns the first per-resource error encountered, or nil when
// every resource was skipped or refreshed. All errors remain available on the
// individual results.
func (o *Outcome) FirstError() error {
	for _, r := range o.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// Orchestrator applies the staleness policy across a set of resources and
// fetches the ones that need it.
type Orchestrator struct {
	fetcher *Fetcher
}

// NewOrchestrator creates an Orchestrator using the given fetcher, or a
// default one when fetcher is nil.
func NewOrchestrator(fetcher *Fetcher) *Orchestrator {
	if fetcher == nil {
		fetcher = NewFetcher(nil)
	}
	return &Orchestrator{fetcher: fetcher}
}

// Refresh processes each resource independently: local resources are skipped
// outright, fresh remote resources are skipped, and stale or missing remote
// resources are fetched. A failure on one resource never aborts the others;
// one table may be reachable while another is not, and validation should
// still run against whatever local copies exist.
func (o *Orchestrator) Refresh(ctx context.Context, resources []Resource) *Outcome {
	outcome := &Outcome{
		RunID:   uuid.New(),
		Results: make([]ResourceResult, 0, len(resources)),
	}

	for _, res := range resources {
		outcome.Results = append(outcome.Results, o.refreshOne(ctx, res))
	}

	return outcome
}

func (o *Orchestrator) refreshOne(ctx context.Context, res Resource) ResourceResult {
	remote, ok := res.Source.(Remote)
	if !ok {
		// Local sources are caller-managed: present or not, they are never
		// fetched.
		return ResourceResult{Resource: res, Status: StatusSkipped}
	}

	fresh, err := IsFresh(res.CachePath, res.MaxAgeDays)
	if err != nil {
		return ResourceResult{Resource: res, Status: StatusFailed, Err: err}
	}
	if fresh {
		return ResourceResult{Resource: res, Status: StatusSkipped}
	}

	if err := o.fetcher.Fetch(ctx, remote, res.CachePath); err != nil {
		return ResourceResult{Resource: res, Status: StatusFailed, Err: err}
	}

	return ResourceResult{Resource: res, Status: StatusRefreshed}
}
