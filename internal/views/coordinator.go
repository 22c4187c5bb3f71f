// ABOUTME: Generic view-state coordinator for list screens
// ABOUTME: Owns fetch state and the mutate-then-reconcile pattern shared by all entities

package views

import "context"

// LoadResult carries the outcome of a list fetch. Produced off the UI
// goroutine, applied on it.
type LoadResult[T any] struct {
	Items []T
	Err   error
}

// MutateResult carries the outcome of a mutation followed by a reconcile
// fetch. MutationErr is set when the mutation itself was rejected; in that
// case no fetch was issued and the caller keeps its form draft.
type MutateResult[T any] struct {
	MutationErr error
	Load        LoadResult[T]
}

// ListCoordinator owns the list state for one screen: the items, a loading
// flag, and the last surfaced error. The server is the source of truth:
// mutations never patch the list locally, they reconcile by re-fetching.
type ListCoordinator[T any] struct {
	fetch   func(context.Context) ([]T, error)
	items   []T
	loaded  bool
	loading bool
	lastErr error
}

// NewList creates a coordinator around a fetch function
func NewList[T any](fetch func(context.Context) ([]T, error)) *ListCoordinator[T] {
	return &ListCoordinator[T]{fetch: fetch}
}

// Begin marks a fetch as in flight
func (c *ListCoordinator[T]) Begin() {
	c.loading = true
}

// Fetch performs the list call without touching coordinator state, so it is
// safe to run inside a bubbletea command goroutine.
func (c *ListCoordinator[T]) Fetch(ctx context.Context) LoadResult[T] {
	items, err := c.fetch(ctx)
	return LoadResult[T]{Items: items, Err: err}
}

// Apply installs a fetch result. On success the list is replaced wholesale;
// on failure the previous list stays intact and the error is surfaced.
// The loading flag clears either way.
func (c *ListCoordinator[T]) Apply(res LoadResult[T]) {
	c.loading = false
	if res.Err != nil {
		c.lastErr = res.Err
		return
	}
	c.items = res.Items
	c.loaded = true
	c.lastErr = nil
}

// MutateThenFetch runs the mutation and, only after its response arrives,
// the reconcile fetch. Sequencing here prevents a stale refresh from racing
// a slow mutation. Safe to run inside a command goroutine.
func (c *ListCoordinator[T]) MutateThenFetch(ctx context.Context, mutation func(context.Context) error) MutateResult[T] {
	if err := mutation(ctx); err != nil {
		return MutateResult[T]{MutationErr: err}
	}
	return MutateResult[T]{Load: c.Fetch(ctx)}
}

// ApplyMutate installs a mutation outcome. A rejected mutation leaves the
// list untouched so the caller can keep its draft open for retry.
func (c *ListCoordinator[T]) ApplyMutate(res MutateResult[T]) {
	c.loading = false
	if res.MutationErr != nil {
		c.lastErr = res.MutationErr
		return
	}
	c.Apply(res.Load)
}

// Items returns the current list
func (c *ListCoordinator[T]) Items() []T {
	return c.items
}

// Loaded reports whether at least one fetch has succeeded
func (c *ListCoordinator[T]) Loaded() bool {
	return c.loaded
}

// Loading reports whether a fetch is in flight
func (c *ListCoordinator[T]) Loading() bool {
	return c.loading
}

// Err returns the last surfaced error, or nil
func (c *ListCoordinator[T]) Err() error {
	return c.lastErr
}

// ClearErr drops the surfaced error after it has been displayed
func (c *ListCoordinator[T]) ClearErr() {
	c.lastErr = nil
}
