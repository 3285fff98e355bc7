// internal/app/feedsync/state.go
package feedsync

import "time"

// Phase is the tagged state of one feed's subscription.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Snapshot is the full authoritative state of one feed at a point in
// time. Every subscription event replaces the previous snapshot
// wholesale; nothing is patched in place. A failed subscription
// resolves to an explicit empty Failed snapshot rather than an error
// that could block the other feeds.
type Snapshot struct {
	Feed   FeedID    `json:"feed"`
	Phase  Phase     `json:"phase"`
	Items  any       `json:"items"`
	Count  int       `json:"count"`
	Newest time.Time `json:"newest,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

// loadingSnapshot is the initial state of every feed.
func loadingSnapshot(feed FeedID) Snapshot {
	return Snapshot{Feed: feed, Phase: PhaseLoading, Items: []any{}}
}

// failedSnapshot resolves a broken subscription to empty.
func failedSnapshot(feed FeedID, reason string) Snapshot {
	return Snapshot{Feed: feed, Phase: PhaseFailed, Items: []any{}, Reason: reason}
}

// loadedSnapshot wraps a freshly loaded list.
func loadedSnapshot(feed FeedID, items any, count int, newest time.Time) Snapshot {
	return Snapshot{Feed: feed, Phase: PhaseLoaded, Items: items, Count: count, Newest: newest}
}
