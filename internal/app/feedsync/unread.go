// internal/app/feedsync/unread.go
package feedsync

import (
	"sync"
	"time"
)

// UnreadTracker derives per-feed "has new content" flags from feed
// snapshots and last-read watermarks. One tracker exists per Session;
// all feeds share it, so the whole policy is one reducer instead of a
// parallel boolean per feed.
//
// Rules:
//   - a snapshot whose newest item exceeds the feed's watermark sets
//     that feed's flag, unless the feed is the active tab;
//   - activating a tab clears exactly that feed's flag and advances
//     its watermark to now;
//   - an empty feed never sets its flag;
//   - a watermark that was never persisted is seeded to the session
//     start time, so a first sign-in does not flag all history unread.
type UnreadTracker struct {
	mu        sync.Mutex
	flags     map[FeedID]bool
	marks     map[FeedID]time.Time
	activeTab FeedID
}

// NewUnreadTracker seeds the tracker with persisted watermarks. Feeds
// missing from marks get sessionStart as their watermark.
func NewUnreadTracker(activeTab FeedID, marks map[FeedID]time.Time, sessionStart time.Time) *UnreadTracker {
	t := &UnreadTracker{
		flags:     make(map[FeedID]bool, len(WatermarkedFeeds)),
		marks:     make(map[FeedID]time.Time, len(WatermarkedFeeds)),
		activeTab: activeTab,
	}
	for _, f := range WatermarkedFeeds {
		m, ok := marks[f]
		if !ok || m.IsZero() {
			m = sessionStart
		}
		t.marks[f] = m
	}
	return t
}

// Observe feeds one snapshot's newest-item timestamp into the reducer.
// It returns true when the feed's flag changed.
func (t *UnreadTracker) Observe(feed FeedID, newest time.Time) bool {
	if !Watermarked(feed) {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if feed == t.activeTab {
		// Viewing the feed counts as reading it.
		t.marks[feed] = time.Now().UTC()
		if t.flags[feed] {
			t.flags[feed] = false
			return true
		}
		return false
	}

	if newest.IsZero() || !newest.After(t.marks[feed]) {
		return false
	}
	if t.flags[feed] {
		return false
	}
	t.flags[feed] = true
	return true
}

// Activate switches the active tab. It clears the activated feed's
// flag and advances its watermark; no other feed's flag is touched.
// The advanced watermark is returned so the caller can persist it.
func (t *UnreadTracker) Activate(feed FeedID, now time.Time) (cleared bool, watermark time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeTab = feed
	if !Watermarked(feed) {
		return false, time.Time{}
	}
	t.marks[feed] = now
	cleared = t.flags[feed]
	t.flags[feed] = false
	return cleared, now
}

// Watermark returns the current watermark for one feed.
func (t *UnreadTracker) Watermark(feed FeedID) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.marks[feed]
}

// Flags returns a copy of the current unread flags.
func (t *UnreadTracker) Flags() map[FeedID]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[FeedID]bool, len(t.flags))
	for f, v := range t.flags {
		out[f] = v
	}
	return out
}
