package feedsync

import (
	"testing"
	"time"
)

func TestObserve_FlagsNewContent(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour)
	tr := NewUnreadTracker(FeedHomework, nil, start)

	changed := tr.Observe(FeedChat, start.Add(time.Minute))
	if !changed {
		t.Error("expected flag change for new content")
	}
	if !tr.Flags()[FeedChat] {
		t.Error("chat flag should be set")
	}
}

func TestObserve_ActiveTabNeverFlags(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour)
	tr := NewUnreadTracker(FeedChat, nil, start)

	tr.Observe(FeedChat, time.Now().UTC())
	if tr.Flags()[FeedChat] {
		t.Error("the active tab must never carry an unread flag")
	}
}

func TestObserve_OldContentIgnored(t *testing.T) {
	start := time.Now().UTC()
	tr := NewUnreadTracker(FeedHomework, nil, start)

	if tr.Observe(FeedChat, start.Add(-time.Minute)) {
		t.Error("content older than the watermark must not flag")
	}
	if tr.Observe(FeedChat, time.Time{}) {
		t.Error("an empty feed must not flag")
	}
}

func TestObserve_PersistedWatermarkWins(t *testing.T) {
	start := time.Now().UTC()
	persisted := start.Add(time.Hour)
	tr := NewUnreadTracker(FeedHomework, map[FeedID]time.Time{
		FeedChat: persisted,
	}, start)

	// Newer than session start but older than the stored watermark.
	if tr.Observe(FeedChat, start.Add(time.Minute)) {
		t.Error("content below the persisted watermark must not flag")
	}
	if !tr.Observe(FeedChat, persisted.Add(time.Minute)) {
		t.Error("content above the persisted watermark should flag")
	}
}

func TestObserve_UnwatermarkedFeedIgnored(t *testing.T) {
	tr := NewUnreadTracker(FeedHomework, nil, time.Now().UTC().Add(-time.Hour))
	if tr.Observe(FeedDirectory, time.Now().UTC()) {
		t.Error("directory carries no unread flag")
	}
}

func TestActivate_ClearsOnlyThatFeed(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour)
	tr := NewUnreadTracker(FeedHomework, nil, start)

	tr.Observe(FeedChat, start.Add(time.Minute))
	tr.Observe(FeedJournal, start.Add(time.Minute))

	now := time.Now().UTC()
	cleared, watermark := tr.Activate(FeedChat, now)
	if !cleared {
		t.Error("expected the chat flag to be cleared")
	}
	if !watermark.Equal(now) {
		t.Errorf("watermark: got %v, want %v", watermark, now)
	}

	flags := tr.Flags()
	if flags[FeedChat] {
		t.Error("chat flag should be cleared after activation")
	}
	if !flags[FeedJournal] {
		t.Error("journal flag must survive another tab's activation")
	}
}

func TestActivate_AdvancesWatermark(t *testing.T) {
	start := time.Now().UTC().Add(-time.Hour)
	tr := NewUnreadTracker(FeedHomework, nil, start)

	now := time.Now().UTC()
	tr.Activate(FeedChat, now)

	// Content older than the activation no longer flags.
	if tr.Observe(FeedChat, now.Add(-time.Second)) {
		t.Error("content read during the visit must not re-flag")
	}
}

func TestValidFeed(t *testing.T) {
	for _, f := range []FeedID{FeedChat, FeedJournal, FeedHomework, FeedAlerts,
		FeedInbox, FeedEvents, FeedAnnouncements, FeedDirectory} {
		if !ValidFeed(f) {
			t.Errorf("%s should be valid", f)
		}
	}
	if ValidFeed("gradebook") {
		t.Error("unknown feed should be invalid")
	}
}

func TestWatermarked(t *testing.T) {
	for _, f := range WatermarkedFeeds {
		if !Watermarked(f) {
			t.Errorf("%s should be watermarked", f)
		}
	}
	for _, f := range []FeedID{FeedEvents, FeedAnnouncements, FeedDirectory} {
		if Watermarked(f) {
			t.Errorf("%s should not be watermarked", f)
		}
	}
}
