package feedsync

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newLiveSession(userID primitive.ObjectID, activeTab FeedID, marks map[FeedID]time.Time) *Session {
	return &Session{
		deps:    Deps{Log: zap.NewNop()},
		userID:  userID,
		tracker: NewUnreadTracker(activeTab, marks, time.Now().UTC()),
		updates: make(chan Update, 8),
	}
}

func drainUnread(t *testing.T, s *Session) map[FeedID]bool {
	t.Helper()
	select {
	case u := <-s.updates:
		if u.Type != UpdateUnread {
			t.Fatalf("expected an unread update, got %q", u.Type)
		}
		return u.Unread
	default:
		t.Fatal("no update was pushed to the session")
		return nil
	}
}

func TestRegistry_ActivateTabClearsLiveFlag(t *testing.T) {
	userID := primitive.NewObjectID()
	old := time.Now().UTC().Add(-time.Hour)
	s := newLiveSession(userID, FeedHomework, map[FeedID]time.Time{FeedChat: old})

	// New chat content flags the feed while another tab is active.
	if !s.tracker.Observe(FeedChat, time.Now().UTC()) {
		t.Fatal("expected chat to flag unread")
	}

	reg := NewRegistry()
	reg.Add(s)
	reg.ActivateTab(userID, FeedChat)

	flags := drainUnread(t, s)
	if flags[FeedChat] {
		t.Error("mirrored tab switch should clear the chat flag")
	}
	if s.tracker.Flags()[FeedChat] {
		t.Error("tracker still flags chat after the mirrored switch")
	}
}

func TestRegistry_KeyedByUser(t *testing.T) {
	old := time.Now().UTC().Add(-time.Hour)
	mine := newLiveSession(primitive.NewObjectID(), FeedHomework, map[FeedID]time.Time{FeedChat: old})
	theirs := newLiveSession(primitive.NewObjectID(), FeedHomework, map[FeedID]time.Time{FeedChat: old})
	theirs.tracker.Observe(FeedChat, time.Now().UTC())

	reg := NewRegistry()
	reg.Add(mine)
	reg.Add(theirs)

	reg.ActivateTab(mine.userID, FeedChat)

	if len(mine.updates) != 1 {
		t.Errorf("own session should get one update, got %d", len(mine.updates))
	}
	if len(theirs.updates) != 0 {
		t.Errorf("another user's session must not be touched, got %d updates", len(theirs.updates))
	}
	if !theirs.tracker.Flags()[FeedChat] {
		t.Error("another user's unread flag was cleared")
	}
}

func TestRegistry_RemoveStopsDelivery(t *testing.T) {
	userID := primitive.NewObjectID()
	s := newLiveSession(userID, FeedHomework, nil)

	reg := NewRegistry()
	reg.Add(s)
	reg.Remove(s)
	reg.ActivateTab(userID, FeedChat)

	if len(s.updates) != 0 {
		t.Errorf("removed session should get no updates, got %d", len(s.updates))
	}
}
