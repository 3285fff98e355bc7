// internal/app/feedsync/feeds.go
//
// Package feedsync is the realtime core of the portal: one live
// subscription per data collection, scoped to the signed-in user's
// school, feeding snapshot state, unread derivation, and guardian
// alert escalation. Everything a connected client sees flows through
// a Session.
package feedsync

// FeedID names one live feed.
type FeedID string

const (
	FeedChat          FeedID = "chat"
	FeedJournal       FeedID = "journal"
	FeedHomework      FeedID = "homework"
	FeedAlerts        FeedID = "alerts"
	FeedInbox         FeedID = "inbox"
	FeedEvents        FeedID = "events"
	FeedAnnouncements FeedID = "announcements"
	FeedDirectory     FeedID = "directory"
)

// WatermarkedFeeds are the feeds that carry an unread flag backed by a
// per-user last-read watermark. The others (events, announcements,
// directory) render without unread badges.
var WatermarkedFeeds = []FeedID{FeedChat, FeedJournal, FeedHomework, FeedAlerts, FeedInbox}

// ValidFeed reports whether id names a known feed.
func ValidFeed(id FeedID) bool {
	switch id {
	case FeedChat, FeedJournal, FeedHomework, FeedAlerts, FeedInbox,
		FeedEvents, FeedAnnouncements, FeedDirectory:
		return true
	}
	return false
}

// Watermarked reports whether the feed carries an unread flag.
func Watermarked(id FeedID) bool {
	for _, f := range WatermarkedFeeds {
		if f == id {
			return true
		}
	}
	return false
}
