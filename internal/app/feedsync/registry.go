// internal/app/feedsync/registry.go
package feedsync

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registry tracks the live Sessions per user. Tab switches arriving
// over REST go through here so the same in-memory unread state the
// socket pushes stays in step with the persisted watermarks; a user
// with several open sockets has every one mirrored.
type Registry struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]map[*Session]struct{}
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[primitive.ObjectID]map[*Session]struct{})}
}

// Add registers a session for its user.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sessions[s.userID]
	if !ok {
		set = make(map[*Session]struct{})
		r.sessions[s.userID] = set
	}
	set[s] = struct{}{}
}

// Remove drops a session. Call before Close so a mirrored switch
// never lands on a closed update stream.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.sessions[s.userID]
	delete(set, s)
	if len(set) == 0 {
		delete(r.sessions, s.userID)
	}
}

// ActivateTab mirrors a tab switch into every live session for the
// user: each one clears the feed's unread flag and pushes fresh flags
// downstream. Persistence stays with the caller; this touches only
// in-memory state.
func (r *Registry) ActivateTab(userID primitive.ObjectID, feed FeedID) {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions[userID]))
	for s := range r.sessions[userID] {
		live = append(live, s)
	}
	r.mu.Unlock()

	for _, s := range live {
		s.SyncTab(feed)
	}
}
