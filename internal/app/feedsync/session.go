// internal/app/feedsync/session.go
package feedsync

import (
	"context"
	"sync"
	"time"

	alertstore "github.com/homeclass/portal/internal/app/store/alerts"
	announcementstore "github.com/homeclass/portal/internal/app/store/announcements"
	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	chatstore "github.com/homeclass/portal/internal/app/store/chatmessages"
	conversationstore "github.com/homeclass/portal/internal/app/store/conversations"
	eventstore "github.com/homeclass/portal/internal/app/store/events"
	readmarkstore "github.com/homeclass/portal/internal/app/store/readmarks"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	yearbookstore "github.com/homeclass/portal/internal/app/store/yearbook"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Deps bundles the stores a Session reads from.
type Deps struct {
	Users         *userstore.Store
	Assignments   *assignmentstore.Store
	Chat          *chatstore.Store
	Conversations *conversationstore.Store
	Alerts        *alertstore.Store
	Yearbook      *yearbookstore.Store
	Announcements *announcementstore.Store
	Events        *eventstore.Store
	ReadMarks     *readmarkstore.Store
	Log           *zap.Logger
}

// Update types pushed to the client.
const (
	UpdateSnapshot   = "snapshot"
	UpdateUnread     = "unread"
	UpdateEscalation = "escalation"
)

// Update is one message on a Session's outbound stream.
type Update struct {
	Type       string          `json:"type"`
	Snapshot   *Snapshot       `json:"snapshot,omitempty"`
	Unread     map[FeedID]bool `json:"unread,omitempty"`
	Escalation *models.Alert   `json:"escalation,omitempty"`
}

type loaderFunc func(ctx context.Context) (items any, count int, newest time.Time, err error)
type watchFunc func(ctx context.Context) (*mongo.ChangeStream, error)

type feedSpec struct {
	id    FeedID
	load  loaderFunc
	watch watchFunc
	// after runs on every successful reload with the typed item list,
	// before unread derivation. Only the alerts feed uses it (guardian
	// escalation).
	after func(items any)
}

// Session is one signed-in user's set of live subscriptions. Exactly
// one watcher runs per feed; all of them share the session context and
// are torn down together on Close (sign-out, tenant change, socket
// drop).
type Session struct {
	deps     Deps
	userID   primitive.ObjectID
	schoolID primitive.ObjectID
	role     string
	grade    string

	tracker    *UnreadTracker
	dependents map[string]bool

	updates chan Update
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu              sync.Mutex
	closed          bool
	escalationShown bool
}

// NewSession loads the user's persisted state (active tab, watermarks,
// dependents for guardians) and prepares the subscription set. Call
// Start to begin streaming and Close to tear everything down.
func NewSession(ctx context.Context, deps Deps, user *auth.SessionUser) (*Session, error) {
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, err
	}
	schoolID, err := primitive.ObjectIDFromHex(user.SchoolID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		deps:     deps,
		userID:   userID,
		schoolID: schoolID,
		role:     user.Role,
		grade:    user.Grade,
		updates:  make(chan Update, 64),
	}

	st, err := deps.ReadMarks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	marks := make(map[FeedID]time.Time, len(st.LastRead))
	for feed, ts := range st.LastRead {
		marks[FeedID(feed)] = ts
	}
	activeTab := FeedID(st.ActiveTab)
	if !ValidFeed(activeTab) {
		activeTab = FeedHomework
	}
	s.tracker = NewUnreadTracker(activeTab, marks, time.Now().UTC())

	if user.Role == models.RoleParent {
		kids, err := deps.Users.Dependents(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.dependents = make(map[string]bool, len(kids))
		for _, d := range kids {
			s.dependents[d.ID.Hex()] = true
		}
	}

	return s, nil
}

// Updates is the outbound stream consumed by the websocket handler.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Start opens every feed subscription. Each feed runs independently;
// one failing never blocks the others.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, spec := range s.buildSpecs() {
		s.wg.Add(1)
		go s.runFeed(ctx, spec)
	}
}

// Close disposes every subscription together and closes the update
// stream. Safe to call once.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	s.mu.Unlock()
}

// ActivateTab records a tab switch arriving over the socket: the
// activated feed's unread flag is cleared, its watermark advances to
// now and is persisted, and no other feed's flag is touched.
func (s *Session) ActivateTab(ctx context.Context, feed FeedID) {
	now := time.Now().UTC()
	s.applyTab(feed, now)

	if err := s.deps.ReadMarks.SetActiveTab(ctx, s.userID, string(feed)); err != nil {
		s.deps.Log.Warn("persist active tab failed", zap.Error(err))
	}
	if Watermarked(feed) {
		if err := s.deps.ReadMarks.SetLastRead(ctx, s.userID, string(feed), now); err != nil {
			s.deps.Log.Warn("persist watermark failed",
				zap.String("feed", string(feed)), zap.Error(err))
		}
	}
}

// SyncTab mirrors a tab switch that was made over REST and already
// persisted there. Only the in-memory tracker moves; no store writes.
func (s *Session) SyncTab(feed FeedID) {
	s.applyTab(feed, time.Now().UTC())
}

func (s *Session) applyTab(feed FeedID, now time.Time) {
	s.tracker.Activate(feed, now)
	s.publish(Update{Type: UpdateUnread, Unread: s.tracker.Flags()})
}

// Unread returns the current unread flags.
func (s *Session) Unread() map[FeedID]bool {
	return s.tracker.Flags()
}

/* -------------------------------------------------------------------------- */
/* Feed wiring                                                                */
/* -------------------------------------------------------------------------- */

func (s *Session) buildSpecs() []feedSpec {
	userHex := s.userID.Hex()
	staff := s.role == models.RoleTeacher || s.role == models.RolePrincipal

	specs := []feedSpec{
		{
			id: FeedChat,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				msgs, err := s.deps.Chat.ListBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				var newest time.Time
				if n := len(msgs); n > 0 {
					newest = msgs[n-1].Timestamp
				}
				return msgs, len(msgs), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Chat.Watch(ctx, s.schoolID)
			},
		},
		{
			id: FeedHomework,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				all, err := s.deps.Assignments.ListBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				now := time.Now().UTC()
				visible := make([]models.Assignment, 0, len(all))
				var newest time.Time
				for _, a := range all {
					if !staff && a.HiddenFor(userHex, now) {
						continue
					}
					visible = append(visible, a)
					if a.CreatedAt.After(newest) {
						newest = a.CreatedAt
					}
				}
				return visible, len(visible), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Assignments.Watch(ctx, s.schoolID)
			},
		},
		{
			id: FeedJournal,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				entries, err := s.deps.Yearbook.ListBySchool(ctx, s.schoolID, s.journalGrade())
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				var newest time.Time
				if len(entries) > 0 {
					newest = entries[0].Timestamp // newest-first sort
				}
				return entries, len(entries), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Yearbook.Watch(ctx, s.schoolID)
			},
		},
		{
			id: FeedAlerts,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				alerts, err := s.deps.Alerts.ListActiveBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				var newest time.Time
				if len(alerts) > 0 {
					newest = alerts[0].Timestamp // newest-first sort
				}
				return alerts, len(alerts), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Alerts.Watch(ctx, s.schoolID)
			},
			after: s.checkEscalation,
		},
		{
			id: FeedInbox,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				convs, err := s.deps.Conversations.ListForUser(ctx, s.userID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				// Newest incoming message drives the inbox badge; the
				// user's own sends never flag their own inbox.
				var newest time.Time
				for _, c := range convs {
					if c.LastSenderID != userHex && c.LastTimestamp.After(newest) {
						newest = c.LastTimestamp
					}
				}
				return convs, len(convs), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Conversations.Watch(ctx, s.userID)
			},
		},
		{
			id: FeedEvents,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				events, err := s.deps.Events.ListBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				return events, len(events), time.Time{}, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Events.Watch(ctx, s.schoolID)
			},
		},
		{
			id: FeedDirectory,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				users, err := s.deps.Users.ListBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				return users, len(users), time.Time{}, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Users.Watch(ctx, s.schoolID)
			},
		},
	}

	// The announcements feed is staff-only; other roles never get a
	// subscription for it at all.
	if staff {
		specs = append(specs, feedSpec{
			id: FeedAnnouncements,
			load: func(ctx context.Context) (any, int, time.Time, error) {
				anns, err := s.deps.Announcements.ListBySchool(ctx, s.schoolID)
				if err != nil {
					return nil, 0, time.Time{}, err
				}
				var newest time.Time
				if len(anns) > 0 {
					newest = anns[0].CreatedAt // newest-first sort
				}
				return anns, len(anns), newest, nil
			},
			watch: func(ctx context.Context) (*mongo.ChangeStream, error) {
				return s.deps.Announcements.Watch(ctx, s.schoolID)
			},
		})
	}

	return specs
}

// journalGrade narrows the yearbook feed: students and their parents
// see their grade's journal; staff see the whole school.
func (s *Session) journalGrade() string {
	if s.role == models.RoleStudent || s.role == models.RoleParent {
		return s.grade
	}
	return ""
}

func (s *Session) runFeed(ctx context.Context, spec feedSpec) {
	defer s.wg.Done()

	s.publish(Update{Type: UpdateSnapshot, Snapshot: snapPtr(loadingSnapshot(spec.id))})
	s.reload(ctx, spec)

	stream, err := spec.watch(ctx)
	if err != nil {
		// Permission-denied and missing-index failures land here:
		// resolve this one feed to empty and leave the rest running.
		s.failFeed(spec.id, err)
		return
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		s.reload(ctx, spec)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.failFeed(spec.id, err)
	}
}

func (s *Session) reload(ctx context.Context, spec feedSpec) {
	items, count, newest, err := spec.load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.failFeed(spec.id, err)
		}
		return
	}
	s.publish(Update{Type: UpdateSnapshot, Snapshot: snapPtr(loadedSnapshot(spec.id, items, count, newest))})

	if spec.after != nil {
		spec.after(items)
	}
	if s.tracker.Observe(spec.id, newest) {
		s.publish(Update{Type: UpdateUnread, Unread: s.tracker.Flags()})
	}
}

func (s *Session) failFeed(feed FeedID, err error) {
	s.deps.Log.Warn("feed subscription degraded to empty",
		zap.String("feed", string(feed)),
		zap.String("user", s.userID.Hex()),
		zap.Error(err))
	s.publish(Update{Type: UpdateSnapshot, Snapshot: snapPtr(failedSnapshot(feed, err.Error()))})
}

// checkEscalation surfaces at most one guardian escalation per session
// mount. Dismissal is client-local; the alert stays active server-side.
func (s *Session) checkEscalation(items any) {
	if len(s.dependents) == 0 {
		return
	}
	alerts, ok := items.([]models.Alert)
	if !ok {
		return
	}

	s.mu.Lock()
	shown := s.escalationShown
	s.mu.Unlock()
	if shown {
		return
	}

	alert, ok := SelectEscalation(alerts, s.dependents, s.tracker.Watermark(FeedAlerts))
	if !ok {
		return
	}

	s.mu.Lock()
	if s.escalationShown {
		s.mu.Unlock()
		return
	}
	s.escalationShown = true
	s.mu.Unlock()

	s.publish(Update{Type: UpdateEscalation, Escalation: &alert})
}

// publish pushes an update without ever blocking a feed goroutine; a
// slow consumer loses intermediate snapshots, never the final state,
// because every reload publishes the full list again.
func (s *Session) publish(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.updates <- u:
	default:
		s.deps.Log.Debug("session update dropped (slow consumer)",
			zap.String("type", u.Type))
	}
}

func snapPtr(s Snapshot) *Snapshot {
	return &s
}
