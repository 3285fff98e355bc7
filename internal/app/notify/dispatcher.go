// internal/app/notify/dispatcher.go
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/push"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const deliverTimeout = 15 * time.Second

// Dispatcher resolves an Event's recipients and fans the push payload
// out to the relay. Delivery is best effort: failures are logged and
// never surface to the request that triggered the event.
type Dispatcher struct {
	users  *userstore.Store
	sender push.Sender
	log    *zap.Logger
}

func NewDispatcher(users *userstore.Store, sender push.Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{users: users, sender: sender, log: log}
}

// Dispatch delivers the event in the background. The caller's request
// never waits on (or learns about) push delivery.
func (d *Dispatcher) Dispatch(e Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		d.Deliver(ctx, e)
	}()
}

// Deliver resolves recipients and sends synchronously. Exposed so
// tests can drive the dispatcher deterministically.
func (d *Dispatcher) Deliver(ctx context.Context, e Event) {
	recipients, n, err := d.resolve(ctx, e)
	if err != nil {
		d.log.Warn("push recipient resolution failed",
			zap.String("event", e.kind()),
			zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, userID := range recipients {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			note := n
			note.UserID = userID
			if _, err := d.sender.Send(ctx, note); err != nil {
				d.log.Warn("push delivery failed",
					zap.String("event", e.kind()),
					zap.String("user_id", userID),
					zap.Error(err))
			}
		}(userID)
	}
	wg.Wait()

	d.log.Debug("push fan-out complete",
		zap.String("event", e.kind()),
		zap.Int("recipients", len(recipients)))
}

// resolve maps an event to its recipient user ids and the payload all
// of them receive. UserID on the returned notification is left empty;
// Deliver stamps it per recipient.
func (d *Dispatcher) resolve(ctx context.Context, e Event) ([]string, push.Notification, error) {
	switch ev := e.(type) {
	case AssignmentCreated:
		return d.resolveAssignment(ctx, ev)

	case AnnouncementPosted:
		users, err := d.users.ListRecipients(ctx, ev.Announcement.SchoolID, userstore.RecipientFilter{
			Roles: models.StaffRoles,
		}, ev.Actor.ID)
		if err != nil {
			return nil, push.Notification{}, err
		}
		return ids(users), push.Notification{
			Title:   "Staff announcement",
			Message: truncate(ev.Announcement.Title, 80),
			Icon:    "📢",
			URL:     "/announcements",
		}, nil

	case AlertLogged:
		guardian, err := d.guardianOf(ctx, ev.Alert.StudentID)
		if err != nil {
			return nil, push.Notification{}, err
		}
		if guardian == "" || guardian == ev.Actor.ID.Hex() {
			return nil, push.Notification{}, nil
		}
		return []string{guardian}, push.Notification{
			Title:   "Alert for " + ev.Alert.StudentName,
			Message: alertText(ev.Alert),
			Icon:    "🔔",
			URL:     "/alerts",
		}, nil

	case AlertCommented:
		guardian, err := d.guardianOf(ctx, ev.Alert.StudentID)
		if err != nil {
			return nil, push.Notification{}, err
		}
		set := map[string]bool{}
		if guardian != "" {
			set[guardian] = true
		}
		if !ev.Alert.TeacherID.IsZero() {
			set[ev.Alert.TeacherID.Hex()] = true
		}
		delete(set, ev.Actor.ID.Hex())
		var out []string
		for id := range set {
			out = append(out, id)
		}
		return out, push.Notification{
			Title:   "New reply on " + ev.Alert.StudentName + "'s alert",
			Message: truncate(ev.Comment.Text, 80),
			Icon:    "💬",
			URL:     "/alerts",
		}, nil

	case MessageSent:
		other, ok := ev.Conversation.OtherParticipant(ev.Actor.ID)
		if !ok {
			return nil, push.Notification{}, nil
		}
		return []string{other.Hex()}, push.Notification{
			Title:   "Message from " + ev.Actor.FullName,
			Message: truncate(ev.Message.Text, 80),
			Icon:    "✉️",
			URL:     "/inbox/" + ev.Conversation.ID,
		}, nil

	case ChatPosted:
		users, err := d.users.ListRecipients(ctx, ev.Message.SchoolID, userstore.RecipientFilter{}, ev.Actor.ID)
		if err != nil {
			return nil, push.Notification{}, err
		}
		return ids(users), push.Notification{
			Title:   ev.Actor.FullName + " in school chat",
			Message: truncate(ev.Message.Text, 80),
			Icon:    "💬",
			URL:     "/chat",
		}, nil
	}

	return nil, push.Notification{}, fmt.Errorf("notify: unknown event %T", e)
}

// resolveAssignment targets the students the posting reaches plus each
// student's guardian. A school-wide posting reaches every student.
func (d *Dispatcher) resolveAssignment(ctx context.Context, ev AssignmentCreated) ([]string, push.Notification, error) {
	f := userstore.RecipientFilter{Roles: []string{models.RoleStudent}}
	if ev.Assignment.Visibility != "school" {
		f.Grade = ev.Assignment.Grade
	}
	students, err := d.users.ListRecipients(ctx, ev.Assignment.SchoolID, f, ev.Actor.ID)
	if err != nil {
		return nil, push.Notification{}, err
	}

	set := map[string]bool{}
	for _, st := range students {
		set[st.ID.Hex()] = true
		if st.ParentID != nil && !st.ParentID.IsZero() {
			set[st.ParentID.Hex()] = true
		}
	}
	delete(set, ev.Actor.ID.Hex())

	var out []string
	for id := range set {
		out = append(out, id)
	}
	return out, push.Notification{
		Title:   "New homework: " + truncate(ev.Assignment.Title, 60),
		Message: ev.Actor.FullName + " posted homework for grade " + ev.Assignment.Grade,
		Icon:    "📚",
		URL:     "/homework",
	}, nil
}

// guardianOf returns the hex id of a student's guardian, or "" when
// the student has none on record.
func (d *Dispatcher) guardianOf(ctx context.Context, studentID primitive.ObjectID) (string, error) {
	student, err := d.users.GetByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	if student == nil || student.ParentID == nil || student.ParentID.IsZero() {
		return "", nil
	}
	return student.ParentID.Hex(), nil
}

func alertText(a models.Alert) string {
	switch a.Type {
	case models.AlertAbsent:
		return a.StudentName + " was marked absent"
	case models.AlertSick:
		return a.StudentName + " was reported sick"
	case models.AlertLate:
		return a.StudentName + " arrived late"
	}
	return truncate(a.Note, 80)
}

func ids(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID.Hex())
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
