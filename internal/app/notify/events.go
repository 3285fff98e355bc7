// internal/app/notify/events.go
package notify

import (
	"github.com/homeclass/portal/internal/domain/models"
)

// Event is a domain happening that may fan out as push notifications.
// Each event carries enough context for the dispatcher to resolve its
// recipients without re-reading the triggering document.
type Event interface {
	kind() string
}

// AssignmentCreated fires when a staff member posts homework. Recipients
// are the students the assignment targets plus their guardians.
type AssignmentCreated struct {
	Assignment models.Assignment
	Actor      models.User
	SchoolName string
}

func (AssignmentCreated) kind() string { return "assignment_created" }

// AnnouncementPosted fires when a staff member posts to the staff board.
// Recipients are the school's other staff members.
type AnnouncementPosted struct {
	Announcement models.Announcement
	Actor        models.User
}

func (AnnouncementPosted) kind() string { return "announcement_posted" }

// AlertLogged fires when a teacher logs an absence or health alert.
// The recipient is the student's guardian.
type AlertLogged struct {
	Alert models.Alert
	Actor models.User
}

func (AlertLogged) kind() string { return "alert_logged" }

// AlertCommented fires when someone replies on an alert thread.
// Recipients are the guardian and the logging teacher, minus the actor.
type AlertCommented struct {
	Alert   models.Alert
	Comment models.AlertComment
	Actor   models.User
}

func (AlertCommented) kind() string { return "alert_commented" }

// MessageSent fires for a direct message. The recipient is the other
// conversation participant.
type MessageSent struct {
	Conversation models.Conversation
	Message      models.DirectMessage
	Actor        models.User
}

func (MessageSent) kind() string { return "message_sent" }

// ChatPosted fires for a school chat message. Recipients are every
// active member of the school except the sender.
type ChatPosted struct {
	Message models.ChatMessage
	Actor   models.User
}

func (ChatPosted) kind() string { return "chat_posted" }
