// internal/app/notify/dispatcher_test.go
package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/homeclass/portal/internal/app/system/push"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestDeliverMessageSentTargetsOtherParticipant(t *testing.T) {
	sender := push.NewDummySender()
	d := NewDispatcher(nil, sender, zap.NewNop())

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	conv := models.Conversation{
		ID:           models.ConversationID(alice, bob),
		Participants: []primitive.ObjectID{alice, bob},
	}

	d.Deliver(context.Background(), MessageSent{
		Conversation: conv,
		Message:      models.DirectMessage{Text: "see you at pickup"},
		Actor:        models.User{ID: alice, FullName: "Alice Nguyen"},
	})

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %d notifications, want 1", len(sent))
	}
	if sent[0].UserID != bob.Hex() {
		t.Errorf("recipient = %s, want %s", sent[0].UserID, bob.Hex())
	}
	if sent[0].Message != "see you at pickup" {
		t.Errorf("message = %q", sent[0].Message)
	}
	if !strings.Contains(sent[0].Title, "Alice Nguyen") {
		t.Errorf("title %q should name the sender", sent[0].Title)
	}
	if sent[0].URL != "/inbox/"+conv.ID {
		t.Errorf("url = %q", sent[0].URL)
	}
}

func TestDeliverMessageSentSkipsWhenActorNotInThread(t *testing.T) {
	sender := push.NewDummySender()
	d := NewDispatcher(nil, sender, zap.NewNop())

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	d.Deliver(context.Background(), MessageSent{
		Conversation: models.Conversation{
			ID:           models.ConversationID(a, b),
			Participants: []primitive.ObjectID{a, b},
		},
		Message: models.DirectMessage{Text: "hi"},
		Actor:   models.User{ID: primitive.NewObjectID()},
	})

	if got := len(sender.Sent()); got != 0 {
		t.Fatalf("sent = %d notifications, want 0", got)
	}
}

func TestAlertText(t *testing.T) {
	cases := []struct {
		alert models.Alert
		want  string
	}{
		{models.Alert{Type: models.AlertAbsent, StudentName: "Mia"}, "Mia was marked absent"},
		{models.Alert{Type: models.AlertSick, StudentName: "Mia"}, "Mia was reported sick"},
		{models.Alert{Type: models.AlertLate, StudentName: "Mia"}, "Mia arrived late"},
		{models.Alert{Type: "other", Note: "left early"}, "left early"},
	}
	for _, tc := range cases {
		if got := alertText(tc.alert); got != tc.want {
			t.Errorf("alertText(%s) = %q, want %q", tc.alert.Type, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 80); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("ab", 100)
	got := truncate(long, 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncated length = %d runes, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated %q should end with ellipsis", got)
	}
}
