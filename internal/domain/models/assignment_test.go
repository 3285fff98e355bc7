package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHiddenFor(t *testing.T) {
	now := time.Now().UTC()
	userID := primitive.NewObjectID().Hex()

	a := Assignment{Completions: map[string]Completion{
		userID: {Done: true, DoneAt: now, HideUntil: now.Add(CompletionWindow)},
	}}

	if !a.HiddenFor(userID, now) {
		t.Error("expected hidden inside the window")
	}
	if a.HiddenFor(userID, now.Add(CompletionWindow)) {
		t.Error("expected visible once the window lapses")
	}
	if a.HiddenFor(primitive.NewObjectID().Hex(), now) {
		t.Error("another user's completion must not hide the assignment")
	}
}

func TestHiddenFor_NoCompletion(t *testing.T) {
	a := Assignment{}
	if a.HiddenFor(primitive.NewObjectID().Hex(), time.Now().UTC()) {
		t.Error("an assignment with no completions is never hidden")
	}
}

func TestVisibleTo_StaffSeeEverything(t *testing.T) {
	now := time.Now().UTC()
	teacher := User{ID: primitive.NewObjectID(), Role: RoleTeacher}

	a := Assignment{Completions: map[string]Completion{
		teacher.ID.Hex(): {Done: true, DoneAt: now, HideUntil: now.Add(CompletionWindow)},
	}}

	if !a.VisibleTo(&teacher, now) {
		t.Error("staff are never subject to the hide window")
	}

	student := User{ID: teacher.ID, Role: RoleStudent}
	if a.VisibleTo(&student, now) {
		t.Error("a non-staff user inside their window must not see the assignment")
	}
}

func TestConversationID_Deterministic(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	if ConversationID(a, b) != ConversationID(b, a) {
		t.Error("thread id must not depend on argument order")
	}
	if ConversationID(a, b) == ConversationID(a, primitive.NewObjectID()) {
		t.Error("different pairs must get different ids")
	}
}

func TestOtherParticipant(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := Conversation{Participants: []primitive.ObjectID{a, b}}

	other, ok := c.OtherParticipant(a)
	if !ok || other != b {
		t.Errorf("expected %s, got %s (ok=%v)", b.Hex(), other.Hex(), ok)
	}

	if _, ok := c.OtherParticipant(primitive.NewObjectID()); ok {
		t.Error("a non-participant has no counterpart")
	}
}
