package feedsync

import (
	"testing"
	"time"

	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSelectEscalation_PicksNewestDependentAlert(t *testing.T) {
	now := time.Now().UTC()
	kid := primitive.NewObjectID()
	otherKid := primitive.NewObjectID()
	dependents := map[string]bool{kid.Hex(): true}

	alerts := []models.Alert{
		{StudentID: kid, Type: models.AlertLate, Timestamp: now.Add(-30 * time.Minute)},
		{StudentID: kid, Type: models.AlertSick, Timestamp: now.Add(-5 * time.Minute)},
		{StudentID: otherKid, Type: models.AlertAbsent, Timestamp: now},
	}

	got, ok := SelectEscalation(alerts, dependents, now.Add(-time.Hour))
	if !ok {
		t.Fatal("expected an escalation")
	}
	if got.Type != models.AlertSick {
		t.Errorf("expected the newest dependent alert, got %q", got.Type)
	}
}

func TestSelectEscalation_RespectsWatermark(t *testing.T) {
	now := time.Now().UTC()
	kid := primitive.NewObjectID()
	dependents := map[string]bool{kid.Hex(): true}

	alerts := []models.Alert{
		{StudentID: kid, Type: models.AlertLate, Timestamp: now.Add(-time.Hour)},
	}

	// Already seen: watermark is past the alert.
	if _, ok := SelectEscalation(alerts, dependents, now); ok {
		t.Error("alerts at or below the watermark must not escalate")
	}
}

func TestSelectEscalation_SkipsResolved(t *testing.T) {
	now := time.Now().UTC()
	kid := primitive.NewObjectID()
	dependents := map[string]bool{kid.Hex(): true}

	alerts := []models.Alert{
		{StudentID: kid, Type: models.AlertSick, Resolved: true, Timestamp: now},
	}

	if _, ok := SelectEscalation(alerts, dependents, now.Add(-time.Hour)); ok {
		t.Error("resolved alerts must not escalate")
	}
}

func TestSelectEscalation_NoDependents(t *testing.T) {
	now := time.Now().UTC()
	alerts := []models.Alert{
		{StudentID: primitive.NewObjectID(), Type: models.AlertAbsent, Timestamp: now},
	}

	if _, ok := SelectEscalation(alerts, nil, now.Add(-time.Hour)); ok {
		t.Error("a guardian with no matching dependents gets no escalation")
	}
}
