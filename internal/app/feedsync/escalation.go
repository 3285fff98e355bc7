// internal/app/feedsync/escalation.go
package feedsync

import (
	"time"

	"github.com/homeclass/portal/internal/domain/models"
)

// SelectEscalation picks the alert a guardian should be interrupted
// for: among unresolved alerts concerning one of their dependents and
// newer than the alert-feed watermark, the single newest one.
//
// dependents is keyed by student hex id. The bool result is false when
// nothing qualifies.
func SelectEscalation(alerts []models.Alert, dependents map[string]bool, watermark time.Time) (models.Alert, bool) {
	var best models.Alert
	found := false
	for _, a := range alerts {
		if a.Resolved {
			continue
		}
		if !dependents[a.StudentID.Hex()] {
			continue
		}
		if !a.Timestamp.After(watermark) {
			continue
		}
		if !found || a.Timestamp.After(best.Timestamp) {
			best = a
			found = true
		}
	}
	return best, found
}
