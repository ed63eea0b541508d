package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/pwnwatch/internal/domain"
)

// Event is the payload published when a watch turns up a new exposure.
type Event struct {
	ID         string          `json:"id"`
	WatchID    string          `json:"watch_id"`
	Account    string          `json:"account"`
	Exposure   domain.Exposure `json:"exposure"`
	DetectedAt time.Time       `json:"detected_at"`
}

// NewEvent stamps an exposure found by watchID with a fresh event id.
func NewEvent(watchID string, exp domain.Exposure) Event {
	return Event{
		ID:         uuid.NewString(),
		WatchID:    watchID,
		Account:    exp.Account,
		Exposure:   exp,
		DetectedAt: time.Now().UTC(),
	}
}

// attributes are the routing hints attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id":      e.ID,
		"watch_id":      e.WatchID,
		"exposure_kind": e.Exposure.Kind,
	}
}
