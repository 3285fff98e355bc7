// internal/app/system/push/push.go
//
// Package push delivers best-effort push notifications through the
// external relay endpoint. Delivery is fire-and-forget: failures are
// logged and never retried or surfaced to the user whose write
// triggered them.
package push

import "context"

// Notification is the payload accepted by the relay.
type Notification struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Result reports how many devices the relay reached for one user.
type Result struct {
	Sent int `json:"sent"`
}

// Sender delivers one notification to one user's registered devices.
type Sender interface {
	Send(ctx context.Context, n Notification) (Result, error)
}
