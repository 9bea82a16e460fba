package domain

import "time"

// Notification is an in-app record only; delivery channels (email, push) are
// outside this service.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Read       bool              `json:"read"`
	CreatedOn  time.Time         `json:"created_on"`
}
