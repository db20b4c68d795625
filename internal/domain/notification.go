package domain

import "time"

// Kind is the severity tag of a user-facing message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindDanger  Kind = "danger"
)

type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is what stores use to surface outcomes to the user.
type Notifier interface {
	Push(message string, kind Kind) Notification
}
