package domain

import "time"

// Todo is a task owned by a single user.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Complete    bool      `json:"complete"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	AuthEventLoginSucceeded  AuthEventType = "login_succeeded"
	AuthEventLoginFailed     AuthEventType = "login_failed"
	AuthEventPasswordChanged AuthEventType = "password_changed"
)

// AuthEvent records a single authentication-related action.
type AuthEvent struct {
	Type      AuthEventType
	Username  string
	UserID    int64 // zero when the username did not resolve
	Timestamp time.Time
}
