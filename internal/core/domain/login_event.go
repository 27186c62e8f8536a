package domain

import "time"

// LoginOutcome labels an entry in the admin login audit trail.
type LoginOutcome string

const (
	LoginSucceeded   LoginOutcome = "login_succeeded"
	LoginRejected    LoginOutcome = "login_rejected"
	LoginThrottled   LoginOutcome = "login_throttled"
	RefreshSucceeded LoginOutcome = "refresh_succeeded"
	RefreshRejected  LoginOutcome = "refresh_rejected"
)

// LoginEvent records one authentication attempt against the back office.
type LoginEvent struct {
	AdminID    string
	Email      string
	Outcome    LoginOutcome
	RemoteIP   string
	UserAgent  string
	OccurredAt time.Time
}
