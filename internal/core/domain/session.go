package domain

import "time"

// Session is one signed-in device. Role is kept current when an admin edits
// the user, so authorization never trusts a stale token claim.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
