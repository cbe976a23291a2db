package model

import "time"

// Flash categories. A flash message is delivered at most once: reading a
// category for rendering clears that category's queue.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Session binds an opaque client-held token to a user (or to nobody, for
// anonymous sessions). The client only ever sees the token.
type Session struct {
	ID        string              `json:"id"`
	Token     string              `json:"token"`
	UserID    string              `json:"user_id,omitempty"`
	Flash     map[string][]string `json:"flash,omitempty"`
	ExpiresOn time.Time           `json:"expires_on"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresOn.IsZero() && now.After(s.ExpiresOn)
}
