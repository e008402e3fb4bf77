package entities

import "time"

// Session is a server side revocable session. Token is opaque: either
// generated locally on password login or issued by the identity provider
// on social login.
//
// ExchangeKey holds the one-time provider session id that produced the
// session. It is unique, so replaying the same exchange (e.g. a client
// re-rendering the auth callback) resolves to the already created session
// instead of minting a new one.
type Session struct {
	ExpiresAt   time.Time
	CreatedAt   time.Time
	Token       string
	UserID      string
	ExchangeKey string
}

// Expired reports whether the session has expired at the given moment.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
