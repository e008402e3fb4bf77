package entities

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

func newHexID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// NewUserID returns a new unique user id, e.g. "user_3f2a9c1b7d0e".
func NewUserID() string {
	return "user_" + newHexID()[:12]
}

// NewOrderID returns a new unique order id, e.g. "ORD-A41F09C2".
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(newHexID()[:8])
}

// NewSessionToken returns a new opaque session token.
func NewSessionToken() string {
	return "sess_" + newHexID()
}
