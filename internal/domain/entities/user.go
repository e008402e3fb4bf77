package entities

import (
	"context"
	"time"
)

// Role of an application user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// User of the marketplace. PasswordHash is empty for social-login
// accounts and must never reach a response body.
type User struct {
	CreatedAt    time.Time
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Phone        string
	City         string
	District     string
	Address      string
	Picture      string
	IsBanned     bool
}

// key is an unexported type for keys defined in this package.
// This prevents collisions with keys defined in other packages.
type key int

// userKey is the key for User values in Contexts. It is unexported;
// clients use NewContext and FromContext instead of using this key directly.
var userKey key

// NewContext returns a new Context that carries value u.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// FromContext returns the User value stored in ctx, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}
