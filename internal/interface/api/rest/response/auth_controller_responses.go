package response

import (
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// User is the public user shape. The password hash never leaves the
// service.
type User struct {
	CreatedAt time.Time     `json:"created_at"`
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      entities.Role `json:"role"`
	Phone     string        `json:"phone,omitempty"`
	City      string        `json:"city,omitempty"`
	District  string        `json:"district,omitempty"`
	Address   string        `json:"address,omitempty"`
	Picture   string        `json:"picture,omitempty"`
	IsBanned  bool          `json:"is_banned"`
}

func NewUserFromEntity(e *entities.User) *User {
	return &User{
		CreatedAt: e.CreatedAt,
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Role:      e.Role,
		Phone:     e.Phone,
		City:      e.City,
		District:  e.District,
		Address:   e.Address,
		Picture:   e.Picture,
		IsBanned:  e.IsBanned,
	}
}

// Auth is the login, registration and session exchange response.
type Auth struct {
	User         *User  `json:"user"`
	SessionToken string `json:"session_token"`
}

func NewAuth(u *entities.User, s *entities.Session) *Auth {
	return &Auth{
		User:         NewUserFromEntity(u),
		SessionToken: s.Token,
	}
}
