package services

import (
	"context"
	"testing"
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

func newTestAuthService(
	t *testing.T,
	users *mockUserRepository,
	sessions *mockSessionRepository,
	companies *mockCompanyRepository,
	oauth *mockOAuthClient,
) *AuthService {
	t.Helper()

	cfg := &config.Config{PasswordHashCost: bcrypt.MinCost}
	cfg.Session.Expiration = time.Hour

	s, err := NewAuthService(users, sessions, companies, oauth, nopTrManager{}, logger.NewWithZap(zap.NewNop()), cfg)
	require.NoError(t, err)

	return s
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthServiceRegister(t *testing.T) {
	t.Run("customer gets an account and a session", func(t *testing.T) {
		var createdUser *entities.User
		var createdSession *entities.Session
		users := &mockUserRepository{
			createUser: func(_ context.Context, u *entities.User) error {
				createdUser = u
				return nil
			},
		}
		sessions := &mockSessionRepository{
			createSession: func(_ context.Context, s *entities.Session) error {
				createdSession = s
				return nil
			},
		}
		companies := &mockCompanyRepository{
			createCompany: func(_ context.Context, _ *entities.Company) error {
				t.Fatal("customer registration must not create a company profile")
				return nil
			},
		}
		s := newTestAuthService(t, users, sessions, companies, &mockOAuthClient{})

		user, session, err := s.Register(context.Background(), &params.Register{
			Email:    "ayse@example.com",
			Password: "sifre123",
			Name:     "Ayşe Yılmaz",
		})
		require.NoError(t, err)
		require.NotNil(t, createdUser)
		require.NotNil(t, createdSession)

		assert.Equal(t, entities.RoleCustomer, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "sifre123", user.PasswordHash)
		assert.Equal(t, user.ID, session.UserID)
	})

	t.Run("company registration creates an unapproved profile", func(t *testing.T) {
		var createdCompany *entities.Company
		companies := &mockCompanyRepository{
			createCompany: func(_ context.Context, c *entities.Company) error {
				createdCompany = c
				return nil
			},
		}
		s := newTestAuthService(t, &mockUserRepository{}, &mockSessionRepository{createSession: func(_ context.Context, _ *entities.Session) error {
			return nil
		}}, companies, &mockOAuthClient{})

		user, _, err := s.Register(context.Background(), &params.Register{
			Email:        "info@piril.example.com",
			Password:     "sifre123",
			Name:         "Mehmet Demir",
			Role:         entities.RoleCompany,
			City:         "İstanbul",
			CompanyName:  "Pırıl Halı Yıkama",
			ServiceAreas: []string{"Kadıköy", "Üsküdar"},
		})
		require.NoError(t, err)
		require.NotNil(t, createdCompany)

		assert.Equal(t, entities.RoleCompany, user.Role)
		assert.Equal(t, user.ID, createdCompany.UserID)
		assert.False(t, createdCompany.IsActive)
		assert.Equal(t, []string{"Kadıköy", "Üsküdar"}, createdCompany.Districts)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		s := newTestAuthService(t, &mockUserRepository{}, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Register(context.Background(), &params.Register{
			Email:    "x@example.com",
			Password: "sifre123",
			Role:     entities.RoleAdmin,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("conflict on an already registered email", func(t *testing.T) {
		users := &mockUserRepository{
			createUser: func(_ context.Context, _ *entities.User) error {
				return errs.ErrDataConflict
			},
		}
		s := newTestAuthService(t, users, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Register(context.Background(), &params.Register{
			Email:    "ayse@example.com",
			Password: "sifre123",
		})
		assert.ErrorIs(t, err, errs.ErrDataConflict)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	storedUser := func() *entities.User {
		return &entities.User{
			ID:           "user_000000000001",
			Email:        "ayse@example.com",
			PasswordHash: hashPassword(t, "sifre123"),
			Role:         entities.RoleCustomer,
		}
	}

	t.Run("opens a session on valid credentials", func(t *testing.T) {
		var created *entities.Session
		users := &mockUserRepository{
			getUserByEmail: func(_ context.Context, _ string) (*entities.User, error) {
				return storedUser(), nil
			},
		}
		sessions := &mockSessionRepository{
			createSession: func(_ context.Context, s *entities.Session) error {
				created = s
				return nil
			},
		}
		s := newTestAuthService(t, users, sessions, &mockCompanyRepository{}, &mockOAuthClient{})

		user, session, err := s.Login(context.Background(), "ayse@example.com", "sifre123")
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "user_000000000001", user.ID)
		assert.Equal(t, user.ID, session.UserID)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("unknown email", func(t *testing.T) {
		s := newTestAuthService(t, &mockUserRepository{}, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Login(context.Background(), "nobody@example.com", "sifre123")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserRepository{
			getUserByEmail: func(_ context.Context, _ string) (*entities.User, error) {
				return storedUser(), nil
			},
		}
		s := newTestAuthService(t, users, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Login(context.Background(), "ayse@example.com", "yanlis")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("social accounts have no password", func(t *testing.T) {
		users := &mockUserRepository{
			getUserByEmail: func(_ context.Context, _ string) (*entities.User, error) {
				u := storedUser()
				u.PasswordHash = ""
				return u, nil
			},
		}
		s := newTestAuthService(t, users, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Login(context.Background(), "ayse@example.com", "sifre123")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("banned accounts cannot log in", func(t *testing.T) {
		users := &mockUserRepository{
			getUserByEmail: func(_ context.Context, _ string) (*entities.User, error) {
				u := storedUser()
				u.IsBanned = true
				return u, nil
			},
		}
		s := newTestAuthService(t, users, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.Login(context.Background(), "ayse@example.com", "sifre123")
		assert.ErrorIs(t, err, errs.ErrAccountBanned)
	})
}

func TestAuthServiceExchangeSession(t *testing.T) {
	const providerID = "prov-session-1"

	t.Run("first exchange creates the user and session", func(t *testing.T) {
		var createdUser *entities.User
		var createdSession *entities.Session
		users := &mockUserRepository{
			createUser: func(_ context.Context, u *entities.User) error {
				createdUser = u
				return nil
			},
		}
		sessions := &mockSessionRepository{
			createSession: func(_ context.Context, s *entities.Session) error {
				createdSession = s
				return nil
			},
		}
		oauth := &mockOAuthClient{
			sessionData: func(_ context.Context, sessionID string) (*OAuthSessionData, error) {
				assert.Equal(t, providerID, sessionID)
				return &OAuthSessionData{
					Email:        "ayse@example.com",
					Name:         "Ayşe Yılmaz",
					SessionToken: "tok-from-provider",
				}, nil
			},
		}
		s := newTestAuthService(t, users, sessions, &mockCompanyRepository{}, oauth)

		user, session, err := s.ExchangeSession(context.Background(), providerID)
		require.NoError(t, err)
		require.NotNil(t, createdUser)
		require.NotNil(t, createdSession)

		assert.Equal(t, entities.RoleCustomer, user.Role)
		assert.Equal(t, "tok-from-provider", session.Token)
		assert.Equal(t, providerID, session.ExchangeKey)
	})

	t.Run("replay resolves to the existing session", func(t *testing.T) {
		existing := &entities.Session{
			Token:       "tok-existing",
			UserID:      "user_000000000001",
			ExchangeKey: providerID,
			ExpiresAt:   time.Now().Add(time.Hour),
		}
		sessions := &mockSessionRepository{
			getSessionByExchangeKey: func(_ context.Context, key string) (*entities.Session, error) {
				assert.Equal(t, providerID, key)
				return existing, nil
			},
		}
		users := &mockUserRepository{
			getUserByID: func(_ context.Context, _ string) (*entities.User, error) {
				return &entities.User{ID: "user_000000000001", Role: entities.RoleCustomer}, nil
			},
		}
		oauth := &mockOAuthClient{
			sessionData: func(_ context.Context, _ string) (*OAuthSessionData, error) {
				t.Fatal("replay must not hit the provider")
				return nil, nil
			},
		}
		s := newTestAuthService(t, users, sessions, &mockCompanyRepository{}, oauth)

		_, session, err := s.ExchangeSession(context.Background(), providerID)
		require.NoError(t, err)
		assert.Equal(t, "tok-existing", session.Token)
	})

	t.Run("banned user cannot exchange", func(t *testing.T) {
		users := &mockUserRepository{
			getUserByEmail: func(_ context.Context, _ string) (*entities.User, error) {
				return &entities.User{ID: "user_000000000001", IsBanned: true}, nil
			},
		}
		oauth := &mockOAuthClient{
			sessionData: func(_ context.Context, _ string) (*OAuthSessionData, error) {
				return &OAuthSessionData{Email: "ayse@example.com"}, nil
			},
		}
		s := newTestAuthService(t, users, &mockSessionRepository{}, &mockCompanyRepository{}, oauth)

		_, _, err := s.ExchangeSession(context.Background(), providerID)
		assert.ErrorIs(t, err, errs.ErrAccountBanned)
	})

	t.Run("invalid provider session id", func(t *testing.T) {
		s := newTestAuthService(t, &mockUserRepository{}, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, _, err := s.ExchangeSession(context.Background(), "bogus")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestAuthServiceAuthenticate(t *testing.T) {
	t.Run("resolves the session user", func(t *testing.T) {
		sessions := &mockSessionRepository{
			getSessionByToken: func(_ context.Context, _ string) (*entities.Session, error) {
				return &entities.Session{
					Token:     "tok",
					UserID:    "user_000000000001",
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		}
		users := &mockUserRepository{
			getUserByID: func(_ context.Context, id string) (*entities.User, error) {
				return &entities.User{ID: id, Role: entities.RoleCustomer}, nil
			},
		}
		s := newTestAuthService(t, users, sessions, &mockCompanyRepository{}, &mockOAuthClient{})

		user, err := s.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "user_000000000001", user.ID)
	})

	t.Run("unknown token", func(t *testing.T) {
		s := newTestAuthService(t, &mockUserRepository{}, &mockSessionRepository{}, &mockCompanyRepository{}, &mockOAuthClient{})

		_, err := s.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("expired session", func(t *testing.T) {
		sessions := &mockSessionRepository{
			getSessionByToken: func(_ context.Context, _ string) (*entities.Session, error) {
				return &entities.Session{
					Token:     "tok",
					UserID:    "user_000000000001",
					ExpiresAt: time.Now().Add(-time.Minute),
				}, nil
			},
		}
		s := newTestAuthService(t, &mockUserRepository{}, sessions, &mockCompanyRepository{}, &mockOAuthClient{})

		_, err := s.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, errs.ErrSessionExpired)
	})

	t.Run("banned user", func(t *testing.T) {
		sessions := &mockSessionRepository{
			getSessionByToken: func(_ context.Context, _ string) (*entities.Session, error) {
				return &entities.Session{
					Token:     "tok",
					UserID:    "user_000000000001",
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		}
		users := &mockUserRepository{
			getUserByID: func(_ context.Context, id string) (*entities.User, error) {
				return &entities.User{ID: id, IsBanned: true}, nil
			},
		}
		s := newTestAuthService(t, users, sessions, &mockCompanyRepository{}, &mockOAuthClient{})

		_, err := s.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, errs.ErrAccountBanned)
	})
}
