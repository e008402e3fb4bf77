package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     repositories.UserRepository
	sessions  repositories.SessionRepository
	companies repositories.CompanyRepository
	oauth     OAuthClient
	trm       trm.Manager
	logger    logger.Logger
	config    *config.Config
}

func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	companies repositories.CompanyRepository,
	oauth OAuthClient,
	trm trm.Manager,
	logger logger.Logger,
	config *config.Config,
) (*AuthService, error) {
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	if oauth == nil {
		return nil, errors.New("nil dependency: oauth client")
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		companies: companies,
		oauth:     oauth,
		trm:       trm,
		logger:    logger,
		config:    config,
	}, nil
}

var _ interfaces.AuthService = (*AuthService)(nil)

// ExchangeSession trades a one-time provider session id for an
// application session. The exchange is idempotent: the provider id is
// stored as a unique exchange key, so a repeated call (the auth callback
// rendering twice) resolves to the session minted by the first call
// instead of creating a second one.
func (s *AuthService) ExchangeSession(ctx context.Context, sessionID string) (*entities.User, *entities.Session, error) {
	// Replay of an already consumed id returns the existing session.
	if session, err := s.sessions.GetSessionByExchangeKey(ctx, sessionID); err == nil {
		return s.resumeSession(ctx, session)
	}

	data, err := s.oauth.SessionData(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	var (
		user    *entities.User
		session *entities.Session
	)

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		var err error

		user, err = s.users.GetUserByEmail(ctx, data.Email)
		switch {
		case err == nil:
			if user.IsBanned {
				return errs.ErrAccountBanned
			}
			// Refresh identity fields the provider owns.
			if data.Name != "" {
				user.Name = data.Name
			}
			if data.Picture != "" {
				user.Picture = data.Picture
			}
			if err = s.users.SaveProfile(ctx, user); err != nil {
				return fmt.Errorf("refresh user profile: %w", err)
			}

		case errors.Is(err, errs.ErrNotFound):
			user = &entities.User{
				ID:        entities.NewUserID(),
				Email:     data.Email,
				Name:      data.Name,
				Picture:   data.Picture,
				Role:      entities.RoleCustomer,
				CreatedAt: time.Now().UTC(),
			}
			if user.Name == "" {
				user.Name = "User"
			}
			if err = s.users.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("create user: %w", err)
			}

		default:
			return fmt.Errorf("get user by email: %w", err)
		}

		token := data.SessionToken
		if token == "" {
			token = entities.NewSessionToken()
		}

		session = &entities.Session{
			Token:       token,
			UserID:      user.ID,
			ExchangeKey: sessionID,
			ExpiresAt:   time.Now().UTC().Add(s.config.Session.Expiration),
			CreatedAt:   time.Now().UTC(),
		}

		return s.sessions.CreateSession(ctx, session)
	})
	if err != nil {
		// Two concurrent exchanges of the same id: the loser of the
		// unique exchange key adopts the winner's session.
		if errors.Is(err, errs.ErrDataConflict) {
			if session, err := s.sessions.GetSessionByExchangeKey(ctx, sessionID); err == nil {
				return s.resumeSession(ctx, session)
			}
		}
		return nil, nil, err
	}

	return user, session, nil
}

// resumeSession resolves the user behind an already existing session.
func (s *AuthService) resumeSession(ctx context.Context, session *entities.Session) (*entities.User, *entities.Session, error) {
	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get session user: %w", err)
	}
	if user.IsBanned {
		return nil, nil, errs.ErrAccountBanned
	}
	return user, session, nil
}

// Register creates a user account, the company profile for company
// registrations and the first session, all atomically.
func (s *AuthService) Register(ctx context.Context, p *params.Register) (*entities.User, *entities.Session, error) {
	role := p.Role
	if role == "" {
		role = entities.RoleCustomer
	}
	if role != entities.RoleCustomer && role != entities.RoleCompany {
		return nil, nil, fmt.Errorf("%w: unknown role %q", errs.ErrInvalidRequest, p.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.config.PasswordHashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		ID:           entities.NewUserID(),
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        p.Phone,
		City:         p.City,
		District:     p.District,
		Address:      p.Address,
		CreatedAt:    time.Now().UTC(),
	}

	session := s.newSession(user.ID)

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.users.CreateUser(ctx, user); err != nil {
			if errors.Is(err, errs.ErrDataConflict) {
				return fmt.Errorf("%w: email already registered", err)
			}
			return fmt.Errorf("create user: %w", err)
		}

		if role == entities.RoleCompany && p.CompanyName != "" {
			company := &entities.Company{
				UserID:      user.ID,
				CompanyName: p.CompanyName,
				Email:       p.Email,
				Phone:       p.Phone,
				City:        p.City,
				Districts:   p.ServiceAreas,
				Address:     p.Address,
				// Inactive until approved by an administrator.
				IsActive:  false,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.companies.CreateCompany(ctx, company); err != nil {
				return fmt.Errorf("create company profile: %w", err)
			}
		}

		return s.sessions.CreateSession(ctx, session)
	})
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login authenticates with email and password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid email or password", errs.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("get user %q: %w", email, err)
	}

	// Social-login accounts have no password to check against.
	if user.PasswordHash == "" {
		return nil, nil, fmt.Errorf("%w: invalid email or password", errs.ErrInvalidCredentials)
	}

	if user.IsBanned {
		return nil, nil, errs.ErrAccountBanned
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil, fmt.Errorf("%w: invalid email or password", errs.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("compare passwords: %w", err)
	}

	session := s.newSession(user.ID)

	if err = s.sessions.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return user, session, nil
}

// Logout revokes the session. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its live user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid session", errs.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		return nil, errs.ErrSessionExpired
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", errs.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}

	if user.IsBanned {
		return nil, errs.ErrAccountBanned
	}

	return user, nil
}

func (s *AuthService) newSession(userID string) *entities.Session {
	return &entities.Session{
		Token:     entities.NewSessionToken(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(s.config.Session.Expiration),
		CreatedAt: time.Now().UTC(),
	}
}
