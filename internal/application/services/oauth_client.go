package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
)

// OAuthSessionData is the identity payload the provider returns for a
// valid one-time session id.
type OAuthSessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// OAuthClient resolves one-time session ids at the external identity
// provider.
type OAuthClient interface {
	SessionData(ctx context.Context, sessionID string) (*OAuthSessionData, error)
}

// RestyOAuthClient is the HTTP implementation of OAuthClient.
type RestyOAuthClient struct {
	client *resty.Client
	url    string
}

func NewOAuthClient(config *config.Config) (*RestyOAuthClient, error) {
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}

	client := resty.New().SetTimeout(config.OAuth.Timeout)

	return &RestyOAuthClient{client: client, url: config.OAuth.SessionDataURL}, nil
}

var _ OAuthClient = (*RestyOAuthClient)(nil)

// SessionData exchanges the provider session id for the user identity.
// A non-200 provider answer means the id is unknown or already consumed
// on the provider side and maps to invalid credentials.
func (c *RestyOAuthClient) SessionData(ctx context.Context, sessionID string) (*OAuthSessionData, error) {
	data := new(OAuthSessionData)

	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Session-ID", sessionID).
		SetResult(data).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("oauth session data: %w", err)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: invalid session_id", errs.ErrInvalidCredentials)
	}

	return data, nil
}
