// Package auth signs dashboard users in and out against the remote API.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/quote-admin/gateway"
	"github.com/jrsteele09/quote-admin/users"
	"github.com/rs/zerolog/log"
)

const (
	loginPath  = "auth/login"
	logoutPath = "auth/logout"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         *users.User `json:"user,omitempty"`
}

// LoginResult is what a successful sign-in hands to the session layer.
type LoginResult struct {
	User            users.User
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time // Zero when the token carries no exp claim
}

// Service authenticates users with the remote API.
type Service struct {
	baseURL    string
	httpClient *http.Client
	nowTime    func() time.Time
}

// ServiceOption modifies a Service
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func WithHTTPClient(httpClient *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

func NewService(baseURL string, opts ...ServiceOption) *Service {
	s := &Service{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		nowTime:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a token pair (POST auth/login).
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// Signing in has no session yet, so a 401 comes back as InvalidRefreshToken.
	client, err := gateway.New(s.baseURL, nil, gateway.WithHTTPClient(s.httpClient))
	if err != nil {
		return nil, fmt.Errorf("[auth Login] %w", err)
	}

	var resp loginResponse
	err = client.Post(ctx, loginPath, loginRequest{Email: email, Password: password}, &resp)
	if gateway.IsInvalidRefreshToken(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("[auth Login] %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("[auth Login] login response has no access token: %w", ErrInvalidToken)
	}

	result := &LoginResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.User != nil {
		result.User = *resp.User
	}

	claims, err := ParseAccessClaims(resp.AccessToken)
	if err != nil {
		// Opaque tokens are fine, they just tell us nothing.
		log.Debug().Err(err).Msg("access token is not a JWT")
	} else {
		result.AccessExpiresAt = claims.AccessExpiry()
		if result.User.ID == "" {
			result.User.ID = claims.Subject
		}
		if result.User.Email == "" {
			result.User.Email = claims.Email
		}
		if result.User.Role == "" {
			result.User.Role = users.RoleType(claims.Role)
		}
	}
	if result.User.Email == "" {
		result.User.Email = email
	}

	if !result.AccessExpiresAt.IsZero() && !result.AccessExpiresAt.After(s.nowTime()) {
		log.Warn().Str("email", email).Time("exp", result.AccessExpiresAt).Msg("API issued an already expired access token")
	}

	return result, nil
}

// Logout tells the API to drop the session's tokens. Failures are logged and
// ignored: the local session is removed either way.
func (s *Service) Logout(ctx context.Context, session *gateway.Session) {
	if session == nil || session.AccessToken == "" {
		return
	}
	client, err := gateway.New(s.baseURL, session, gateway.WithHTTPClient(s.httpClient))
	if err != nil {
		log.Err(err).Msg("Logout: failed to create gateway client")
		return
	}
	body := map[string]string{"refreshToken": session.RefreshToken}
	if err := client.Post(ctx, logoutPath, body, nil); err != nil {
		log.Err(err).Str("user_id", session.UserID).Msg("Logout: API logout failed")
	}
}
