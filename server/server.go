package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/quote-admin/auth"
	"github.com/jrsteele09/quote-admin/gateway"
	"github.com/jrsteele09/quote-admin/internal/config"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/internal/metrics"
	"github.com/jrsteele09/quote-admin/server/loginsession"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	auth       *auth.Service
	sessions   loginsession.Repo
	httpClient *http.Client // Shared transport for every gateway client
	metrics    *metrics.Metrics
	nowTime    func() time.Time
}

// Option modifies a Server
type Option func(*Server)

// WithHTTPClient sets the client used to reach the remote API.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Server) {
		if httpClient != nil {
			s.httpClient = httpClient
		}
	}
}

// WithMetrics sets the collectors the server records into.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func New(config config.Config, sessions loginsession.Repo, opts ...Option) (*Server, error) {
	if sessions == nil {
		return nil, fmt.Errorf("[Server New] a session repository is required")
	}
	if _, err := gateway.New(config.GetAPIBaseURL(), nil); err != nil {
		return nil, fmt.Errorf("[Server New] invalid API base URL: %w", err)
	}

	s := &Server{
		env:        config.GetEnv(),
		mux:        http.NewServeMux(),
		config:     config,
		sessions:   sessions,
		httpClient: &http.Client{Timeout: config.GetAPITimeout()},
		metrics:    metrics.New(),
		nowTime:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.auth = auth.NewService(config.GetAPIBaseURL(), auth.WithHTTPClient(s.httpClient), auth.WithNowTime(s.nowTime))

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

// gatewayFor builds the request-scoped API client for r's session.
// Each inbound request gets its own client, so one request's token refresh
// never leaks into another.
func (s *Server) gatewayFor(r *http.Request) (*gateway.Client, error) {
	var session *gateway.Session
	if ls, ok := sessionFromContext(r.Context()); ok {
		session = ls.GatewaySession()
	}
	return gateway.New(s.config.GetAPIBaseURL(), session, gateway.WithHTTPClient(s.httpClient))
}

// RunSessionJanitor removes expired login sessions every interval until ctx is done.
func (s *Server) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.DeleteExpired()
			if err != nil {
				log.Err(err).Msg("Failed to delete expired sessions")
				continue
			}
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("Expired sessions deleted")
			}
		}
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// keepRefreshedToken stores the access token a client obtained by refreshing,
// so the session's next request does not have to refresh again.
func (s *Server) keepRefreshedToken(r *http.Request, client *gateway.Client) {
	session, ok := sessionFromContext(r.Context())
	if !ok || !client.Refreshed() || client.AccessToken() == session.AccessToken {
		return
	}
	accessToken := client.AccessToken()
	var accessExpiresAt time.Time
	if claims, err := auth.ParseAccessClaims(accessToken); err == nil {
		accessExpiresAt = claims.AccessExpiry()
	}
	err := s.sessions.UpdateAccessToken(session.ID, accessToken, accessExpiresAt)
	switch {
	case apperrors.Is(err, apperrors.ErrSessionNotFound), apperrors.Is(err, apperrors.ErrSessionExpired):
		// Signed out while the request was in flight.
		log.Debug().Str("user_id", session.UserID).Msg("Session ended before refreshed token could be stored")
	case err != nil:
		log.Err(err).Str("user_id", session.UserID).Msg("Failed to store refreshed access token")
	}
}
