package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/quote-admin/auth"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/server/loginsession"
	"github.com/jrsteele09/quote-admin/users"
	"github.com/rs/zerolog/log"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionView is what the UI learns about the signed-in user.
type sessionView struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"name": s.config.GetAppName()})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// LoginHandler accepts a form post or a JSON body with email and password.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(w, r)
		if err != nil {
			writeAPIError(w, r, err)
			return
		}

		result, err := s.auth.Login(r.Context(), creds.Email, creds.Password)
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			log.Info().Str("email", creds.Email).Msg("Login rejected")
			s.metrics.RecordLogin(false)
			writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
			return
		}
		if err != nil {
			writeAPIError(w, r, err)
			return
		}

		now := s.nowTime()
		maxAge := s.config.GetMaxSessionAge()
		session := newLoginSession(uuid.NewString(), result, now, now.Add(maxAge))
		if err := s.sessions.Upsert(session.ID, session); err != nil {
			log.Err(err).Msg("Failed to store login session")
			writeJSONError(w, http.StatusInternalServerError, "server_error", "Could not create session")
			return
		}

		s.SetLoginSessionCookie(w, session.ID, r, int(maxAge.Seconds()))
		log.Info().Str("user_id", session.UserID).Msg("User signed in")
		s.metrics.RecordLogin(true)

		writeJSON(w, http.StatusOK, map[string]users.User{"result": result.User.WithoutPassword()})
	}
}

// LogoutHandler ends the session locally and at the API. GET redirects home,
// POST answers 204.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(s.config.GetSessionCookieName()); err == nil && cookie.Value != "" {
			if session, err := s.sessions.Get(cookie.Value); err == nil {
				s.auth.Logout(r.Context(), session.GatewaySession())
				log.Info().Str("user_id", session.UserID).Msg("User signed out")
			}
			if err := s.sessions.Delete(cookie.Value); err != nil {
				log.Err(err).Msg("Failed to delete session on logout")
			}
		}
		s.ClearLoginSessionCookie(w, r)

		if r.Method == http.MethodGet {
			redirectSuccess(w, r, "/")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			s.forceSignout(w, r, "")
			return
		}
		writeJSON(w, http.StatusOK, map[string]sessionView{"result": {
			UserID:    session.UserID,
			Email:     session.Email,
			Name:      session.Name,
			Role:      session.Role,
			ExpiresAt: session.ExpiresAt,
		}})
	}
}

func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var creds credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(w, r, &creds); err != nil {
			return creds, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return creds, apperrors.Wrapf(apperrors.ErrInvalidRequest, "malformed form")
		}
		creds.Email = r.FormValue("email")
		creds.Password = r.FormValue("password")
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return creds, apperrors.Wrapf(apperrors.ErrInvalidRequest, "email and password are required")
	}
	return creds, nil
}

func newLoginSession(id string, result *auth.LoginResult, now, expiresAt time.Time) loginsession.Session {
	return loginsession.Session{
		ID:              id,
		UserID:          result.User.ID,
		Email:           result.User.Email,
		Name:            result.User.FullName(),
		Role:            string(result.User.Role),
		AccessToken:     result.AccessToken,
		RefreshToken:    result.RefreshToken,
		AccessExpiresAt: result.AccessExpiresAt,
		CreatedAt:       now,
		ExpiresAt:       expiresAt,
	}
}
