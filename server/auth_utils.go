package server

import (
	"net/http"

	"github.com/jrsteele09/quote-admin/gateway"
	"github.com/rs/zerolog/log"
)

func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, sessionID string, r *http.Request, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) ClearLoginSessionCookie(w http.ResponseWriter, r *http.Request) {
	s.SetLoginSessionCookie(w, "", r, -1)
}

// forceSignout drops the login session (if any), clears its cookie and tells
// the UI to go back to the login page.
func (s *Server) forceSignout(w http.ResponseWriter, r *http.Request, sessionID string) {
	if sessionID != "" {
		if err := s.sessions.Delete(sessionID); err != nil {
			log.Err(err).Msg("Failed to delete session on sign-out")
		}
	}
	s.ClearLoginSessionCookie(w, r)
	writeJSON(w, http.StatusUnauthorized, gateway.Result[any]{Signout: true})
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
