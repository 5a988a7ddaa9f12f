package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/quote-admin/gateway"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/internal/metrics"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

// writeAPIError maps a failed call to a response. 4xx answers from the API are
// relayed as-is; anything wrong on the API's side is a bad gateway.
func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *gateway.StatusError
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case apperrors.Is(err, apperrors.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case gateway.IsUnexpected(err):
		log.Err(err).Str("path", r.URL.Path).Msg("Token refresh failed")
		writeJSONError(w, http.StatusBadGateway, "bad_gateway", "Could not refresh the session")
	case errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError:
		writeJSONError(w, statusErr.StatusCode, "api_error", apiMessage(statusErr))
	case errors.Is(err, context.DeadlineExceeded):
		log.Err(err).Str("path", r.URL.Path).Msg("API call timed out")
		writeJSONError(w, http.StatusGatewayTimeout, "gateway_timeout", "The API did not answer in time")
	default:
		log.Err(err).Str("path", r.URL.Path).Msg("API call failed")
		writeJSONError(w, http.StatusBadGateway, "bad_gateway", "The API is unavailable")
	}
}

// apiMessage pulls a message out of the API's error body, falling back to the status text.
func apiMessage(statusErr *gateway.StatusError) string {
	var body struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(statusErr.Body, &body); err == nil {
		for _, msg := range []string{body.ErrorDescription, body.Message, body.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(statusErr.StatusCode)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Wrapf(apperrors.ErrInvalidRequest, "empty request body")
		}
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "malformed JSON: %s", err.Error())
	}
	return nil
}

// respond runs fn against a gateway client bound to the request's session and
// writes the adapted outcome. A signout outcome ends the login session.
func respond[T any](s *Server, w http.ResponseWriter, r *http.Request, status int, fn func(*gateway.Client) (T, error)) {
	client, err := s.gatewayFor(r)
	if err != nil {
		writeAPIError(w, r, fmt.Errorf("[server respond] %w", err))
		return
	}

	result, err := gateway.Fetch(client, fn)
	s.recordRefresh(client, result.Signout, err)
	if err != nil {
		s.keepRefreshedToken(r, client)
		writeAPIError(w, r, err)
		return
	}
	if result.Signout {
		session, _ := sessionFromContext(r.Context())
		log.Info().Str("user_id", session.UserID).Msg("Session can no longer be refreshed, signing out")
		s.metrics.Signouts.Inc()
		s.forceSignout(w, r, session.ID)
		return
	}
	s.keepRefreshedToken(r, client)

	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, result)
}

func (s *Server) recordRefresh(client *gateway.Client, signout bool, err error) {
	if !client.Refreshed() {
		return
	}
	switch {
	case signout:
		s.metrics.RecordRefresh(metrics.RefreshSignout)
	case gateway.IsUnexpected(err):
		s.metrics.RecordRefresh(metrics.RefreshFailed)
	default:
		s.metrics.RecordRefresh(metrics.RefreshSucceeded)
	}
}
