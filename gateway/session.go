package gateway

import "golang.org/x/oauth2"

// Session is the caller's view of the signed-in user: identity plus token pair.
// The client reads it once at construction and never writes to it.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

func (s *Session) accessToken() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

func (s *Session) refreshToken() string {
	if s == nil {
		return ""
	}
	return s.RefreshToken
}

// bearer returns the token used to build the Authorization header, or nil when
// there is nothing to send.
func bearer(accessToken string) *oauth2.Token {
	if accessToken == "" {
		return nil
	}
	return &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
}
