package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

var errEmptyAccessToken = errors.New("refresh response has no access token")

// refresh exchanges refreshToken for a new access token. It is sent without an
// Authorization header and never goes through the 401 handling.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	pr, err := c.prepare(Request{
		Method: http.MethodPost,
		Path:   c.refreshPath,
		Body:   refreshRequest{RefreshToken: refreshToken},
	})
	if err != nil {
		return nil, err
	}

	var resp refreshResponse
	if err := c.send(ctx, pr, "", &resp); err != nil {
		return nil, fmt.Errorf("[gateway refresh] %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("[gateway refresh] %w", errEmptyAccessToken)
	}
	return &oauth2.Token{AccessToken: resp.AccessToken, TokenType: "Bearer"}, nil
}
