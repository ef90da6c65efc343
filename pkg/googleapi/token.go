package googleapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenUpdateFunc is called whenever the underlying token source refreshes
// the access token, so the new token can be written back to the account row.
type TokenUpdateFunc func(token *oauth2.Token) error

// Scopes requested when a user connects a Google account.
var Scopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/calendar",
}

// Credentials holds the OAuth client credentials shared by the Gmail and
// Calendar services.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func (c Credentials) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}

// AuthCodeURL returns the consent-screen URL for the connect flow. Offline
// access is required so the token response includes a refresh token.
func (c Credentials) AuthCodeURL(state string) string {
	return c.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// ExchangeCode exchanges an authorization code for an access/refresh token
// pair. A failure here means the consent flow must be restarted.
func (c Credentials) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %v", err)
	}
	return token, nil
}

// RefreshAccessToken performs a single refresh-token grant. No retries: a
// rejected refresh token is terminal and the caller must re-initiate consent.
func (c Credentials) RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is empty")
	}

	src := c.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %v", err)
	}
	return token, nil
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[WARN] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

// HTTPClient builds an authenticated HTTP client for the Google API services.
// The token source is wrapped so refreshed access tokens are reported through
// onTokenRefresh before the request proceeds.
func (c Credentials) HTTPClient(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) *http.Client {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force a refresh check if we actually hold a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	src := c.oauthConfig().TokenSource(ctx, token)

	wrapped := &notifyTokenSource{
		src:      src,
		current:  token,
		callback: onTokenRefresh,
	}

	return oauth2.NewClient(ctx, wrapped)
}
