package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope/sell.inventory"
	refreshBuffer   = 60 * time.Second
)

// ErrNoToken is returned by StaticToken when no token is configured.
var ErrNoToken = errors.New("no eBay auth token configured")

// StaticToken is a long-lived Auth'n'Auth token. The Trading API accepts it
// in the request body rather than as an OAuth header.
type StaticToken string

// Token implements TokenProvider.
func (s StaticToken) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// OAuthTokenProvider exchanges a seller's refresh token for short-lived user
// access tokens. A token is reused until it is within refreshBuffer of its
// expiry or until Invalidate is called. Safe for concurrent use.
type OAuthTokenProvider struct {
	appID        string
	certID       string
	refreshToken string
	tokenURL     string
	client       *http.Client
	scopes       []string

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default eBay token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithScopes overrides the requested OAuth scopes.
func WithScopes(scopes ...string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if len(scopes) > 0 {
			p.scopes = scopes
		}
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a token provider for the seller account the
// refresh token was issued to.
func NewOAuthTokenProvider(
	appID, certID, refreshToken string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		appID:        appID,
		certID:       certID,
		refreshToken: refreshToken,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		scopes:       []string{defaultScope},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenError is a non-200 answer from the token endpoint. Code is the OAuth
// error such as invalid_grant, which means the refresh token itself is dead
// and the seller has to consent again.
type TokenError struct {
	Status      int
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token refresh failed (status %d): %s - %s", e.Status, e.Code, e.Description)
}

// Token returns a valid user access token, refreshing if necessary.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.nowFunc()
	if p.token != "" && now.Before(p.expiry.Add(-refreshBuffer)) {
		return p.token, nil
	}

	tr, err := p.exchange(ctx)
	if err != nil {
		return "", err
	}

	p.token = tr.AccessToken
	p.expiry = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	return p.token, nil
}

// Invalidate drops the cached token. It implements TokenInvalidator.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = ""
	p.expiry = time.Time{}
	p.mu.Unlock()
}

// exchange trades the refresh token for a new access token.
func (p *OAuthTokenProvider) exchange(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {p.refreshToken},
		"scope":         {strings.Join(p.scopes, " ")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.appID, p.certID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		tokErr := &TokenError{Status: resp.StatusCode}
		_ = json.Unmarshal(body, tokErr) //nolint:errcheck // body may not be JSON
		return nil, tokErr
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, errors.New("token response has no access_token")
	}
	return &tr, nil
}
