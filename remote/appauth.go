package remote

import (
	"context"
	"crypto/rsa"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// appJWTTTL is the lifetime of the signed app JWT. GitHub caps it at ten
// minutes; stay under to absorb clock skew.
const appJWTTTL = 9 * time.Minute

// AppAuth authenticates as a GitHub App installation: it signs a
// short-lived RS256 JWT with the app's private key and exchanges it for an
// installation access token. Tokens are cached until shortly before
// expiry. Safe for concurrent use.
type AppAuth struct {
	appID          string
	installationID int64
	key            *rsa.PrivateKey
	baseURL        string

	now func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// AppOption configures AppAuth.
type AppOption func(*AppAuth)

// WithAppBaseURL points the token exchange at a GitHub Enterprise instance.
func WithAppBaseURL(baseURL string) AppOption {
	return func(a *AppAuth) {
		a.baseURL = baseURL
	}
}

// NewAppAuth creates app authentication from the app id, installation id,
// and the PEM-encoded private key GitHub issued for the app.
func NewAppAuth(appID string, installationID int64, privateKeyPEM []byte, opts ...AppOption) (*AppAuth, error) {
	if appID == "" {
		return nil, fmt.Errorf("app ID is required")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse app private key: %w", err)
	}

	a := &AppAuth{
		appID:          appID,
		installationID: installationID,
		key:            key,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// AppJWT signs a fresh app JWT. The issued-at claim is backdated one
// minute to absorb clock skew between signer and GitHub.
func (a *AppAuth) AppJWT() (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("sign app JWT: %w", err)
	}
	return signed, nil
}

// InstallationToken returns an installation access token, exchanging a
// fresh app JWT when the cached token is expired or about to expire.
func (a *AppAuth) InstallationToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && a.now().Before(a.expires.Add(-time.Minute)) {
		return a.token, nil
	}

	appJWT, err := a.AppJWT()
	if err != nil {
		return "", err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: appJWT})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if a.baseURL != "" {
		client, err = client.WithEnterpriseURLs(a.baseURL, a.baseURL)
		if err != nil {
			return "", fmt.Errorf("enterprise base URL: %w", err)
		}
	}

	token, _, err := client.Apps.CreateInstallationToken(ctx, a.installationID, nil)
	if err != nil {
		return "", fmt.Errorf("create installation token: %w", err)
	}

	a.token = token.GetToken()
	a.expires = token.GetExpiresAt().Time
	return a.token, nil
}
