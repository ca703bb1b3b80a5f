package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
)

// fallbackTokenTTL is used when the token response carries no expires_in
// and the token is not a parseable JWT.
const fallbackTokenTTL = 5 * time.Minute

// expirySkew refreshes tokens slightly early so in-flight requests do
// not carry an about-to-expire token.
const expirySkew = 30 * time.Second

type cachedToken struct {
	value  string
	expiry time.Time
}

func (t cachedToken) valid(now time.Time) bool {
	return t.value != "" && now.Before(t.expiry.Add(-expirySkew))
}

// TokenSource caches one client-credentials token per scope and
// refreshes transparently on expiry. Safe for concurrent use.
type TokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu     sync.Mutex
	tokens map[string]cachedToken
}

func NewTokenSource(tokenURL, clientID, clientSecret string, httpClient *http.Client) *TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &TokenSource{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		tokens:       make(map[string]cachedToken),
	}
}

// Token returns a bearer token for the scope, fetching a fresh one when
// the cached token is missing or near expiry.
func (ts *TokenSource) Token(ctx context.Context, scope string) (string, apperrors.Error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if tok, ok := ts.tokens[scope]; ok && tok.valid(time.Now()) {
		return tok.value, nil
	}
	tok, err := ts.fetch(ctx, scope)
	if err != nil {
		return "", err
	}
	ts.tokens[scope] = tok
	return tok.value, nil
}

// Invalidate discards the cached token for the scope so the next Token
// call fetches a fresh one. Called after the provider rejects a token.
func (ts *TokenSource) Invalidate(scope string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.tokens, scope)
}

func (ts *TokenSource) fetch(ctx context.Context, scope string) (cachedToken, apperrors.Error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", scope)

	var tok cachedToken
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth(ts.clientID, ts.clientSecret)

		rsp, err := ts.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer rsp.Body.Close()
		if rsp.StatusCode != http.StatusOK {
			return ErrAuth.New("token endpoint returned " + rsp.Status)
		}
		var tr tokenResponse
		if err := json.NewDecoder(rsp.Body).Decode(&tr); err != nil {
			return err
		}
		if tr.AccessToken == "" {
			return ErrAuth.New("token endpoint returned empty token")
		}
		tok = cachedToken{
			value:  tr.AccessToken,
			expiry: tokenExpiry(tr, time.Now()),
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n).Str("scope", scope).
				Msg("retrying token acquisition")
		}),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("scope", scope).Msg("token acquisition failed")
		return cachedToken{}, ErrAuth.New("unable to acquire provider token").Err(err)
	}
	return tok, nil
}

// tokenExpiry prefers expires_in, falls back to the JWT exp claim, then
// to a fixed TTL.
func tokenExpiry(tr tokenResponse, now time.Time) time.Time {
	if tr.ExpiresIn > 0 {
		return now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tr.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(fallbackTokenTTL)
}
