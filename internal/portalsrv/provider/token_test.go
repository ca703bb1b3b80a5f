package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-` + r.FormValue("scope") + `","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenSourceCachesPerScope(t *testing.T) {
	hits := 0
	srv := tokenServer(t, &hits)
	ts := NewTokenSource(srv.URL, "cid", "secret", srv.Client())
	ctx := context.Background()

	tok1, err := ts.Token(ctx, "reservations")
	require.Nil(t, err)
	assert.Equal(t, "tok-reservations", tok1)

	tok2, err := ts.Token(ctx, "reservations")
	require.Nil(t, err)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, 1, hits, "second call must hit the cache")

	tok3, err := ts.Token(ctx, "schedules")
	require.Nil(t, err)
	assert.Equal(t, "tok-schedules", tok3)
	assert.Equal(t, 2, hits, "scopes are cached independently")
}

func TestTokenSourceInvalidate(t *testing.T) {
	hits := 0
	srv := tokenServer(t, &hits)
	ts := NewTokenSource(srv.URL, "cid", "secret", srv.Client())
	ctx := context.Background()

	_, err := ts.Token(ctx, "reservations")
	require.Nil(t, err)
	ts.Invalidate("reservations")
	_, err = ts.Token(ctx, "reservations")
	require.Nil(t, err)
	assert.Equal(t, 2, hits)
}

func TestTokenSourceServerError(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	ts := NewTokenSource(srv.URL, "cid", "secret", srv.Client())

	_, err := ts.Token(context.Background(), "reservations")
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrAuth))
	assert.Equal(t, 2, hits, "a failed fetch is retried once")
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("expires_in wins", func(t *testing.T) {
		got := tokenExpiry(tokenResponse{AccessToken: "opaque", ExpiresIn: 3600}, now)
		assert.Equal(t, now.Add(time.Hour), got)
	})

	t.Run("jwt exp claim as fallback", func(t *testing.T) {
		exp := now.Add(45 * time.Minute)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		got := tokenExpiry(tokenResponse{AccessToken: tok}, now)
		assert.Equal(t, exp.Unix(), got.Unix())
	})

	t.Run("fixed ttl when neither is present", func(t *testing.T) {
		got := tokenExpiry(tokenResponse{AccessToken: "opaque"}, now)
		assert.Equal(t, now.Add(fallbackTokenTTL), got)
	})
}

func TestCachedTokenValidity(t *testing.T) {
	now := time.Now()
	assert.True(t, cachedToken{value: "t", expiry: now.Add(time.Hour)}.valid(now))
	assert.False(t, cachedToken{value: "t", expiry: now.Add(10 * time.Second)}.valid(now),
		"tokens inside the skew window count as expired")
	assert.False(t, cachedToken{expiry: now.Add(time.Hour)}.valid(now))
}
