package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ConnexxBot_Backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *TokenClient {
	return NewTokenClient(config.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     url + "/token",
		RevokeURL:    url + "/revoke",
	}, nil)
}

func TestTokenClient_Exchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "com.connexx:/oauth", r.PostForm.Get("redirect_uri"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "verifier", r.PostForm.Get("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","expires_in":3599}`))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL).Exchange(context.Background(), "auth-code", "com.connexx:/oauth", "verifier")
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"at","expires_in":3599}`, string(body))
}

func TestTokenClient_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt", r.PostForm.Get("refresh_token"))
		w.Write([]byte(`{"access_token":"new"}`))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL).Refresh(context.Background(), "rt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"new"}`, string(body))
}

func TestTokenClient_RevokeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/revoke", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "stale", r.PostForm.Get("token"))
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_token","error_description":"Token expired or revoked"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Revoke(context.Background(), "stale")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.Equal(t, "invalid_token", upstream.ErrorValue())
}

func TestUpstreamError_ErrorValue(t *testing.T) {
	assert.Nil(t, (&UpstreamError{Body: []byte("<html>bad gateway</html>")}).ErrorValue())
	assert.Nil(t, (&UpstreamError{Body: []byte(`{"message":"nope"}`)}).ErrorValue())
	assert.Equal(t,
		map[string]any{"code": float64(401), "status": "UNAUTHENTICATED"},
		(&UpstreamError{Body: []byte(`{"error":{"code":401,"status":"UNAUTHENTICATED"}}`)}).ErrorValue(),
	)
}

func TestTokenClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Refresh(context.Background(), "rt")
	require.Error(t, err)
	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
}
