// ABOUTME: Tests for the token issuance call
// ABOUTME: Covers form encoding, success parsing, and credential rejection

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	var gotContentType, gotUsername, gotPassword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/token", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","is_admin":true}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	result, err := client.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "alice", gotUsername)
	assert.Equal(t, "s3cret", gotPassword)
	assert.Equal(t, "tok-123", result.AccessToken)
	assert.True(t, result.IsAdmin)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"incorrect username or password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyCredentialsBlockedLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Login(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.Login(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_admin":false}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
