// ABOUTME: Tests for the chat turn call
// ABOUTME: Covers payload shape, bearer auth, and error taxonomy

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return func() string { return tok }
}

func TestChat_SendsMessageAndHistory(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Message string           `json:"message"`
		History []HistoryMessage `json:"history"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"response":"hi there","source_urls":["https://ex.org/a"],"source_titles":["A"],"is_general_chat":false}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok-9"))
	reply, err := client.Chat(context.Background(), "hello", []HistoryMessage{
		{Role: "user", Content: "earlier"},
		{Role: "assistant", Content: "earlier reply"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-9", gotAuth)
	assert.Equal(t, "hello", gotBody.Message)
	require.Len(t, gotBody.History, 2)
	assert.Equal(t, "assistant", gotBody.History[1].Role)
	assert.Equal(t, "hi there", reply.Response)
	assert.Equal(t, []string{"https://ex.org/a"}, reply.SourceURLs)
	assert.False(t, reply.IsGeneralChat)
}

func TestChat_NilHistoryEncodesAsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["history"]))
}

func TestChat_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("stale"))
	_, err := client.Chat(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChat_BackendErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"retrieval backend unavailable"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	_, err := client.Chat(context.Background(), "hello", nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "retrieval backend unavailable", apiErr.Message)
}

func TestChat_EmptyMessageBlockedLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Chat(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}
