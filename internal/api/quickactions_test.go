// ABOUTME: Tests for quick-action CRUD calls
// ABOUTME: Covers id-in-path routing and mixed string/numeric ids on the wire

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

func TestListQuickActions_MixedIDTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/admin/quick-actions", r.URL.Path)
		w.Write([]byte(`{"quick_actions":[
			{"id":7,"title":"Course Catalog","description":"Browse courses","message":"Show me the course catalog","icon":"Book"},
			{"id":"qa-advising","title":"Advising","description":"Talk to an advisor","message":"How do I reach academic advising?","icon":"Users"}
		]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	actions, err := client.ListQuickActions(context.Background())
	require.NoError(t, err)

	require.Len(t, actions, 2)
	assert.Equal(t, QuickActionID("7"), actions[0].ID)
	assert.Equal(t, QuickActionID("qa-advising"), actions[1].ID)
	assert.Equal(t, "Book", actions[0].Icon)
}

func TestCreateQuickAction(t *testing.T) {
	var gotBody QuickActionInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/quick-actions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":"qa-1","title":"Course Catalog","description":"Browse courses","message":"Show me the course catalog","icon":"Book"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	created, err := client.CreateQuickAction(context.Background(), QuickActionInput{
		Title:       "Course Catalog",
		Description: "Browse courses",
		Message:     "Show me the course catalog",
		Icon:        "Book",
	})
	require.NoError(t, err)
	assert.Equal(t, "Course Catalog", gotBody.Title)
	assert.Equal(t, QuickActionID("qa-1"), created.ID)
}

func TestCreateQuickAction_MissingFieldsBlockedLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	_, err := client.CreateQuickAction(context.Background(), QuickActionInput{Title: "Only a title"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestUpdateQuickAction_IDInPath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"qa-1","title":"Renamed","description":"d","message":"m","icon":"Book"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	updated, err := client.UpdateQuickAction(context.Background(), "qa-1", QuickActionInput{
		Title: "Renamed", Description: "d", Message: "m",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/quick-actions/qa-1", gotPath)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteQuickAction(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	require.NoError(t, client.DeleteQuickAction(context.Background(), "qa-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/quick-actions/qa-1", gotPath)

	assert.ErrorIs(t, client.DeleteQuickAction(context.Background(), ""), ErrValidation)
}
