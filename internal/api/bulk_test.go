// ABOUTME: Tests for bulk URL import calls
// ABOUTME: Covers template info, binary download, and per-row results

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkTemplateInfo_NoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/bulk-upload-urls-template", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"instructions":"Fill in one URL per row."}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	info, err := client.BulkTemplateInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fill in one URL per row.", info)
	assert.Empty(t, gotAuth)
}

func TestDownloadBulkTemplate(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0xde, 0xad}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/bulk-upload-urls-template/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	var buf bytes.Buffer
	n, err := client.DownloadBulkTemplate(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, buf.Bytes())
}

func TestBulkUploadURLs_PerRowResults(t *testing.T) {
	var gotFilename, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/bulk-upload-urls", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		gotFilename = header.Filename
		gotContent = string(content)
		w.Write([]byte(`{"results":[
			{"url":"https://ex.org/a","title":"A","success":true,"message":"imported"},
			{"url":"https://ex.org/b","title":"B","success":false,"error":"timeout fetching page"}
		]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	results, err := client.BulkUploadURLs(context.Background(),
		strings.NewReader("xlsx-bytes"), "batch.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "batch.xlsx", gotFilename)
	assert.Equal(t, "xlsx-bytes", gotContent)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.Equal(t, "imported", results[0].Reason())
	assert.False(t, results[1].Success)
	assert.Equal(t, "timeout fetching page", results[1].Reason())
}

func TestBulkUploadURLs_EmptyFilenameBlockedLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	_, err := client.BulkUploadURLs(context.Background(), strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}
