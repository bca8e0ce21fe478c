// ABOUTME: Bulk URL import calls: template info, template download, upload
// ABOUTME: Per-row results are non-fatal; only a failed request empties the batch

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// BulkRowResult is the outcome for one spreadsheet row. On failure the
// backend fills either Message or Err depending on the failure site.
type BulkRowResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

// Reason returns the per-row status text, preferring Message over Err.
func (r BulkRowResult) Reason() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Err
}

// BulkTemplateInfo fetches the human-readable instructions for preparing a
// bulk import spreadsheet. This endpoint does not require authentication.
func (c *Client) BulkTemplateInfo(ctx context.Context) (string, error) {
	var resp struct {
		Instructions string `json:"instructions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/bulk-upload-urls-template", nil, &resp); err != nil {
		return "", fmt.Errorf("fetching template info: %w", err)
	}
	return resp.Instructions, nil
}

// DownloadBulkTemplate streams the binary template spreadsheet into w and
// returns the number of bytes written.
func (c *Client) DownloadBulkTemplate(ctx context.Context, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/bulk-upload-urls-template/download", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("saving template: %w", err)
	}
	return n, nil
}

// BulkUploadURLs uploads a spreadsheet of URLs as a single multipart
// request and returns the backend's per-row results. Row contents are not
// validated client-side; the whole batch fails only when the request
// itself cannot complete.
func (c *Client) BulkUploadURLs(ctx context.Context, r io.Reader, filename string) ([]BulkRowResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/admin/bulk-upload-urls", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Results []BulkRowResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return payload.Results, nil
}
