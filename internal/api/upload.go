// ABOUTME: Single-document ingestion calls for PDF files and URLs
// ABOUTME: Multipart uploads against /admin/upload-pdf and /admin/upload-url

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

// UploadResult is the record summary returned by the ingestion endpoints:
// the freshly computed document record plus a status message.
type UploadResult struct {
	Success       bool   `json:"success"`
	Title         string `json:"title"`
	SourceURL     string `json:"source_url"`
	RetrievedDate string `json:"retrieved_date"`
	NumChunks     int    `json:"num_chunks"`
	Message       string `json:"message"`
}

type uploadPDFRequest struct {
	Filename  string `validate:"required"`
	Title     string `validate:"required"`
	SourceURL string `validate:"required,url"`
}

type uploadURLRequest struct {
	URL   string `validate:"required,url"`
	Title string `validate:"required"`
}

// UploadPDF ingests a single PDF. The file content is streamed from r into
// a multipart request alongside the title and source URL metadata.
func (c *Client) UploadPDF(ctx context.Context, r io.Reader, filename, title, sourceURL string) (*UploadResult, error) {
	if err := c.validateStruct(uploadPDFRequest{Filename: filename, Title: title, SourceURL: sourceURL}); err != nil {
		return nil, err
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
	if err := mw.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.WriteField("source_url", sourceURL); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	return c.doUpload(ctx, "/admin/upload-pdf", &body, mw.FormDataContentType())
}

// UploadURL ingests a single web page by URL.
func (c *Client) UploadURL(ctx context.Context, pageURL, title string) (*UploadResult, error) {
	if err := c.validateStruct(uploadURLRequest{URL: pageURL, Title: title}); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("url", pageURL); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	return c.doUpload(ctx, "/admin/upload-url", &body, mw.FormDataContentType())
}

// doUpload posts a multipart body and decodes the ingestion result. The
// backend reports per-document failures with success=false and a message
// rather than an error status.
func (c *Client) doUpload(ctx context.Context, path string, body io.Reader, contentType string) (*UploadResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &Error{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "upload failed"
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	return &result, nil
}
