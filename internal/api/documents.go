// ABOUTME: Document collection calls for ingested PDFs and URLs
// ABOUTME: List and delete operations under /admin/list-* and /admin/delete-*

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Document is one ingested record, PDF or URL variant. Records are
// identified by the (title, source_url) pair, not by a server ID.
type Document struct {
	Title         string `json:"title"`
	SourceURL     string `json:"source_url"`
	RetrievedDate string `json:"retrieved_date"`
	NumChunks     int    `json:"num_chunks"`
}

type deleteDocumentRequest struct {
	Title     string `json:"title" validate:"required"`
	SourceURL string `json:"source_url" validate:"required"`
}

// ListPDFs returns all ingested PDF records.
func (c *Client) ListPDFs(ctx context.Context) ([]Document, error) {
	var resp struct {
		PDFs []Document `json:"pdfs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/list-pdfs", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing PDFs: %w", err)
	}
	return resp.PDFs, nil
}

// DeletePDF removes the PDF record matching both title and sourceURL.
// Records sharing only one of the two fields are left alone by the backend.
func (c *Client) DeletePDF(ctx context.Context, title, sourceURL string) error {
	req := deleteDocumentRequest{Title: title, SourceURL: sourceURL}
	if err := c.validateStruct(req); err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/delete-pdf", req, nil); err != nil {
		return fmt.Errorf("deleting PDF: %w", err)
	}
	return nil
}

// ListURLs returns all ingested URL records.
func (c *Client) ListURLs(ctx context.Context) ([]Document, error) {
	var resp struct {
		URLs []Document `json:"urls"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/list-urls", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing URLs: %w", err)
	}
	return resp.URLs, nil
}

// DeleteURL removes the URL record matching both title and sourceURL.
func (c *Client) DeleteURL(ctx context.Context, title, sourceURL string) error {
	req := deleteDocumentRequest{Title: title, SourceURL: sourceURL}
	if err := c.validateStruct(req); err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodPost, "/admin/delete-url", req, nil); err != nil {
		return fmt.Errorf("deleting URL: %w", err)
	}
	return nil
}
