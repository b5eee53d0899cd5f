package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"docuchat/client/internal/model"
)

// DocumentMetadata carries the optional descriptive fields attached to an
// upload or update. On upload they travel as query parameters next to the
// multipart body, matching the backend contract.
type DocumentMetadata struct {
	Title       string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// ListDocuments returns the document catalog, optionally filtered by
// category. limit caps the page size server-side; there is no client-side
// pagination loop.
func (c *Client) ListDocuments(ctx context.Context, category string, limit int) ([]model.Document, error) {
	values := url.Values{}
	if category != "" {
		values.Set("category", category)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	path := "/documents"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var docs []model.Document
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument streams the raw file as a multipart payload. The server
// returns the new record immediately, typically with processed=false, and
// indexes it asynchronously out of the client's view.
func (c *Client) UploadDocument(ctx context.Context, filename string, file io.Reader, meta DocumentMetadata) (*model.Document, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("could not create multipart payload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("could not read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize multipart payload: %w", err)
	}

	values := url.Values{}
	if meta.Title != "" {
		values.Set("title", meta.Title)
	}
	if meta.Description != "" {
		values.Set("description", meta.Description)
	}
	if meta.Category != "" {
		values.Set("category", meta.Category)
	}
	path := "/documents/upload"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("could not create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var doc model.Document
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument fetches a single document record.
func (c *Client) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	path := fmt.Sprintf("/documents/%s", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument changes the descriptive fields of a document.
func (c *Client) UpdateDocument(ctx context.Context, id string, meta DocumentMetadata) (*model.Document, error) {
	var doc model.Document
	path := fmt.Sprintf("/documents/%s", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPut, path, meta, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and its index entries on the server.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	path := fmt.Sprintf("/documents/%s", url.PathEscape(id))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ReindexDocument asks the server to rebuild the document's index. The
// returned record usually flips back to processed=false until the pipeline
// finishes.
func (c *Client) ReindexDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	path := fmt.Sprintf("/documents/%s/reindex", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
