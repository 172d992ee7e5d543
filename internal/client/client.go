// Package client is the typed HTTP client over the content hub API. It
// performs no retries and no caching; the sync engine above it decides
// what to do with failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/vistapra/content-hub-go/internal/content"
)

// Screen is one screen resource as returned by the hub.
type Screen struct {
	Slug      string          `json:"slug"`
	Kind      string          `json:"kind"`
	Payload   content.Payload `json:"payload"`
	UpdatedAt string          `json:"updated_at"`
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to one content hub.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL (e.g. http://localhost:3001).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Screens fetches all screen documents.
func (c *Client) Screens(ctx context.Context) ([]Screen, error) {
	var envelope struct {
		Data []Screen `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/screens", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Screen fetches one screen document.
func (c *Client) Screen(ctx context.Context, slug string) (*Screen, error) {
	var screen Screen
	if err := c.do(ctx, http.MethodGet, "/v1/screens/"+slug, nil, &screen); err != nil {
		return nil, err
	}
	return &screen, nil
}

// UpdateScreen replaces a screen's payload wholesale. The transport has
// no partial write: callers always send the full merged payload.
func (c *Client) UpdateScreen(ctx context.Context, slug string, payload content.Payload) error {
	body := map[string]any{"payload": payload}
	return c.do(ctx, http.MethodPut, "/v1/screens/"+slug, body, nil)
}

// AppendItem appends an item to a list in the screen's payload, with the
// server-side fallback list discovery.
func (c *Client) AppendItem(ctx context.Context, slug, listKey string, item content.Value) (*Screen, error) {
	body := map[string]any{"list_key": listKey, "item": item}
	var screen Screen
	if err := c.do(ctx, http.MethodPost, "/v1/screens/"+slug+"/items", body, &screen); err != nil {
		return nil, err
	}
	return &screen, nil
}

// Settings fetches the flat settings map.
func (c *Client) Settings(ctx context.Context) (map[string]string, error) {
	var settings map[string]string
	if err := c.do(ctx, http.MethodGet, "/v1/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings upserts all given keys atomically.
func (c *Client) UpdateSettings(ctx context.Context, entries map[string]any) error {
	return c.do(ctx, http.MethodPost, "/v1/settings", entries, nil)
}

// Upload stores a file on the hub and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploads", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", decodeError(resp)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN"}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
		}
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
