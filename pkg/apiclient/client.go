package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Envelope is the backend's uniform response shape: {success, message?, ...payload}.
// The payload fields sit next to success/message; Decode unmarshals them into
// a caller-supplied struct.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	raw json.RawMessage
}

func (e Envelope) Decode(v any) error {
	if len(e.raw) == 0 {
		return nil
	}
	return json.Unmarshal(e.raw, v)
}

// Client issues authenticated requests against the radiology backend. The
// cookie jar keeps the session cookie across calls, the Go equivalent of
// fetch's credentials:"include".
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	log zerolog.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		log: log.With().Str("component", "apiclient").Logger(),
	}
}

// Do issues method path against the backend. A non-nil body is serialized to
// JSON with the JSON content type. Raw multipart payloads go through
// PostMultipart instead so the writer controls its own boundary header.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, err
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType)
}

func (c *Client) Get(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// PostMultipart uploads a file plus form fields as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader) (Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return Envelope{}, err
		}
	}
	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return Envelope{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Envelope{}, err
	}
	if err := writer.Close(); err != nil {
		return Envelope{}, err
	}
	return c.send(ctx, http.MethodPost, path, &buf, writer.FormDataContentType())
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return Envelope{}, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("transport failure")
		return Envelope{}, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return Envelope{}, &NetworkError{Err: err}
	}

	env := Envelope{raw: payload}
	if len(payload) > 0 {
		// Tolerate non-JSON error pages; the status check below still fires.
		_ = json.Unmarshal(payload, &env)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Envelope{}, &APIError{Status: res.StatusCode, Message: env.Message}
	}
	if !env.Success {
		return Envelope{}, &APIError{Status: res.StatusCode, Message: env.Message}
	}
	return env, nil
}
