// Package formspree relays contact form submissions to a Formspree style
// form-handling endpoint.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ErrUnavailable wraps every failure that is not a validation rejection:
// transport errors, timeouts, 5xx and unreadable responses.
var ErrUnavailable = errors.New("form service unavailable")

const maxResponseBytes = 1 << 20

// FieldError is one validation error reported by the service.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// RejectedError is returned when the service refused the submission.
type RejectedError struct {
	Status int
	Errors []FieldError
}

func (e *RejectedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field != "" {
			msgs = append(msgs, fe.Field+": "+fe.Message)
		} else {
			msgs = append(msgs, fe.Message)
		}
	}
	return fmt.Sprintf("submission rejected (%d): %s", e.Status, strings.Join(msgs, "; "))
}

// Result is the service's answer to an accepted submission.
type Result struct {
	OK   bool   `json:"ok"`
	Next string `json:"next,omitempty"`
}

type response struct {
	OK     bool         `json:"ok"`
	Next   string       `json:"next"`
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

// Client posts multipart forms to Endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient creates a Client whose requests time out after timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Submit sends fields as multipart/form-data. It makes exactly one attempt.
func (c *Client) Submit(ctx context.Context, fields map[string]string) (*Result, error) {
	body, contentType, err := encodeFields(fields)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	var parsed response
	parseErr := json.Unmarshal(raw, &parsed)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &Result{OK: true, Next: parsed.Next}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && parseErr == nil:
		rejected := &RejectedError{Status: resp.StatusCode, Errors: parsed.Errors}
		if len(rejected.Errors) == 0 && parsed.Error != "" {
			rejected.Errors = []FieldError{{Message: parsed.Error}}
		}
		if len(rejected.Errors) > 0 {
			return nil, rejected
		}
	}
	return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
}

func encodeFields(fields map[string]string) (io.Reader, string, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("encoding field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encoding form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
