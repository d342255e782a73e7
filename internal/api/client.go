package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxResponseBytes   = 1 << 20
	defaultHTTPTimeout = 3 * time.Minute
	defaultUserAgent   = "docsask"
	requestIDHeader    = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the question-answering backend.
type Client struct {
	base      string
	client    *http.Client
	userAgent string
	newID     func() string
}

// HealthReport summarizes one /health check.
type HealthReport struct {
	Online     bool
	Status     string
	Message    string
	InitError  string
	HTTPStatus int
	Latency    time.Duration
}

// Answer is a successful /ask response.
type Answer struct {
	Text      string
	RequestID string
	Latency   time.Duration
}

// New builds a client for the backend at opts.BaseURL.
func New(opts Options) *Client {
	agent := opts.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	return &Client{
		base:      strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		client:    pickHTTPClient(opts.HTTPClient),
		userAgent: agent,
		newID:     uuid.NewString,
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Per-call deadlines come from the caller's context; this is only a backstop.
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.base
}

// Health checks GET /health. A report is returned even when err is non-nil.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	const op = "health"
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return HealthReport{}, &Error{Kind: KindUnreachable, Op: op, BaseURL: c.base, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		report := HealthReport{Latency: time.Since(started)}
		return report, &Error{Kind: KindUnreachable, Op: op, BaseURL: c.base, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	report := HealthReport{HTTPStatus: resp.StatusCode, Latency: time.Since(started)}
	if err != nil {
		return report, &Error{Kind: KindUnreachable, Op: op, HTTPStatus: resp.StatusCode, BaseURL: c.base, Cause: err}
	}

	var parsed struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		InitError string `json:"init_error"`
	}
	// Any body shape is tolerated; the fields are optional.
	_ = json.Unmarshal(body, &parsed)
	report.Status = strings.TrimSpace(parsed.Status)
	report.Message = strings.TrimSpace(parsed.Message)
	report.InitError = strings.TrimSpace(parsed.InitError)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return report, &Error{
			Kind:       KindStatus,
			Op:         op,
			HTTPStatus: resp.StatusCode,
			Detail:     firstNonEmpty(report.Message, report.InitError),
			BaseURL:    c.base,
		}
	}
	report.Online = !unhealthyStatus(report.Status)
	return report, nil
}

func unhealthyStatus(status string) bool {
	switch strings.ToLower(status) {
	case "degraded", "unhealthy", "down", "error":
		return true
	default:
		return false
	}
}

// Ask posts the trimmed question to /ask. Empty questions fail locally.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	const op = "ask"
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, &Error{Kind: KindEmptyQuestion, Op: op, BaseURL: c.base, Cause: ErrEmptyQuestion}
	}

	buf, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return Answer{}, fmt.Errorf("ask: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/ask", bytes.NewReader(buf))
	if err != nil {
		return Answer{}, &Error{Kind: KindUnreachable, Op: op, BaseURL: c.base, Cause: err}
	}
	requestID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return Answer{}, &Error{Kind: KindUnreachable, Op: op, BaseURL: c.base, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Answer{}, &Error{Kind: KindUnreachable, Op: op, HTTPStatus: resp.StatusCode, BaseURL: c.base, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Answer{}, &Error{
			Kind:       KindStatus,
			Op:         op,
			HTTPStatus: resp.StatusCode,
			Detail:     errorDetail(body),
			BaseURL:    c.base,
		}
	}

	var parsed struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Answer{}, &Error{Kind: KindDecode, Op: op, HTTPStatus: resp.StatusCode, BaseURL: c.base, Cause: err}
	}
	if parsed.Answer == nil {
		return Answer{}, &Error{Kind: KindDecode, Op: op, HTTPStatus: resp.StatusCode, Detail: "response has no answer field", BaseURL: c.base}
	}
	if id := resp.Header.Get(requestIDHeader); id != "" {
		requestID = id
	}
	return Answer{Text: *parsed.Answer, RequestID: requestID, Latency: time.Since(started)}, nil
}

// errorDetail pulls a readable message out of an error body. FastAPI sends
// {"detail": "..."} for HTTPException and {"detail": [{"msg": ...}]} for
// validation failures.
func errorDetail(body []byte) string {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "message", "error"} {
		raw, ok := parsed[key]
		if !ok {
			continue
		}
		if text := detailText(raw); text != "" {
			return text
		}
	}
	return ""
}

func detailText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
