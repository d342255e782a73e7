package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/csheth/docsask/internal/apitest"
)

func newTestClient(t *testing.T) (*Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client := New(Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	return client, srv
}

func TestNewTrimsBaseURL(t *testing.T) {
	client := New(Options{BaseURL: " http://localhost:8000/ "})
	if got := client.BaseURL(); got != "http://localhost:8000" {
		t.Fatalf("base url: got %q", got)
	}
	if client.client.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultHTTPTimeout, client.client.Timeout)
	}
}

func TestAskSuccess(t *testing.T) {
	client, srv := newTestClient(t)
	srv.SetAsk(apitest.AnswerWith("A\n\nB"))

	answer, err := client.Ask(context.Background(), "  What are the goals?  ")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if answer.Text != "A\n\nB" {
		t.Fatalf("unexpected answer: %q", answer.Text)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Question != "What are the goals?" {
		t.Fatalf("question should be trimmed before sending, got %q", reqs[0].Question)
	}
	if reqs[0].RequestID == "" || reqs[0].RequestID != answer.RequestID {
		t.Fatalf("request id not propagated: sent %q, answer %q", reqs[0].RequestID, answer.RequestID)
	}
}

func TestAskEmptyQuestionSkipsNetwork(t *testing.T) {
	client, srv := newTestClient(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := client.Ask(context.Background(), q)
		if !IsKind(err, KindEmptyQuestion) {
			t.Fatalf("Ask(%q): expected empty question error, got %v", q, err)
		}
		if !errors.Is(err, ErrEmptyQuestion) {
			t.Fatalf("Ask(%q): error should wrap ErrEmptyQuestion", q)
		}
	}
	if n := srv.AskCount(); n != 0 {
		t.Fatalf("empty questions must not reach the backend, got %d calls", n)
	}
}

func TestAskStatusErrors(t *testing.T) {
	cases := []struct {
		name    string
		reply   apitest.Reply
		status  int
		message string
	}{
		{
			name:    "detail string",
			reply:   apitest.Reply{Status: http.StatusServiceUnavailable, Body: map[string]string{"detail": "RAG system not initialized."}},
			status:  http.StatusServiceUnavailable,
			message: "RAG system not initialized.",
		},
		{
			name: "validation array",
			reply: apitest.Reply{Status: http.StatusUnprocessableEntity, Body: map[string]any{
				"detail": []map[string]string{{"msg": "field required"}, {"msg": "bad type"}},
			}},
			status:  http.StatusUnprocessableEntity,
			message: "field required; bad type",
		},
		{
			name:    "no detail",
			reply:   apitest.Reply{Status: http.StatusInternalServerError, Body: "boom"},
			status:  http.StatusInternalServerError,
			message: "API error: 500",
		},
		{
			name:    "message field",
			reply:   apitest.Reply{Status: http.StatusBadGateway, Body: map[string]string{"message": "upstream down"}},
			status:  http.StatusBadGateway,
			message: "upstream down",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, srv := newTestClient(t)
			reply := tc.reply
			srv.SetAsk(func(string) apitest.Reply { return reply })

			_, err := client.Ask(context.Background(), "question")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T %v", err, err)
			}
			if apiErr.Kind != KindStatus {
				t.Fatalf("expected status kind, got %s", apiErr.Kind)
			}
			if apiErr.HTTPStatus != tc.status {
				t.Fatalf("status: got %d want %d", apiErr.HTTPStatus, tc.status)
			}
			if got := MessageFor(err); got != tc.message {
				t.Fatalf("message: got %q want %q", got, tc.message)
			}
		})
	}
}

func TestAskDecodeErrors(t *testing.T) {
	client, srv := newTestClient(t)

	srv.SetAsk(func(string) apitest.Reply { return apitest.Reply{Status: http.StatusOK, Body: map[string]string{"result": "x"}} })
	if _, err := client.Ask(context.Background(), "q"); !IsKind(err, KindDecode) {
		t.Fatalf("missing answer field should be a decode error, got %v", err)
	}

	srv.SetAsk(func(string) apitest.Reply { return apitest.Reply{Status: http.StatusOK, Body: "<html>"} })
	_, err := client.Ask(context.Background(), "q")
	if !IsKind(err, KindDecode) {
		t.Fatalf("non-JSON body should be a decode error, got %v", err)
	}
	if !strings.HasPrefix(MessageFor(err), "Unexpected response from backend") {
		t.Fatalf("unexpected message: %q", MessageFor(err))
	}
}

func TestAskUnreachable(t *testing.T) {
	srv := apitest.New()
	base := srv.URL
	srv.Close()

	client := New(Options{BaseURL: base, HTTPClient: &http.Client{Timeout: time.Second}})
	_, err := client.Ask(context.Background(), "hello")
	if !IsKind(err, KindUnreachable) {
		t.Fatalf("expected unreachable error, got %v", err)
	}
	msg := MessageFor(err)
	if !strings.Contains(msg, "unreachable") || !strings.Contains(msg, base) {
		t.Fatalf("message should name the backend, got %q", msg)
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name       string
		reply      apitest.Reply
		wantOnline bool
		wantErr    bool
		wantStatus string
	}{
		{name: "healthy", reply: apitest.Healthy(), wantOnline: true, wantStatus: "healthy"},
		{name: "plain ok", reply: apitest.Reply{Status: http.StatusOK, Body: "ok"}, wantOnline: true},
		{name: "status ok", reply: apitest.Reply{Status: http.StatusOK, Body: map[string]string{"status": "ok"}}, wantOnline: true, wantStatus: "ok"},
		{name: "degraded", reply: apitest.Degraded("no documents"), wantOnline: false, wantStatus: "degraded"},
		{name: "server error", reply: apitest.Reply{Status: http.StatusServiceUnavailable, Body: map[string]string{"status": "down"}}, wantOnline: false, wantErr: true, wantStatus: "down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, srv := newTestClient(t)
			srv.SetHealth(tc.reply)

			report, err := client.Health(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if report.Online != tc.wantOnline {
				t.Fatalf("online: got %v want %v", report.Online, tc.wantOnline)
			}
			if report.Status != tc.wantStatus {
				t.Fatalf("status: got %q want %q", report.Status, tc.wantStatus)
			}
		})
	}
}

func TestHealthDegradedCarriesReason(t *testing.T) {
	client, srv := newTestClient(t)
	srv.SetHealth(apitest.Degraded("OPENAI_API_KEY not found"))

	report, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("degraded 200 should not be a transport error: %v", err)
	}
	if report.InitError != "OPENAI_API_KEY not found" {
		t.Fatalf("init error not decoded: %#v", report)
	}
	if report.Message != "RAG system not initialized" {
		t.Fatalf("message not decoded: %#v", report)
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := apitest.New()
	base := srv.URL
	srv.Close()

	client := New(Options{BaseURL: base, HTTPClient: &http.Client{Timeout: time.Second}})
	report, err := client.Health(context.Background())
	if !IsKind(err, KindUnreachable) {
		t.Fatalf("expected unreachable, got %v", err)
	}
	if report.Online {
		t.Fatal("unreachable backend must not report online")
	}
}

func TestHealthHonorsContext(t *testing.T) {
	client, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Health(ctx); !IsKind(err, KindUnreachable) {
		t.Fatalf("cancelled context should surface as unreachable, got %v", err)
	}
}

func TestMessageForForeignError(t *testing.T) {
	if got := MessageFor(errors.New("plain")); got != "plain" {
		t.Fatalf("got %q", got)
	}
	if got := MessageFor(nil); got != "" {
		t.Fatalf("nil error should render empty, got %q", got)
	}
}
