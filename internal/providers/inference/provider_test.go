package inference

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/ragnote/internal/logging"
	"github.com/mwiater/ragnote/internal/providers"
)

func TestChatSendsCompletionRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/inference/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["model"] != "llama-3.1-8b-instruct" {
			t.Errorf("unexpected model: %v", payload["model"])
		}
		if payload["max_tokens"] != float64(512) {
			t.Errorf("unexpected max_tokens: %v", payload["max_tokens"])
		}
		if _, ok := payload["temperature"]; ok {
			t.Errorf("unset temperature must be omitted")
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"SUMMARY: yes"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	maxTokens := 512
	p := New(server.URL+"/", "tok", time.Second, false)
	resp, err := p.Chat(context.Background(), providers.ChatRequest{
		Model:    "llama-3.1-8b-instruct",
		Messages: []providers.ChatMessage{providers.UserMessage("hi")},
		Params:   providers.ChatParams{MaxTokens: &maxTokens},
	})
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if resp.Message.Content != "SUMMARY: yes" || resp.FinishReason != "stop" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "status", status: http.StatusUnauthorized, body: "denied", wantErr: "401"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices"},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "parse chat response"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := New(server.URL, "tok", time.Second, false).Chat(context.Background(), providers.ChatRequest{
				Model:    "m",
				Messages: []providers.ChatMessage{providers.UserMessage("hi")},
			})
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestChatValidatesRequest(t *testing.T) {
	t.Parallel()

	p := New("http://127.0.0.1:0", "", time.Second, false)
	if _, err := p.Chat(context.Background(), providers.ChatRequest{Messages: []providers.ChatMessage{providers.UserMessage("x")}}); err == nil {
		t.Fatalf("expected error for empty model")
	}
	if _, err := p.Chat(context.Background(), providers.ChatRequest{Model: "m"}); err == nil {
		t.Fatalf("expected error for empty messages")
	}
}

func TestDebugControlsPromptLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"private answer"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	for _, debug := range []bool{false, true} {
		logPath := filepath.Join(t.TempDir(), "ragnote.log")
		if err := logging.Init(logPath); err != nil {
			t.Fatalf("init log: %v", err)
		}
		_, err := New(server.URL, "tok", time.Second, debug).Chat(context.Background(), providers.ChatRequest{
			Model:    "m",
			Messages: []providers.ChatMessage{providers.UserMessage("private prompt")},
		})
		_ = logging.Close()
		if err != nil {
			t.Fatalf("Chat error: %v", err)
		}

		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		logged := string(data)
		for _, payload := range []string{"private prompt", "private answer"} {
			if got := strings.Contains(logged, payload); got != debug {
				t.Fatalf("debug=%v: %q logged=%v\n%s", debug, payload, got, logged)
			}
		}
		if !debug && !strings.Contains(logged, "[LLM] m /v1/inference/chat/completions -> 200") {
			t.Fatalf("expected status line without debug:\n%s", logged)
		}
	}
}
