package skill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/mwiater/ragnote/internal/providers"
	"github.com/mwiater/ragnote/internal/providers/inference"
)

type fakeCsi struct {
	results   []SearchResult
	searchErr error
	reply     string

	gotIndex    IndexPath
	gotQuery    string
	gotMax      int
	gotMinScore float64
	gotModel    string
	gotMessages []providers.ChatMessage
	gotParams   providers.ChatParams
	chatCalls   int
}

func (f *fakeCsi) Search(_ context.Context, index IndexPath, query string, maxResults int, minScore float64) ([]SearchResult, error) {
	f.gotIndex = index
	f.gotQuery = query
	f.gotMax = maxResults
	f.gotMinScore = minScore
	return f.results, f.searchErr
}

func (f *fakeCsi) Chat(_ context.Context, model string, messages []providers.ChatMessage, params providers.ChatParams) (providers.ChatResponse, error) {
	f.chatCalls++
	f.gotModel = model
	f.gotMessages = messages
	f.gotParams = params
	return providers.ChatResponse{Message: providers.ChatMessage{Role: "assistant", Content: f.reply}}, nil
}

func TestCustomRAGNoResults(t *testing.T) {
	csi := &fakeCsi{}
	out, err := CustomRAG(context.Background(), csi, Input{Question: "What is attention?"})
	if err != nil {
		t.Fatalf("CustomRAG error: %v", err)
	}
	if out.Answer != nil || out.Sources != nil {
		t.Fatalf("expected empty output, got %+v", out)
	}
	if csi.chatCalls != 0 {
		t.Fatalf("chat must not be called without results")
	}

	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"answer":null,"sources":null}` {
		t.Fatalf("unexpected JSON %s", raw)
	}
}

func TestCustomRAGAnswers(t *testing.T) {
	csi := &fakeCsi{
		results: []SearchResult{
			{Content: "Attention weighs tokens.", DocumentName: "paper-a.pdf"},
			{Content: "Transformers stack attention.", DocumentName: "paper-b.pdf"},
		},
		reply: "SUMMARY: it weighs tokens",
	}
	out, err := CustomRAG(context.Background(), csi, Input{Question: "What is attention?"})
	if err != nil {
		t.Fatalf("CustomRAG error: %v", err)
	}
	if out.Answer == nil || *out.Answer != "SUMMARY: it weighs tokens" {
		t.Fatalf("unexpected answer %+v", out.Answer)
	}
	if strings.Join(out.Sources, ",") != "paper-a.pdf,paper-b.pdf" {
		t.Fatalf("unexpected sources %v", out.Sources)
	}

	if csi.gotIndex != (IndexPath{Namespace: "Studio", Collection: "papers", Index: "asym-64"}) {
		t.Fatalf("defaults not applied: %+v", csi.gotIndex)
	}
	if csi.gotMax != 3 || csi.gotMinScore != 0.5 {
		t.Fatalf("unexpected search params %d %v", csi.gotMax, csi.gotMinScore)
	}
	if csi.gotModel != DefaultModel {
		t.Fatalf("unexpected model %q", csi.gotModel)
	}
	if csi.gotParams.MaxTokens == nil || *csi.gotParams.MaxTokens != 512 {
		t.Fatalf("unexpected max tokens %+v", csi.gotParams)
	}
	if len(csi.gotMessages) != 1 || csi.gotMessages[0].Role != "user" {
		t.Fatalf("unexpected messages %+v", csi.gotMessages)
	}
	prompt := csi.gotMessages[0].Content
	if !strings.Contains(prompt, "Input: Attention weighs tokens.\nTransformers stack attention.") {
		t.Fatalf("context not joined by newline:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: What is attention?") {
		t.Fatalf("question missing:\n%s", prompt)
	}
}

func TestCustomRAGUsesCallerIndex(t *testing.T) {
	csi := &fakeCsi{}
	in := Input{Question: "q", Namespace: "ns", Collection: "c", Index: "i"}
	if _, err := CustomRAG(context.Background(), csi, in); err != nil {
		t.Fatalf("CustomRAG error: %v", err)
	}
	if csi.gotIndex != (IndexPath{Namespace: "ns", Collection: "c", Index: "i"}) {
		t.Fatalf("unexpected index %+v", csi.gotIndex)
	}
}

func TestCustomRAGErrors(t *testing.T) {
	if _, err := CustomRAG(context.Background(), &fakeCsi{}, Input{Question: "  "}); err == nil {
		t.Fatalf("expected error for empty question")
	}
	searchErr := errors.New("index offline")
	_, err := CustomRAG(context.Background(), &fakeCsi{searchErr: searchErr}, Input{Question: "q"})
	if !errors.Is(err, searchErr) {
		t.Fatalf("expected wrapped search error, got %v", err)
	}
}

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Input
		wantErr bool
	}{
		{
			name: "defaults",
			raw:  `{"question":"why?"}`,
			want: Input{Question: "why?", Namespace: "Studio", Collection: "papers", Index: "asym-64"},
		},
		{
			name: "explicit",
			raw:  `{"question":"why?","namespace":"n","collection":"c","index":"i"}`,
			want: Input{Question: "why?", Namespace: "n", Collection: "c", Index: "i"},
		},
		{name: "missing question", raw: `{"namespace":"n"}`, wantErr: true},
		{name: "empty question", raw: `{"question":""}`, wantErr: true},
		{name: "wrong type", raw: `{"question":42}`, wantErr: true},
		{name: "unknown field", raw: `{"question":"q","extra":true}`, wantErr: true},
		{name: "not json", raw: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInput([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeInput error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestRemoteCsiEndToEnd(t *testing.T) {
	chatCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/indexes/asym-64/search"):
			var req docindex.SearchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode search: %v", err)
			}
			if req.MaxResults != 3 || req.MinScore != 0.5 {
				t.Errorf("unexpected search request %+v", req)
			}
			_, _ = w.Write([]byte(`[{"document_path":{"namespace":"Studio","collection":"papers","name":"paper.pdf"},
				"section":[{"modality":"text","text":"relevant text"}],"score":0.9,
				"start":{"item":0,"position":10},"end":{"item":0,"position":20}}]`))
		case r.URL.Path == "/v1/inference/chat/completions":
			chatCalls++
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"grounded answer"},"finish_reason":"stop"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	csi := RemoteCsi{
		Index: docindex.New(docindex.SearchURL(server.URL), "tok", 5*time.Second, false),
		LLM:   inference.New(server.URL, "tok", 5*time.Second, false),
	}
	results, err := csi.Search(context.Background(), IndexPath{Namespace: "Studio", Collection: "papers", Index: "asym-64"}, "q", 3, 0.5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 || results[0].ChunkID != "paper.pdf@0:10" || results[0].Content != "relevant text" {
		t.Fatalf("unexpected results %+v", results)
	}

	out, err := CustomRAG(context.Background(), csi, Input{Question: "q"})
	if err != nil {
		t.Fatalf("CustomRAG error: %v", err)
	}
	if out.Answer == nil || *out.Answer != "grounded answer" || len(out.Sources) != 1 || out.Sources[0] != "paper.pdf" {
		t.Fatalf("unexpected output %+v", out)
	}
	if chatCalls != 1 {
		t.Fatalf("expected one chat call, got %d", chatCalls)
	}
}

func TestRemoteCsiEmptySearchSkipsChat(t *testing.T) {
	chatCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/search") {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		chatCalls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	csi := RemoteCsi{
		Index: docindex.New(docindex.SearchURL(server.URL), "tok", 5*time.Second, false),
		LLM:   inference.New(server.URL, "tok", 5*time.Second, false),
	}
	out, err := CustomRAG(context.Background(), csi, Input{Question: "q"})
	if err != nil {
		t.Fatalf("CustomRAG error: %v", err)
	}
	if out.Answer != nil || out.Sources != nil || chatCalls != 0 {
		t.Fatalf("unexpected output %+v (chat calls %d)", out, chatCalls)
	}
}

func TestBuildPromptMatchesTemplateExactly(t *testing.T) {
	got := BuildPrompt("Why 100%?", []SearchResult{{Content: "first"}, {Content: "second"}})
	want := "Using the provided context documents below, answer the following question.\n" +
		"Format your response with the following sections: \n" +
		"    1. SUMMARY: A brief 1-2 sentence answer to the question \n" +
		"    2. DETAILS: A comprehensive explanation with specific information from the context \n" +
		"    3. SOURCES: References to the specific parts of the context you used, if applicable If the information is not available in the context documents, clearly state this and provide a general response based on your knowledge, marked as [GENERAL KNOWLEDGE].\n" +
		"\nInput: first\nsecond\n\nQuestion: Why 100%?\n"
	if got != want {
		t.Fatalf("prompt mismatch:\ngot  %q\nwant %q", got, want)
	}
}
