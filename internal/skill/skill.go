// Package skill implements the question-answering skill: search an index,
// then ask a chat model to answer from the retrieved context.
package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/ragnote/internal/providers"
)

const (
	DefaultNamespace  = "Studio"
	DefaultCollection = "papers"
	DefaultIndex      = "asym-64"

	// DefaultModel answers questions when the caller does not pick one.
	DefaultModel = "llama-3.1-8b-instruct"
	// DefaultMaxTokens caps the length of the generated answer.
	DefaultMaxTokens = 512

	searchMaxResults = 3
	searchMinScore   = 0.5
)

// promptTemplate keeps the trailing spaces of the section lines.
const promptTemplate = "Using the provided context documents below, answer the following question.\n" +
	"Format your response with the following sections: \n" +
	"    1. SUMMARY: A brief 1-2 sentence answer to the question \n" +
	"    2. DETAILS: A comprehensive explanation with specific information from the context \n" +
	"    3. SOURCES: References to the specific parts of the context you used, if applicable If the information is not available in the context documents, clearly state this and provide a general response based on your knowledge, marked as [GENERAL KNOWLEDGE].\n" +
	"\n" +
	"Input: %s\n" +
	"\n" +
	"Question: %s\n"

// IndexPath addresses one index over a collection.
type IndexPath struct {
	Namespace  string
	Collection string
	Index      string
}

// SearchResult is a retrieved chunk as seen by the skill.
type SearchResult struct {
	Content      string
	DocumentName string
	ChunkID      string
	Score        float64
}

// Csi is the capability surface a skill runs against.
type Csi interface {
	Search(ctx context.Context, index IndexPath, query string, maxResults int, minScore float64) ([]SearchResult, error)
	Chat(ctx context.Context, model string, messages []providers.ChatMessage, params providers.ChatParams) (providers.ChatResponse, error)
}

// Input is the skill request. Empty identifiers fall back to the defaults.
type Input struct {
	Question   string `json:"question"`
	Namespace  string `json:"namespace,omitempty"`
	Collection string `json:"collection,omitempty"`
	Index      string `json:"index,omitempty"`
}

// WithDefaults fills empty identifiers.
func (in Input) WithDefaults() Input {
	if in.Namespace == "" {
		in.Namespace = DefaultNamespace
	}
	if in.Collection == "" {
		in.Collection = DefaultCollection
	}
	if in.Index == "" {
		in.Index = DefaultIndex
	}
	return in
}

// Output is the skill response. Both fields are nil when nothing relevant was
// found.
type Output struct {
	Answer  *string  `json:"answer"`
	Sources []string `json:"sources"`
}

// Options tunes the chat step.
type Options struct {
	Model     string
	MaxTokens int
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

// CustomRAG answers input.Question from the top search results. No chat call
// is made when the search returns nothing.
func CustomRAG(ctx context.Context, csi Csi, input Input) (Output, error) {
	return Run(ctx, csi, input, Options{})
}

// Run is CustomRAG with explicit chat options.
func Run(ctx context.Context, csi Csi, input Input, opts Options) (Output, error) {
	input = input.WithDefaults()
	opts = opts.withDefaults()
	if strings.TrimSpace(input.Question) == "" {
		return Output{}, fmt.Errorf("question is required")
	}

	index := IndexPath{
		Namespace:  input.Namespace,
		Collection: input.Collection,
		Index:      input.Index,
	}
	documents, err := csi.Search(ctx, index, input.Question, searchMaxResults, searchMinScore)
	if err != nil {
		return Output{}, fmt.Errorf("search %s/%s/%s: %w", index.Namespace, index.Collection, index.Index, err)
	}
	if len(documents) == 0 {
		return Output{}, nil
	}

	message := providers.UserMessage(BuildPrompt(input.Question, documents))
	maxTokens := opts.MaxTokens
	response, err := csi.Chat(ctx, opts.Model, []providers.ChatMessage{message}, providers.ChatParams{MaxTokens: &maxTokens})
	if err != nil {
		return Output{}, fmt.Errorf("chat: %w", err)
	}

	answer := response.Message.Content
	sources := make([]string, 0, len(documents))
	for _, d := range documents {
		sources = append(sources, d.DocumentName)
	}
	return Output{Answer: &answer, Sources: sources}, nil
}

// BuildPrompt joins the retrieved contents into the answer prompt.
func BuildPrompt(question string, documents []SearchResult) string {
	contents := make([]string, 0, len(documents))
	for _, d := range documents {
		contents = append(contents, d.Content)
	}
	return fmt.Sprintf(promptTemplate, strings.Join(contents, "\n"), question)
}
