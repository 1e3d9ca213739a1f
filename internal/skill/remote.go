package skill

import (
	"context"
	"fmt"

	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/mwiater/ragnote/internal/providers"
)

// Searcher is the part of the document-index client the skill uses.
type Searcher interface {
	Search(ctx context.Context, namespace, collection, index string, req docindex.SearchRequest) ([]docindex.SearchResult, error)
}

// RemoteCsi binds the skill to the hosted document index and chat service.
type RemoteCsi struct {
	Index Searcher
	LLM   providers.ChatProvider
}

// Search runs a text query and flattens each hit into a SearchResult.
func (c RemoteCsi) Search(ctx context.Context, index IndexPath, query string, maxResults int, minScore float64) ([]SearchResult, error) {
	results, err := c.Index.Search(ctx, index.Namespace, index.Collection, index.Index, docindex.TextQuery(query, maxResults, minScore))
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			Content:      r.Text(),
			DocumentName: r.ID.Name,
			ChunkID:      fmt.Sprintf("%s@%d:%d", r.ID.Name, r.Start.Item, r.Start.Position),
			Score:        r.Score,
		})
	}
	return out, nil
}

// Chat forwards a single completion request to the chat provider.
func (c RemoteCsi) Chat(ctx context.Context, model string, messages []providers.ChatMessage, params providers.ChatParams) (providers.ChatResponse, error) {
	return c.LLM.Chat(ctx, providers.ChatRequest{Model: model, Messages: messages, Params: params})
}
