package docindex

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/ragnote/internal/display"
)

// DocumentPath identifies a document inside a collection.
type DocumentPath struct {
	Namespace  string `json:"namespace"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// Document is a stored document as returned by the docs listing.
type Document struct {
	Path    DocumentPath `json:"document_path"`
	Created time.Time    `json:"-"`
	Version int          `json:"version"`
}

// UnmarshalJSON decodes created_timestamp, which the service may send without
// a zone designation. A missing timestamp leaves Created zero.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var raw struct {
		alias
		Created string `json:"created_timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document(raw.alias)
	if strings.TrimSpace(raw.Created) == "" {
		return nil
	}
	created, err := display.ParseTimestamp(raw.Created)
	if err != nil {
		return fmt.Errorf("document %q: %w", raw.Path.Name, err)
	}
	d.Created = created
	return nil
}

// Modality is one typed fragment of a query or section.
type Modality struct {
	Modality string `json:"modality"`
	Text     string `json:"text,omitempty"`
}

// Cursor points at a position within a document's item list.
type Cursor struct {
	Item     int `json:"item"`
	Position int `json:"position"`
}

// SearchRequest is the body of an index search.
type SearchRequest struct {
	Query      []Modality `json:"query"`
	MaxResults int        `json:"max_results"`
	MinScore   float64    `json:"min_score"`
}

// TextQuery builds a single-text-modality search request.
func TextQuery(query string, maxResults int, minScore float64) SearchRequest {
	return SearchRequest{
		Query:      []Modality{{Modality: "text", Text: query}},
		MaxResults: maxResults,
		MinScore:   minScore,
	}
}

// SearchResult is a scored chunk returned by an index search.
type SearchResult struct {
	ID      DocumentPath `json:"document_path"`
	Section []Modality   `json:"section"`
	Score   float64      `json:"score"`
	Start   Cursor       `json:"start"`
	End     Cursor       `json:"end"`
}

// Text joins the text modalities of the matched section.
func (r SearchResult) Text() string {
	var parts []string
	for _, m := range r.Section {
		if m.Modality == "text" && m.Text != "" {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ChunkPosition is the character span of a chunk.
type ChunkPosition struct {
	Start int `json:"start_position"`
	End   int `json:"end_position"`
}

// DocumentChunk is one indexed chunk of a document. Section is nil when the
// service omits the text.
type DocumentChunk struct {
	Section  *string       `json:"section"`
	Position ChunkPosition `json:"position"`
}

// DisplayDocuments converts documents for the result printer.
func DisplayDocuments(docs []Document) []display.Document {
	out := make([]display.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, display.Document{Name: d.Path.Name, Created: d.Created})
	}
	return out
}

// DisplayHits converts search results for the result printer.
func DisplayHits(results []SearchResult) []display.SearchHit {
	out := make([]display.SearchHit, 0, len(results))
	for _, r := range results {
		out = append(out, display.SearchHit{Name: r.ID.Name, Score: r.Score, Text: r.Text()})
	}
	return out
}

// DisplayChunks converts document chunks for the result printer.
func DisplayChunks(chunks []DocumentChunk) []display.Chunk {
	out := make([]display.Chunk, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, display.Chunk{Text: c.Section, Start: c.Position.Start, End: c.Position.End})
	}
	return out
}
