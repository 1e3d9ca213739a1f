// Package display renders document-index results as annotated console text.
package display

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mwiater/ragnote/internal/util"
)

const (
	// DefaultSearchTextLength is the excerpt length used for search hits.
	DefaultSearchTextLength = 150
	// DefaultChunkTextLength is the excerpt length used for document chunks.
	DefaultChunkTextLength = 200
)

var (
	infoColor    = color.New(color.FgHiBlue)
	successColor = color.New(color.FgHiGreen)
	rankColor    = color.New(color.FgHiCyan)
	scoreColor   = color.New(color.FgHiYellow)
	nameColor    = color.New(color.FgHiBlue)
	warnColor    = color.New(color.FgHiYellow)
)

// Document is a stored document with its upload time. A zero Created means
// the service did not report one.
type Document struct {
	Name    string
	Created time.Time
}

// SearchHit is a single ranked search result.
type SearchHit struct {
	Name  string
	Score float64
	Text  string
}

// Chunk is a section of a document. Text is nil when the service returned no
// section text.
type Chunk struct {
	Text  *string
	Start int
	End   int
}

// Printer writes result listings to Out.
type Printer struct {
	Out io.Writer
	// Now supplies the reference time for document ages.
	Now func() time.Time
}

// NewPrinter returns a Printer that measures ages against the wall clock.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		Out: out,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

// Documents prints each document with how long ago it was uploaded.
func (p *Printer) Documents(docs []Document, collection string) {
	fmt.Fprintln(p.Out)
	if collection != "" {
		infoColor.Fprintf(p.Out, "ℹ️  INFO: Documents in collection '%s'\n", collection)
	} else {
		infoColor.Fprintln(p.Out, "ℹ️  INFO: Documents in collection")
	}
	fmt.Fprintln(p.Out)

	now := p.now()
	for _, doc := range docs {
		if doc.Created.IsZero() {
			fmt.Fprintf(p.Out, "   📄 %s: upload time unknown\n", doc.Name)
			continue
		}
		fmt.Fprintf(p.Out, "   📄 %s: uploaded %s\n", doc.Name, FormatTimeAgo(doc.Created, now))
	}

	fmt.Fprintln(p.Out)
	successColor.Fprintf(p.Out, "✅ SUCCESS: Found %d documents in collection\n", len(docs))
	fmt.Fprintln(p.Out)
}

// SearchResults prints ranked hits with their scores and a cleaned excerpt.
// A non-positive maxTextLength selects DefaultSearchTextLength.
func (p *Printer) SearchResults(hits []SearchHit, query string, maxTextLength int) {
	if maxTextLength <= 0 {
		maxTextLength = DefaultSearchTextLength
	}

	fmt.Fprintln(p.Out)
	if query != "" {
		infoColor.Fprintf(p.Out, "ℹ️  INFO: Search results for query: '%s'\n", query)
	} else {
		infoColor.Fprintln(p.Out, "ℹ️  INFO: Search results")
	}
	fmt.Fprintln(p.Out)

	for i, hit := range hits {
		fmt.Fprintf(p.Out, "   %s 📄 %s\n", rankColor.Sprintf("#%d", i+1), nameColor.Sprint(hit.Name))
		fmt.Fprintf(p.Out, "      %s\n", scoreColor.Sprintf("Score: %.3f", hit.Score))
		fmt.Fprintf(p.Out, "      💬 \"%s\"\n", util.Excerpt(hit.Text, maxTextLength))
		fmt.Fprintln(p.Out)
	}

	successColor.Fprintf(p.Out, "✅ SUCCESS: Found %d relevant documents\n", len(hits))
	fmt.Fprintln(p.Out)
}

// Chunks prints document chunks with their positions and a cleaned excerpt.
// A non-positive maxTextLength selects DefaultChunkTextLength.
func (p *Printer) Chunks(chunks []Chunk, documentName string, maxTextLength int) {
	if maxTextLength <= 0 {
		maxTextLength = DefaultChunkTextLength
	}

	fmt.Fprintln(p.Out)
	if documentName != "" {
		infoColor.Fprintf(p.Out, "ℹ️  INFO: Document chunks for '%s'\n", documentName)
	} else {
		infoColor.Fprintln(p.Out, "ℹ️  INFO: Document chunks")
	}
	fmt.Fprintln(p.Out)

	for i, chunk := range chunks {
		fmt.Fprintf(p.Out, "   %s 📄 Chunk %d\n", rankColor.Sprintf("#%d", i+1), i+1)
		fmt.Fprintf(p.Out, "      %s\n", scoreColor.Sprintf("Position: %d-%d", chunk.Start, chunk.End))
		fmt.Fprintf(p.Out, "      💬 %s\n", chunkExcerpt(chunk.Text, maxTextLength))
		fmt.Fprintln(p.Out)
	}

	successColor.Fprintf(p.Out, "✅ SUCCESS: Found %d chunks\n", len(chunks))
	fmt.Fprintln(p.Out)
}

// Answer prints a generated answer followed by the documents it drew on. A
// nil answer means nothing relevant was retrieved.
func (p *Printer) Answer(question string, answer *string, sources []string) {
	fmt.Fprintln(p.Out)
	infoColor.Fprintf(p.Out, "ℹ️  INFO: Question: '%s'\n", question)
	fmt.Fprintln(p.Out)

	if answer == nil {
		warnColor.Fprintln(p.Out, "⚠️  WARNING: No relevant documents found")
		fmt.Fprintln(p.Out)
		return
	}

	fmt.Fprintln(p.Out, *answer)
	fmt.Fprintln(p.Out)
	for i, source := range sources {
		fmt.Fprintf(p.Out, "   %s 📄 %s\n", rankColor.Sprintf("#%d", i+1), nameColor.Sprint(source))
	}
	if len(sources) > 0 {
		fmt.Fprintln(p.Out)
	}
	successColor.Fprintf(p.Out, "✅ SUCCESS: Answered from %d sources\n", len(sources))
	fmt.Fprintln(p.Out)
}

func (p *Printer) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}

// chunkExcerpt quotes the cleaned chunk text. Absent text is shown as None.
func chunkExcerpt(text *string, maxTextLength int) string {
	if text == nil {
		return "None"
	}
	return `"` + util.Excerpt(*text, maxTextLength) + `"`
}
