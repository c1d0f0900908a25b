package history

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
)

// indexedEntry is the document shape stored in the Bleve index. Only the
// searchable text goes in; the SQLite store remains the store of record.
type indexedEntry struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// Index is a Bleve full-text index over query and answer text, used for
// "history search" lookups.
type Index struct {
	index bleve.Index
}

// NewIndex creates or opens a Bleve index at path. An existing index is
// opened and reused; remove the directory to force a rebuild after mapping
// changes.
func NewIndex(path string) (*Index, error) {
	im := bleve.NewIndexMapping()

	entryMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so searches match
	// exact words from past queries and answers.
	textFieldMapping.Analyzer = standard.Name
	entryMapping.AddFieldMappingsAt("query", textFieldMapping)
	entryMapping.AddFieldMappingsAt("answer", textFieldMapping)
	im.AddDocumentMapping("entry", entryMapping)
	im.DefaultType = "entry"
	im.DefaultMapping = entryMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open history index: %w", openErr)
		}
		return &Index{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create history index: %w", err)
	}
	return &Index{index: index}, nil
}

// Add indexes an entry by id.
func (i *Index) Add(ctx context.Context, entry *Entry) error {
	return i.index.Index(entry.ID, indexedEntry{Query: entry.Query, Answer: entry.Answer})
}

// Search returns the ids of up to limit entries matching the query terms,
// best match first.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]string, error) {
	search := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	search.Size = limit
	results, err := i.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("history search failed: %w", err)
	}
	ids := make([]string, len(results.Hits))
	for n, hit := range results.Hits {
		ids[n] = hit.ID
	}
	return ids, nil
}

// Delete removes an entry from the index.
func (i *Index) Delete(ctx context.Context, id string) error {
	return i.index.Delete(id)
}

// Close closes the index.
func (i *Index) Close() error {
	return i.index.Close()
}
