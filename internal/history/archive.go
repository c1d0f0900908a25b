package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kaisetsu/internal/models"
)

// Archive combines the SQLite store and the Bleve index behind one API.
type Archive struct {
	store  *Store
	index  *Index
	logger *zap.Logger
}

// NewArchive opens the store and index at the given paths.
func NewArchive(dbPath, indexPath string, logger *zap.Logger) (*Archive, error) {
	store, err := NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	index, err := NewIndex(indexPath)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &Archive{store: store, index: index, logger: logger}, nil
}

// Record stores a query result as a new history entry and returns it.
// Index failures are logged, not fatal: the store remains the store of
// record and search just misses the entry.
func (a *Archive) Record(ctx context.Context, result *models.QueryResult) (*Entry, error) {
	if result == nil {
		return nil, fmt.Errorf("nil result")
	}
	entry := &Entry{
		ID:              uuid.NewString(),
		Query:           result.Query,
		Answer:          result.Answer,
		ConfidenceScore: result.ConfidenceScore,
		Result:          result,
		CreatedAt:       time.Now().UTC(),
	}
	if err := a.store.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := a.index.Add(ctx, entry); err != nil {
		a.logger.Warn("history index add failed", zap.String("id", entry.ID), zap.Error(err))
	}
	return entry, nil
}

// List returns up to limit entries, most recent first.
func (a *Archive) List(ctx context.Context, limit int) ([]*Entry, error) {
	return a.store.List(ctx, limit)
}

// Get returns one entry by id.
func (a *Archive) Get(ctx context.Context, id string) (*Entry, error) {
	return a.store.Get(ctx, id)
}

// Count returns the number of stored entries.
func (a *Archive) Count(ctx context.Context) (int64, error) {
	return a.store.Count(ctx)
}

// Search finds entries whose query or answer matches the terms, best match
// first. Ids returned by the index but missing from the store (e.g. after a
// partial clear) are skipped.
func (a *Archive) Search(ctx context.Context, terms string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := a.index.Search(ctx, terms, limit)
	if err != nil {
		return nil, err
	}
	entries := []*Entry{}
	for _, id := range ids {
		entry, err := a.store.Get(ctx, id)
		if err != nil {
			a.logger.Debug("history search hit missing from store", zap.String("id", id))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear deletes all entries from the store and drops them from the index.
func (a *Archive) Clear(ctx context.Context) error {
	entries, err := a.store.List(ctx, 1<<20)
	if err != nil {
		return err
	}
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := a.index.Delete(ctx, entry.ID); err != nil {
			a.logger.Warn("history index delete failed", zap.String("id", entry.ID), zap.Error(err))
		}
	}
	return nil
}

// Close closes the store and index.
func (a *Archive) Close() error {
	storeErr := a.store.Close()
	indexErr := a.index.Close()
	if storeErr != nil {
		return storeErr
	}
	return indexErr
}
