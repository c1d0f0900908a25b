package history

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kaisetsu/internal/models"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	dir := t.TempDir()
	archive, err := NewArchive(
		filepath.Join(dir, "history.db"),
		filepath.Join(dir, "index"),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func sampleResult(query, answer string) *models.QueryResult {
	r := &models.QueryResult{
		Query:           query,
		Answer:          answer,
		ConfidenceScore: 0.8,
		Entities:        []models.Entity{{Name: "radium", Type: "SUBSTANCE"}},
		Snippets:        []string{"Marie Curie discovered radium in 1898."},
	}
	r.Normalize()
	return r
}

func TestArchive_RecordAndGet(t *testing.T) {
	archive := testArchive(t)
	ctx := context.Background()

	entry, err := archive.Record(ctx, sampleResult("who discovered radium?", "Marie Curie discovered radium."))
	if err != nil {
		t.Fatal(err)
	}
	if entry.ID == "" {
		t.Error("entry should get an id")
	}

	got, err := archive.Get(ctx, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Query != "who discovered radium?" {
		t.Errorf("query = %q", got.Query)
	}
	if got.Result == nil || len(got.Result.Snippets) != 1 {
		t.Errorf("stored result should round-trip, got %+v", got.Result)
	}
	if got.Result.Citations == nil {
		t.Error("loaded result should be normalized")
	}
}

func TestArchive_RecordNil(t *testing.T) {
	archive := testArchive(t)
	if _, err := archive.Record(context.Background(), nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestArchive_List(t *testing.T) {
	archive := testArchive(t)
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		if _, err := archive.Record(ctx, sampleResult(q, "answer for "+q)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := archive.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	count, err := archive.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestArchive_Search(t *testing.T) {
	archive := testArchive(t)
	ctx := context.Background()

	if _, err := archive.Record(ctx, sampleResult("who discovered radium?", "Marie Curie discovered radium.")); err != nil {
		t.Fatal(err)
	}
	if _, err := archive.Record(ctx, sampleResult("capital of France?", "Paris is the capital of France.")); err != nil {
		t.Fatal(err)
	}

	entries, err := archive.Search(ctx, "radium", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(entries))
	}
	if entries[0].Query != "who discovered radium?" {
		t.Errorf("hit = %q", entries[0].Query)
	}
}

func TestArchive_Clear(t *testing.T) {
	archive := testArchive(t)
	ctx := context.Background()

	if _, err := archive.Record(ctx, sampleResult("q", "a")); err != nil {
		t.Fatal(err)
	}
	if err := archive.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	count, err := archive.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d", count)
	}
	entries, err := archive.Search(ctx, "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("search after clear = %d hits", len(entries))
	}
}
