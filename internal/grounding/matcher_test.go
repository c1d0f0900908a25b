package grounding

import (
	"reflect"
	"testing"

	"github.com/hyperjump/kaisetsu/internal/models"
)

func TestMatchEntities(t *testing.T) {
	entities := []models.Entity{
		{Name: "Marie Curie", Type: "PERSON"},
		{Name: "Nobel Prize", Type: "EVENT"},
		{Name: "Albert Einstein", Type: "PERSON"},
	}
	got := MatchEntities("Marie Curie won the Nobel Prize.", entities)
	want := []models.Entity{
		{Name: "Marie Curie", Type: "PERSON"},
		{Name: "Nobel Prize", Type: "EVENT"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchEntities = %v, want %v", got, want)
	}
}

func TestMatchEntities_caseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		entity    string
		wantMatch bool
	}{
		{"exact", "radium glows", "radium", true},
		{"different case", "RADIUM glows", "radium", true},
		{"substring of plural", "She won two Nobel Prizes.", "Nobel Prize", true},
		{"absent", "nothing here", "radium", false},
		{"empty text", "", "radium", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEntities(tt.text, []models.Entity{{Name: tt.entity, Type: "X"}})
			if (len(got) == 1) != tt.wantMatch {
				t.Errorf("MatchEntities(%q, %q): matched=%v, want %v", tt.text, tt.entity, len(got) == 1, tt.wantMatch)
			}
		})
	}
}

func TestMatchEntities_skipsEmptyNames(t *testing.T) {
	entities := []models.Entity{{Name: "", Type: "X"}, {Name: "paris", Type: "GPE"}}
	got := MatchEntities("Paris is lovely.", entities)
	if len(got) != 1 || got[0].Name != "paris" {
		t.Errorf("expected only the named entity to match, got %v", got)
	}
}

func TestMatchEntities_preservesDuplicates(t *testing.T) {
	entities := []models.Entity{
		{Name: "Paris", Type: "GPE"},
		{Name: "paris", Type: "PERSON"},
	}
	got := MatchEntities("Paris in spring.", entities)
	if len(got) != 2 {
		t.Fatalf("duplicates should both match, got %d", len(got))
	}
}

func TestDedupeEntities(t *testing.T) {
	entities := []models.Entity{
		{Name: "Paris", Type: "GPE"},
		{Name: "paris", Type: "PERSON"},
		{Name: "Curie", Type: "PERSON"},
	}
	got := DedupeEntities(entities)
	want := []models.Entity{
		{Name: "Paris", Type: "GPE"},
		{Name: "Curie", Type: "PERSON"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeEntities = %v, want %v (first-seen wins)", got, want)
	}
}
