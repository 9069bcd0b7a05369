package search

import (
	"strings"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// SuggestDocument is the shape indexed for autocomplete suggestions.
// Tag sets are denormalized into a single text field so one match query
// covers moods, themes and professions alike.
type SuggestDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// NewSuggestDocument builds a document from a stored book.
func NewSuggestDocument(b *domain.Book) *SuggestDocument {
	tags := make([]string, 0, len(b.Tone)+len(b.Themes)+len(b.Professions)+len(b.BestFor))
	tags = append(tags, b.Tone...)
	tags = append(tags, b.Themes...)
	tags = append(tags, b.Professions...)
	tags = append(tags, b.BestFor...)

	return &SuggestDocument{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Tags:        strings.Join(tags, " "),
	}
}

// ToMap converts the document to a map with lowercase field names so
// they line up with the index mapping.
func (d *SuggestDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"title":       d.Title,
		"author":      d.Author,
		"description": d.Description,
		"tags":        d.Tags,
	}
}
