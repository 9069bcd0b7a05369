// Package catalog defines the shared contract for external book catalog
// providers. Each provider package (openlibrary, googlebooks, goodreads,
// storygraph) normalizes its wire format into the common Book shape and
// runs the lexical tagger over the unstructured fields; this package holds
// the shape, the facet-narrowing rules, and description normalization.
package catalog

import (
	"context"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// Book is a provider result normalized into the common shape. It is a
// transient DTO: it exists for the duration of a request/response cycle
// unless explicitly persisted through the book service.
type Book struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear int
	CoverURL      string
	Rating        float64
	PageCount     int
	Description   string
	Subjects      []string

	Tone        []string
	Themes      []string
	Professions []string
	BestFor     []string
	Pace        domain.Pace

	// Source names the provider that produced this record.
	Source string
}

// ToDomain converts a provider result into a transient domain.Book.
func (b *Book) ToDomain() domain.Book {
	return domain.Book{
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		CoverImage:    b.CoverURL,
		Rating:        b.Rating,
		PageCount:     b.PageCount,
		Description:   b.Description,
		Pace:          b.Pace,
		Tone:          b.Tone,
		Themes:        b.Themes,
		BestFor:       b.BestFor,
		Categories:    b.Subjects,
		Professions:   b.Professions,
		Source:        b.Source,
		IsExternal:    true,
	}
}

// Adapter is implemented by every external catalog provider.
//
// Search performs the provider's outbound call(s), normalizes the results,
// and applies facet narrowing for facet-qualified search types. A failed
// outbound call surfaces as an error; the aggregation layer decides
// whether to degrade. Individual malformed records are skipped rather
// than failing the batch.
type Adapter interface {
	Name() string
	Search(ctx context.Context, query string, limit int, searchType domain.SearchType) ([]Book, error)
}
