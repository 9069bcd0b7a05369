// Package search routes faceted queries over book results, merges local
// and external result sets, and maintains a full-text suggestion index.
package search

import (
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/normalize"
)

// Router dispatches a catalog query to the matching strategy for its
// search type. It is a pure filter: input slices are never mutated.
type Router struct{}

// NewRouter creates a new Router.
func NewRouter() *Router {
	return &Router{}
}

// Filter returns the books matching the query, in input order. A
// non-positive limit means unlimited.
func (r *Router) Filter(books []domain.Book, q domain.CatalogQuery) []domain.Book {
	match := r.matcher(q)

	out := make([]domain.Book, 0, len(books))
	for i := range books {
		if match(&books[i]) {
			out = append(out, books[i])
		}
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

func (r *Router) matcher(q domain.CatalogQuery) func(*domain.Book) bool {
	switch q.Type {
	case domain.SearchTitle:
		return func(b *domain.Book) bool {
			return normalize.ContainsFold(b.Title, q.Query)
		}
	case domain.SearchAuthor:
		return func(b *domain.Book) bool {
			return normalize.ContainsFold(b.Author, q.Query)
		}
	case domain.SearchMood, domain.SearchTone:
		return func(b *domain.Book) bool {
			return domain.HasTag(b.Tone, q.Query)
		}
	case domain.SearchTheme:
		return func(b *domain.Book) bool {
			return domain.HasTag(b.Themes, q.Query)
		}
	case domain.SearchProfession:
		return func(b *domain.Book) bool {
			return domain.HasTag(b.Professions, q.Query)
		}
	case domain.SearchPace, domain.SearchReadingStyle:
		// Synonyms rewrite the query to a pace value before the
		// equality check; unrecognized queries pass through as-is.
		want := ResolvePace(q.Query)
		return func(b *domain.Book) bool {
			return normalize.EqualFold(string(b.Pace), string(want))
		}
	default:
		return func(b *domain.Book) bool {
			return normalize.ContainsFold(b.Title, q.Query) ||
				normalize.ContainsFold(b.Author, q.Query) ||
				domain.HasTag(b.Themes, q.Query) ||
				domain.HasTag(b.Tone, q.Query) ||
				domain.HasTag(b.Professions, q.Query)
		}
	}
}
