package search

import (
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// Combine merges local and external result sets. Local results always
// survive and come first, in their original order; an external result
// is dropped when a local result already covers the same title and
// author (case-sensitive). Combining twice with the same local set is
// a no-op.
func Combine(local, external []domain.Book) []domain.Book {
	type key struct {
		title  string
		author string
	}

	seen := make(map[key]struct{}, len(local))
	for i := range local {
		seen[key{local[i].Title, local[i].Author}] = struct{}{}
	}

	out := make([]domain.Book, 0, len(local)+len(external))
	out = append(out, local...)

	for i := range external {
		k := key{external[i].Title, external[i].Author}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, external[i])
	}

	return out
}
