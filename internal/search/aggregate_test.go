package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func TestCombine(t *testing.T) {
	local := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert", Source: "local"},
	}
	external := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert", Source: "openlibrary", IsExternal: true},
		{Title: "Dune Messiah", Author: "Frank Herbert", Source: "openlibrary", IsExternal: true},
	}

	got := Combine(local, external)
	require.Len(t, got, 2)
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "local", got[0].Source, "local copy wins over the external duplicate")
	assert.Equal(t, "Dune Messiah", got[1].Title)
}

func TestCombineCaseSensitive(t *testing.T) {
	local := []domain.Book{{Title: "dune", Author: "Frank Herbert"}}
	external := []domain.Book{{Title: "Dune", Author: "Frank Herbert"}}

	// Dedup is deliberately case-sensitive; differing case is a
	// different edition as far as the merge is concerned.
	got := Combine(local, external)
	assert.Len(t, got, 2)
}

func TestCombineIdempotent(t *testing.T) {
	local := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Hyperion", Author: "Dan Simmons"},
	}
	external := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Ilium", Author: "Dan Simmons"},
	}

	once := Combine(local, external)
	twice := Combine(local, once[len(local):])
	assert.Equal(t, once, twice)
}

func TestCombineNeverDropsLocal(t *testing.T) {
	local := []domain.Book{
		{Title: "A", Author: "X"},
		{Title: "A", Author: "X"}, // duplicate local rows both survive
		{Title: "B", Author: "Y"},
	}

	got := Combine(local, nil)
	assert.Equal(t, local, got)
}

func TestCombineEmptyLocal(t *testing.T) {
	external := []domain.Book{{Title: "C", Author: "Z"}}

	got := Combine(nil, external)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Title)
}
