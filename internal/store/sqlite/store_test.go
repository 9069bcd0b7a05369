package sqlite

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBook(id, title, author string) *domain.Book {
	now := time.Now().UTC()
	return &domain.Book{
		Entity: domain.Entity{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:  title,
		Author: author,
		Pace:   domain.PaceModerate,
	}
}

func testThread(id, title string) *domain.Thread {
	now := time.Now().UTC()
	return &domain.Thread{
		Entity: domain.Entity{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title: title,
	}
}

func testUser(id, email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Entity: domain.Entity{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: "hash",
	}
}
