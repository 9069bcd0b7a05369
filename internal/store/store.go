// Package store defines the persistence contract for Moodshelf
// entities and shared store-level types.
package store

import (
	"context"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// BookStore persists books.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, params PaginationParams) (*PaginatedResult[domain.Book], error)
	AllBooks(ctx context.Context) ([]domain.Book, error)
}

// ThreadStore persists discussion threads.
type ThreadStore interface {
	CreateThread(ctx context.Context, thread *domain.Thread) error
	GetThread(ctx context.Context, id string) (*domain.Thread, error)
	GetThreadByPermalink(ctx context.Context, permalink string) (*domain.Thread, error)
	UpdateThread(ctx context.Context, thread *domain.Thread) error
	DeleteThread(ctx context.Context, id string) error
	ListThreads(ctx context.Context, params PaginationParams) (*PaginatedResult[domain.Thread], error)
	IncrementUpvotes(ctx context.Context, id string) (int64, error)
	IncrementComments(ctx context.Context, id string) (int64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// Store is the full persistence surface.
type Store interface {
	BookStore
	ThreadStore
	UserStore
	Close() error
}

// SearchIndexer keeps a secondary full-text index in sync with book
// writes. The store calls it after successful commits; indexing
// failures must not fail the write.
type SearchIndexer interface {
	IndexBook(book *domain.Book) error
	DeleteBook(id string) error
}

// NoopSearchIndexer ignores all index updates.
type NoopSearchIndexer struct{}

func (NoopSearchIndexer) IndexBook(*domain.Book) error { return nil }
func (NoopSearchIndexer) DeleteBook(string) error      { return nil }

// NewNoopSearchIndexer returns an indexer that does nothing.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }
