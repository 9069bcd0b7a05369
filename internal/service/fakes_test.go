package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/catalog/reddit"
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

// memStore is an in-memory store.Store for service tests.
type memStore struct {
	mu      sync.Mutex
	books   map[string]domain.Book
	threads map[string]domain.Thread
	users   map[string]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		books:   make(map[string]domain.Book),
		threads: make(map[string]domain.Thread),
		users:   make(map[string]domain.User),
	}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) CreateBook(_ context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[book.ID]; ok {
		return store.ErrAlreadyExists
	}
	m.books[book.ID] = *book
	return nil
}

func (m *memStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) UpdateBook(_ context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[book.ID]; !ok {
		return store.ErrNotFound
	}
	m.books[book.ID] = *book
	return nil
}

func (m *memStore) DeleteBook(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *memStore) ListBooks(_ context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Book], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := sortedValues(m.books)
	if params.Limit > 0 && len(books) > params.Limit {
		books = books[:params.Limit]
	}
	return &store.PaginatedResult[domain.Book]{Items: books}, nil
}

func (m *memStore) AllBooks(_ context.Context) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.books), nil
}

func (m *memStore) CreateThread(_ context.Context, thread *domain.Thread) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[thread.ID]; ok {
		return store.ErrAlreadyExists
	}
	if thread.Permalink != "" {
		for _, t := range m.threads {
			if t.Permalink == thread.Permalink {
				return store.ErrAlreadyExists
			}
		}
	}
	m.threads[thread.ID] = *thread
	return nil
}

func (m *memStore) GetThread(_ context.Context, id string) (*domain.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) GetThreadByPermalink(_ context.Context, permalink string) (*domain.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.threads {
		if t.Permalink == permalink {
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UpdateThread(_ context.Context, thread *domain.Thread) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[thread.ID]; !ok {
		return store.ErrNotFound
	}
	m.threads[thread.ID] = *thread
	return nil
}

func (m *memStore) DeleteThread(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.threads, id)
	return nil
}

func (m *memStore) ListThreads(_ context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Thread], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	threads := sortedValues(m.threads)
	if params.Limit > 0 && len(threads) > params.Limit {
		threads = threads[:params.Limit]
	}
	return &store.PaginatedResult[domain.Thread]{Items: threads}, nil
}

func (m *memStore) IncrementUpvotes(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	t.Upvotes++
	m.threads[id] = t
	return t.Upvotes, nil
}

func (m *memStore) IncrementComments(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	t.Comments++
	m.threads[id] = t
	return t.Comments, nil
}

func (m *memStore) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrAlreadyExists
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UpdateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	m.users[user.ID] = *user
	return nil
}

type entityLike interface {
	domain.Book | domain.Thread | domain.User
}

func sortedValues[T entityLike](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// fakeAdapter returns canned results or a canned error.
type fakeAdapter struct {
	name    string
	results []catalog.Book
	err     error
	calls   int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(context.Context, string, int, domain.SearchType) ([]catalog.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// fakeReddit returns canned posts per subreddit.
type fakeReddit struct {
	posts map[string][]reddit.Post
	err   error
}

func (f *fakeReddit) TopPosts(_ context.Context, subreddit, _ string, _ int) ([]reddit.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[subreddit], nil
}
