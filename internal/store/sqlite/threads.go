package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

const threadColumns = `id, created_at, updated_at, title, description,
	upvotes, comments, tags, creator_id, source, permalink`

func scanThread(scanner interface{ Scan(dest ...any) error }) (*domain.Thread, error) {
	var t domain.Thread

	var (
		createdAt string
		updatedAt string
		desc      sql.NullString
		tags      string
		creatorID sql.NullString
		source    sql.NullString
		permalink sql.NullString
	)

	err := scanner.Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
		&t.Title,
		&desc,
		&t.Upvotes,
		&t.Comments,
		&tags,
		&creatorID,
		&source,
		&permalink,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	t.Description = desc.String
	t.CreatorID = creatorID.String
	t.Source = source.String
	t.Permalink = permalink.String

	if t.Tags, err = unmarshalTags(tags); err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateThread inserts a new thread and its book links in one
// transaction.
func (s *Store) CreateThread(ctx context.Context, thread *domain.Thread) error {
	tags, err := marshalTags(thread.Tags)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO threads (id, created_at, updated_at, title, description,
			upvotes, comments, tags, creator_id, source, permalink)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		thread.ID,
		formatTime(thread.CreatedAt),
		formatTime(thread.UpdatedAt),
		thread.Title,
		nullString(thread.Description),
		thread.Upvotes,
		thread.Comments,
		tags,
		nullString(thread.CreatorID),
		nullString(thread.Source),
		nullString(thread.Permalink),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert thread: %w", err)
	}

	if err := replaceThreadBooks(ctx, tx, thread.ID, thread.BookIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetThread fetches a thread by ID, including its linked book IDs.
func (s *Store) GetThread(ctx context.Context, id string) (*domain.Thread, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id = ?`, id)
	return s.hydrateThread(ctx, row)
}

// GetThreadByPermalink fetches a thread by its source permalink; the
// importer uses this for dedup.
func (s *Store) GetThreadByPermalink(ctx context.Context, permalink string) (*domain.Thread, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE permalink = ?`, permalink)
	return s.hydrateThread(ctx, row)
}

func (s *Store) hydrateThread(ctx context.Context, row *sql.Row) (*domain.Thread, error) {
	thread, err := scanThread(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	thread.BookIDs, err = s.threadBookIDs(ctx, thread.ID)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *Store) threadBookIDs(ctx context.Context, threadID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id FROM thread_books WHERE thread_id = ? ORDER BY position`,
		threadID)
	if err != nil {
		return nil, fmt.Errorf("thread books: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateThread updates a thread and replaces its book links.
func (s *Store) UpdateThread(ctx context.Context, thread *domain.Thread) error {
	tags, err := marshalTags(thread.Tags)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE threads SET updated_at = ?, title = ?, description = ?,
			upvotes = ?, comments = ?, tags = ?, source = ?, permalink = ?
		WHERE id = ?`,
		formatTime(thread.UpdatedAt),
		thread.Title,
		nullString(thread.Description),
		thread.Upvotes,
		thread.Comments,
		tags,
		nullString(thread.Source),
		nullString(thread.Permalink),
		thread.ID,
	)
	if err != nil {
		return fmt.Errorf("update thread: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if err := replaceThreadBooks(ctx, tx, thread.ID, thread.BookIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteThread removes a thread and its book links.
func (s *Store) DeleteThread(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListThreads returns a page of threads ordered by ID. Book links are
// not hydrated in list responses.
func (s *Store) ListThreads(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Thread], error) {
	params.Validate()

	after, err := store.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id > ? ORDER BY id LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		threads = append(threads, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate threads: %w", err)
	}

	result := &store.PaginatedResult[domain.Thread]{Items: threads}
	if len(threads) > params.Limit {
		result.Items = threads[:params.Limit]
		result.HasMore = true
		result.NextCursor = store.EncodeCursor(result.Items[len(result.Items)-1].ID)
	}
	return result, nil
}

// IncrementUpvotes bumps the upvote counter atomically and returns the
// new value. Counters only go up.
func (s *Store) IncrementUpvotes(ctx context.Context, id string) (int64, error) {
	return s.incrementCounter(ctx, id, "upvotes")
}

// IncrementComments bumps the comment counter atomically and returns
// the new value.
func (s *Store) IncrementComments(ctx context.Context, id string) (int64, error) {
	return s.incrementCounter(ctx, id, "comments")
}

func (s *Store) incrementCounter(ctx context.Context, id, column string) (int64, error) {
	// column is one of two callers' literals, never user input.
	row := s.db.QueryRowContext(ctx,
		`UPDATE threads SET `+column+` = `+column+` + 1, updated_at = ?
		 WHERE id = ? RETURNING `+column,
		formatTime(nowUTC()), id)

	var count int64
	err := row.Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}
	return count, nil
}

// replaceThreadBooks rewrites the thread_books rows for a thread.
func replaceThreadBooks(ctx context.Context, tx *sql.Tx, threadID string, bookIDs []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM thread_books WHERE thread_id = ?`, threadID); err != nil {
		return fmt.Errorf("clear thread books: %w", err)
	}

	for i, bookID := range bookIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO thread_books (thread_id, book_id, position) VALUES (?, ?, ?)`,
			threadID, bookID, i); err != nil {
			return fmt.Errorf("link book %s: %w", bookID, err)
		}
	}
	return nil
}
