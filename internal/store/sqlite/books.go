package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, author, isbn,
	published_year, cover_image, cover_blur_hash, rating, page_count,
	description, pace, tone, themes, best_for, categories, professions,
	source`

// scanBook scans a row into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt     string
		updatedAt     string
		isbn          sql.NullString
		publishedYear sql.NullInt64
		coverImage    sql.NullString
		coverBlurHash sql.NullString
		rating        sql.NullFloat64
		pageCount     sql.NullInt64
		desc          sql.NullString
		pace          sql.NullString
		tone          string
		themes        string
		bestFor       string
		categories    string
		professions   string
		source        sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&isbn,
		&publishedYear,
		&coverImage,
		&coverBlurHash,
		&rating,
		&pageCount,
		&desc,
		&pace,
		&tone,
		&themes,
		&bestFor,
		&categories,
		&professions,
		&source,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.ISBN = isbn.String
	b.PublishedYear = int(publishedYear.Int64)
	b.CoverImage = coverImage.String
	b.CoverBlurHash = coverBlurHash.String
	b.Rating = rating.Float64
	b.PageCount = int(pageCount.Int64)
	b.Description = desc.String
	b.Pace = domain.Pace(pace.String)
	b.Source = source.String

	if b.Tone, err = unmarshalTags(tone); err != nil {
		return nil, err
	}
	if b.Themes, err = unmarshalTags(themes); err != nil {
		return nil, err
	}
	if b.BestFor, err = unmarshalTags(bestFor); err != nil {
		return nil, err
	}
	if b.Categories, err = unmarshalTags(categories); err != nil {
		return nil, err
	}
	if b.Professions, err = unmarshalTags(professions); err != nil {
		return nil, err
	}

	return &b, nil
}

// bookTagColumns marshals the tag sets of a book for writing.
func bookTagColumns(b *domain.Book) (tone, themes, bestFor, categories, professions string, err error) {
	if tone, err = marshalTags(b.Tone); err != nil {
		return
	}
	if themes, err = marshalTags(b.Themes); err != nil {
		return
	}
	if bestFor, err = marshalTags(b.BestFor); err != nil {
		return
	}
	if categories, err = marshalTags(b.Categories); err != nil {
		return
	}
	professions, err = marshalTags(b.Professions)
	return
}

// CreateBook inserts a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	tone, themes, bestFor, categories, professions, err := bookTagColumns(book)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (id, created_at, updated_at, title, author, isbn,
			published_year, cover_image, cover_blur_hash, rating, page_count,
			description, pace, tone, themes, best_for, categories, professions,
			source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		nullString(book.ISBN),
		book.PublishedYear,
		nullString(book.CoverImage),
		nullString(book.CoverBlurHash),
		book.Rating,
		book.PageCount,
		nullString(book.Description),
		nullString(string(book.Pace)),
		tone, themes, bestFor, categories, professions,
		nullString(book.Source),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}

	if err := s.indexer.IndexBook(book); err != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}
	return nil
}

// GetBook fetches a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBook updates an existing book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	tone, themes, bestFor, categories, professions, err := bookTagColumns(book)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET updated_at = ?, title = ?, author = ?, isbn = ?,
			published_year = ?, cover_image = ?, cover_blur_hash = ?,
			rating = ?, page_count = ?, description = ?, pace = ?,
			tone = ?, themes = ?, best_for = ?, categories = ?,
			professions = ?, source = ?
		WHERE id = ?`,
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		nullString(book.ISBN),
		book.PublishedYear,
		nullString(book.CoverImage),
		nullString(book.CoverBlurHash),
		book.Rating,
		book.PageCount,
		nullString(book.Description),
		nullString(string(book.Pace)),
		tone, themes, bestFor, categories, professions,
		nullString(book.Source),
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if err := s.indexer.IndexBook(book); err != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}
	return nil
}

// DeleteBook removes a book. Thread links go with it via cascade.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if err := s.indexer.DeleteBook(id); err != nil {
		s.logger.Warn("failed to deindex book", "book_id", id, "error", err)
	}
	return nil
}

// ListBooks returns a page of books ordered by ID.
func (s *Store) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Book], error) {
	params.Validate()

	after, err := store.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(err)
	}

	// Fetch one extra row to detect another page.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id > ? ORDER BY id LIMIT ?`,
		after, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	result := &store.PaginatedResult[domain.Book]{Items: books}
	if len(books) > params.Limit {
		result.Items = books[:params.Limit]
		result.HasMore = true
		result.NextCursor = store.EncodeCursor(result.Items[len(result.Items)-1].ID)
	}
	return result, nil
}

// AllBooks returns every book, used for search filtering and index
// rebuilds.
func (s *Store) AllBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("all books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// isUniqueViolation reports whether an error is a UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
