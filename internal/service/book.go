// Package service contains the business logic layer: orchestration between
// the store, the catalog adapters, the search index, and the media pipeline.
package service

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	domainerrors "github.com/moodshelfapp/moodshelf-server/internal/errors"
	"github.com/moodshelfapp/moodshelf-server/internal/id"
	"github.com/moodshelfapp/moodshelf-server/internal/media/covers"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// BookService manages the local book catalog: CRUD, automatic tagging on
// write, and the cover pipeline.
type BookService struct {
	store  store.Store
	tagger *tagger.Tagger
	covers *covers.Downloader
	logger *slog.Logger
}

// NewBookService creates a new book service. The covers downloader is
// optional; when nil, cover URLs are stored untouched.
func NewBookService(st store.Store, tg *tagger.Tagger, dl *covers.Downloader, logger *slog.Logger) *BookService {
	return &BookService{
		store:  st,
		tagger: tg,
		covers: dl,
		logger: logger,
	}
}

// CreateBookRequest contains the fields accepted when creating a book.
type CreateBookRequest struct {
	Title         string   `json:"title" validate:"required,max=512"`
	Author        string   `json:"author" validate:"required,max=256"`
	ISBN          string   `json:"isbn,omitempty" validate:"omitempty,max=17"`
	PublishedYear int      `json:"published_year,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty" validate:"omitempty,url"`
	Rating        float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	PageCount     int      `json:"page_count,omitempty" validate:"omitempty,min=0"`
	Description   string   `json:"description,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// UpdateBookRequest contains the fields accepted when updating a book.
// Nil pointers leave the corresponding field unchanged.
type UpdateBookRequest struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,max=512"`
	Author        *string   `json:"author,omitempty" validate:"omitempty,max=256"`
	ISBN          *string   `json:"isbn,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Rating        *float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	PageCount     *int      `json:"page_count,omitempty" validate:"omitempty,min=0"`
	Description   *string   `json:"description,omitempty"`
	Categories    *[]string `json:"categories,omitempty"`
}

// CreateBook persists a new book. The lexical tagger runs over the title,
// description, and categories so every stored book carries mood facets.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	book := &domain.Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		CoverImage:    req.CoverURL,
		Rating:        req.Rating,
		PageCount:     req.PageCount,
		Description:   req.Description,
		Categories:    req.Categories,
		Source:        req.Source,
	}
	book.ID = id.MustGenerate(id.PrefixBook)
	book.InitTimestamps()

	s.applyTags(book)

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.fetchCover(ctx, book, req.CoverURL)

	s.logger.Info("created book", "id", book.ID, "title", book.Title, "pace", book.Pace)
	return book, nil
}

// GetBook returns a single book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// ListBooks returns a page of books ordered by ID.
func (s *BookService) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Book], error) {
	params.Validate()
	return s.store.ListBooks(ctx, params)
}

// UpdateBook applies a partial update and re-runs the tagger when any of
// the tag source fields changed.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	retag := false
	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
		retag = true
	}
	if req.Author != nil {
		book.Author = strings.TrimSpace(*req.Author)
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
		retag = true
	}
	if req.Description != nil {
		book.Description = *req.Description
		retag = true
	}
	if req.Categories != nil {
		book.Categories = *req.Categories
		retag = true
	}

	if retag {
		s.applyTags(book)
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("updated book", "id", book.ID)
	return book, nil
}

// DeleteBook removes a book and its stored cover, if any.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	if s.covers != nil {
		if err := s.covers.Storage().Delete(bookID); err != nil {
			s.logger.Warn("failed to delete cover", "id", bookID, "error", err)
		}
	}
	s.logger.Info("deleted book", "id", bookID)
	return nil
}

// SaveExternal persists a transient external catalog result as a local
// book. The record arrives already tagged by its adapter; tagging is not
// re-run so provider facets survive verbatim.
func (s *BookService) SaveExternal(ctx context.Context, external domain.Book) (*domain.Book, error) {
	if external.Title == "" || external.Author == "" {
		return nil, domainerrors.Validation("external book requires title and author")
	}

	book := external
	book.IsExternal = false
	book.ID = id.MustGenerate(id.PrefixBook)
	book.InitTimestamps()

	coverURL := book.CoverImage
	if err := s.store.CreateBook(ctx, &book); err != nil {
		return nil, err
	}

	s.fetchCover(ctx, &book, coverURL)

	s.logger.Info("saved external book", "id", book.ID, "source", book.Source)
	return &book, nil
}

// applyTags runs the lexical tagger and replaces the book's facet sets.
func (s *BookService) applyTags(book *domain.Book) {
	text := book.Title + " " + book.Description
	result := s.tagger.Tag(text, book.Categories, book.PageCount)
	book.Tone = result.Tone
	book.Themes = result.Themes
	book.Professions = result.Professions
	book.BestFor = result.BestFor
	book.Pace = result.Pace
}

// fetchCover downloads and processes an external cover URL, then writes
// the blurhash back onto the row. Cover failures never fail the request.
func (s *BookService) fetchCover(ctx context.Context, book *domain.Book, url string) {
	if s.covers == nil || url == "" || !strings.HasPrefix(url, "http") {
		return
	}

	result := s.covers.Download(ctx, book.ID, url, book.Source)
	if !result.Success {
		s.logger.Warn("cover download failed", "id", book.ID, "url", url, "error", result.Error)
		return
	}

	book.CoverBlurHash = result.BlurHash
	book.Touch()
	if err := s.store.UpdateBook(ctx, book); err != nil {
		s.logger.Warn("failed to persist blurhash", "id", book.ID, "error", err)
	}
}
