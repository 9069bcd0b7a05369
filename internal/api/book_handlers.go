package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/http/response"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns a page of books ordered by ID",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Description:   "Creates a book; mood facets are derived automatically",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Applies a partial update; facets are re-derived when text fields change",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete book",
		Description:   "Deletes a book and its stored cover",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)

	// Cover bytes bypass the envelope; plain chi handler.
	s.router.Get("/api/v1/books/{id}/cover", s.handleGetCover)
}

// === DTOs ===

// BookResponse contains book fields in API responses.
type BookResponse struct {
	ID            string    `json:"id" doc:"Book ID"`
	Title         string    `json:"title" doc:"Title"`
	Author        string    `json:"author" doc:"Author"`
	ISBN          string    `json:"isbn,omitempty" doc:"ISBN"`
	PublishedYear int       `json:"published_year,omitempty" doc:"Year of first publication"`
	CoverImage    string    `json:"cover_image,omitempty" doc:"Cover URL"`
	CoverBlurHash string    `json:"cover_blur_hash,omitempty" doc:"BlurHash placeholder"`
	Rating        float64   `json:"rating,omitempty" doc:"Average rating"`
	PageCount     int       `json:"page_count,omitempty" doc:"Page count"`
	Description   string    `json:"description,omitempty" doc:"Description"`
	Pace          string    `json:"pace,omitempty" doc:"Reading pace: Fast, Moderate, or Slow"`
	Tone          []string  `json:"tone,omitempty" doc:"Mood facets"`
	Themes        []string  `json:"themes,omitempty" doc:"Theme facets"`
	BestFor       []string  `json:"best_for,omitempty" doc:"Recommended reader contexts"`
	Categories    []string  `json:"categories,omitempty" doc:"Subject categories"`
	Professions   []string  `json:"professions,omitempty" doc:"Profession facets"`
	Source        string    `json:"source,omitempty" doc:"Originating catalog provider"`
	IsExternal    bool      `json:"is_external,omitempty" doc:"True for unpersisted provider results"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt     time.Time `json:"updated_at" doc:"Last update time"`
}

// ListBooksInput contains cursor pagination parameters.
type ListBooksInput struct {
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=200" doc:"Page size (default 50)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// ListBooksResponse is a page of books.
type ListBooksResponse struct {
	Books      []BookResponse `json:"books" doc:"Page of books"`
	NextCursor string         `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool           `json:"has_more" doc:"Whether more pages exist"`
}

// ListBooksOutput wraps the list response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateBookRequest
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput identifies a book by path.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps a partial update for Huma.
type UpdateBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
	Body          service.UpdateBookRequest
}

// DeleteBookInput identifies a book to delete.
type DeleteBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	page, err := s.services.Book.ListBooks(ctx, store.PaginationParams{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	})
	if err != nil {
		return nil, err
	}

	books := make([]BookResponse, 0, len(page.Items))
	for i := range page.Items {
		books = append(books, toBookResponse(&page.Items[i]))
	}

	return &ListBooksOutput{Body: ListBooksResponse{
		Books:      books,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*struct{}, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

// handleGetCover serves the stored cover image for a book.
func (s *Server) handleGetCover(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if s.storage.Covers == nil {
		response.NotFound(w, "cover not found", s.logger)
		return
	}

	data, err := s.storage.Covers.Get(bookID)
	if err != nil {
		response.NotFound(w, "cover not found", s.logger)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write cover response", "id", bookID, "error", err)
	}
}

func toBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		CoverImage:    book.CoverImage,
		CoverBlurHash: book.CoverBlurHash,
		Rating:        book.Rating,
		PageCount:     book.PageCount,
		Description:   book.Description,
		Pace:          string(book.Pace),
		Tone:          book.Tone,
		Themes:        book.Themes,
		BestFor:       book.BestFor,
		Categories:    book.Categories,
		Professions:   book.Professions,
		Source:        book.Source,
		IsExternal:    book.IsExternal,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}
