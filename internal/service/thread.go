package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	domainerrors "github.com/moodshelfapp/moodshelf-server/internal/errors"
	"github.com/moodshelfapp/moodshelf-server/internal/id"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// ThreadService manages book discussion threads, both user-created and
// imported from external communities.
type ThreadService struct {
	store  store.Store
	tagger *tagger.Tagger
	logger *slog.Logger
}

// NewThreadService creates a new thread service.
func NewThreadService(st store.Store, tg *tagger.Tagger, logger *slog.Logger) *ThreadService {
	return &ThreadService{
		store:  st,
		tagger: tg,
		logger: logger,
	}
}

// CreateThreadRequest contains the fields accepted when creating a thread.
type CreateThreadRequest struct {
	Title       string   `json:"title" validate:"required,max=512"`
	Description string   `json:"description,omitempty" validate:"max=8192"`
	CreatorID   string   `json:"-"`
	BookIDs     []string `json:"book_ids,omitempty" validate:"max=50"`
}

// UpdateThreadRequest contains the fields accepted when updating a thread.
type UpdateThreadRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=512"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=8192"`
	BookIDs     *[]string `json:"book_ids,omitempty" validate:"omitempty,max=50"`
}

// CreateThread persists a new in-app thread. Title and description run
// through the tagger so threads carry the same mood vocabulary as books.
func (s *ThreadService) CreateThread(ctx context.Context, req CreateThreadRequest) (*domain.Thread, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	if err := s.checkBookIDs(ctx, req.BookIDs); err != nil {
		return nil, err
	}

	thread := &domain.Thread{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatorID:   req.CreatorID,
		BookIDs:     req.BookIDs,
	}
	thread.ID = id.MustGenerate(id.PrefixThread)
	thread.InitTimestamps()
	thread.Tags = s.tagThread(thread)

	if err := s.store.CreateThread(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info("created thread", "id", thread.ID, "title", thread.Title)
	return thread, nil
}

// GetThread returns a single thread with its linked book IDs.
func (s *ThreadService) GetThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	return s.store.GetThread(ctx, threadID)
}

// ListThreads returns a page of threads ordered by ID.
func (s *ThreadService) ListThreads(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.Thread], error) {
	params.Validate()
	return s.store.ListThreads(ctx, params)
}

// UpdateThread applies a partial update, re-tagging when text changed.
func (s *ThreadService) UpdateThread(ctx context.Context, threadID string, req UpdateThreadRequest) (*domain.Thread, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	thread, err := s.store.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	retag := false
	if req.Title != nil {
		thread.Title = strings.TrimSpace(*req.Title)
		retag = true
	}
	if req.Description != nil {
		thread.Description = *req.Description
		retag = true
	}
	if req.BookIDs != nil {
		if err := s.checkBookIDs(ctx, *req.BookIDs); err != nil {
			return nil, err
		}
		thread.BookIDs = *req.BookIDs
	}

	if retag {
		thread.Tags = s.tagThread(thread)
	}
	thread.Touch()

	if err := s.store.UpdateThread(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info("updated thread", "id", thread.ID)
	return thread, nil
}

// DeleteThread removes a thread and its book links.
func (s *ThreadService) DeleteThread(ctx context.Context, threadID string) error {
	if err := s.store.DeleteThread(ctx, threadID); err != nil {
		return err
	}
	s.logger.Info("deleted thread", "id", threadID)
	return nil
}

// Upvote atomically increments the thread's upvote counter and returns
// the new total.
func (s *ThreadService) Upvote(ctx context.Context, threadID string) (int64, error) {
	return s.store.IncrementUpvotes(ctx, threadID)
}

// AddComment atomically increments the thread's comment counter and
// returns the new total.
func (s *ThreadService) AddComment(ctx context.Context, threadID string) (int64, error) {
	return s.store.IncrementComments(ctx, threadID)
}

// tagThread runs the lexical tagger over the thread text and returns the
// combined tone and theme vocabulary.
func (s *ThreadService) tagThread(thread *domain.Thread) []string {
	text := thread.Title + " " + thread.Description
	result := s.tagger.Tag(text, nil, 0)

	tags := make([]string, 0, len(result.Tone)+len(result.Themes))
	tags = append(tags, result.Tone...)
	tags = append(tags, result.Themes...)
	return tags
}

// checkBookIDs verifies every referenced book exists.
func (s *ThreadService) checkBookIDs(ctx context.Context, bookIDs []string) error {
	for _, bookID := range bookIDs {
		if _, err := s.store.GetBook(ctx, bookID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown book id %q", bookID)
			}
			return err
		}
	}
	return nil
}
