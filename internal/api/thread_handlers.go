package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

func (s *Server) registerThreadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listThreads",
		Method:      http.MethodGet,
		Path:        "/api/v1/threads",
		Summary:     "List threads",
		Description: "Returns a page of discussion threads",
		Tags:        []string{"Threads"},
	}, s.handleListThreads)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createThread",
		Method:        http.MethodPost,
		Path:          "/api/v1/threads",
		Summary:       "Create thread",
		Description:   "Creates a discussion thread; mood tags are derived automatically",
		Tags:          []string{"Threads"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateThread)

	huma.Register(s.api, huma.Operation{
		OperationID: "getThread",
		Method:      http.MethodGet,
		Path:        "/api/v1/threads/{id}",
		Summary:     "Get thread",
		Description: "Returns a thread with its linked book IDs",
		Tags:        []string{"Threads"},
	}, s.handleGetThread)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateThread",
		Method:      http.MethodPatch,
		Path:        "/api/v1/threads/{id}",
		Summary:     "Update thread",
		Description: "Applies a partial update to a thread",
		Tags:        []string{"Threads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateThread)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteThread",
		Method:        http.MethodDelete,
		Path:          "/api/v1/threads/{id}",
		Summary:       "Delete thread",
		Description:   "Deletes a thread and its book links",
		Tags:          []string{"Threads"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteThread)

	huma.Register(s.api, huma.Operation{
		OperationID: "upvoteThread",
		Method:      http.MethodPost,
		Path:        "/api/v1/threads/{id}/upvote",
		Summary:     "Upvote thread",
		Description: "Increments the thread's upvote counter",
		Tags:        []string{"Threads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpvoteThread)

	huma.Register(s.api, huma.Operation{
		OperationID: "commentThread",
		Method:      http.MethodPost,
		Path:        "/api/v1/threads/{id}/comments",
		Summary:     "Record comment",
		Description: "Increments the thread's comment counter",
		Tags:        []string{"Threads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCommentThread)
}

// === DTOs ===

// ThreadResponse contains thread fields in API responses.
type ThreadResponse struct {
	ID          string    `json:"id" doc:"Thread ID"`
	Title       string    `json:"title" doc:"Title"`
	Description string    `json:"description,omitempty" doc:"Body text"`
	Upvotes     int64     `json:"upvotes" doc:"Upvote count"`
	Comments    int64     `json:"comments" doc:"Comment count"`
	Tags        []string  `json:"tags,omitempty" doc:"Derived mood tags"`
	CreatorID   string    `json:"creator_id,omitempty" doc:"Creating user ID"`
	BookIDs     []string  `json:"book_ids,omitempty" doc:"Linked book IDs"`
	Source      string    `json:"source,omitempty" doc:"Import source, empty for in-app threads"`
	Permalink   string    `json:"permalink,omitempty" doc:"Canonical URL at the source"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// ListThreadsInput contains cursor pagination parameters.
type ListThreadsInput struct {
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=200" doc:"Page size (default 50)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// ListThreadsResponse is a page of threads.
type ListThreadsResponse struct {
	Threads    []ThreadResponse `json:"threads" doc:"Page of threads"`
	NextCursor string           `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool             `json:"has_more" doc:"Whether more pages exist"`
}

// ListThreadsOutput wraps the list response for Huma.
type ListThreadsOutput struct {
	Body ListThreadsResponse
}

// CreateThreadInput wraps the create request for Huma.
type CreateThreadInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateThreadRequest
}

// ThreadOutput wraps a single thread for Huma.
type ThreadOutput struct {
	Body ThreadResponse
}

// GetThreadInput identifies a thread by path.
type GetThreadInput struct {
	ID string `path:"id" doc:"Thread ID"`
}

// UpdateThreadInput wraps a partial update for Huma.
type UpdateThreadInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Thread ID"`
	Body          service.UpdateThreadRequest
}

// ThreadActionInput identifies a thread for an authenticated action.
type ThreadActionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Thread ID"`
}

// CounterResponse carries an updated counter value.
type CounterResponse struct {
	Count int64 `json:"count" doc:"New counter value"`
}

// CounterOutput wraps a counter response for Huma.
type CounterOutput struct {
	Body CounterResponse
}

// === Handlers ===

func (s *Server) handleListThreads(ctx context.Context, input *ListThreadsInput) (*ListThreadsOutput, error) {
	page, err := s.services.Thread.ListThreads(ctx, store.PaginationParams{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	})
	if err != nil {
		return nil, err
	}

	threads := make([]ThreadResponse, 0, len(page.Items))
	for i := range page.Items {
		threads = append(threads, toThreadResponse(&page.Items[i]))
	}

	return &ListThreadsOutput{Body: ListThreadsResponse{
		Threads:    threads,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleCreateThread(ctx context.Context, input *CreateThreadInput) (*ThreadOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := input.Body
	req.CreatorID = userID

	thread, err := s.services.Thread.CreateThread(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ThreadOutput{Body: toThreadResponse(thread)}, nil
}

func (s *Server) handleGetThread(ctx context.Context, input *GetThreadInput) (*ThreadOutput, error) {
	thread, err := s.services.Thread.GetThread(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ThreadOutput{Body: toThreadResponse(thread)}, nil
}

func (s *Server) handleUpdateThread(ctx context.Context, input *UpdateThreadInput) (*ThreadOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	thread, err := s.services.Thread.UpdateThread(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ThreadOutput{Body: toThreadResponse(thread)}, nil
}

func (s *Server) handleDeleteThread(ctx context.Context, input *ThreadActionInput) (*struct{}, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Thread.DeleteThread(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleUpvoteThread(ctx context.Context, input *ThreadActionInput) (*CounterOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	count, err := s.services.Thread.Upvote(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CounterOutput{Body: CounterResponse{Count: count}}, nil
}

func (s *Server) handleCommentThread(ctx context.Context, input *ThreadActionInput) (*CounterOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	count, err := s.services.Thread.AddComment(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CounterOutput{Body: CounterResponse{Count: count}}, nil
}

func toThreadResponse(thread *domain.Thread) ThreadResponse {
	return ThreadResponse{
		ID:          thread.ID,
		Title:       thread.Title,
		Description: thread.Description,
		Upvotes:     thread.Upvotes,
		Comments:    thread.Comments,
		Tags:        thread.Tags,
		CreatorID:   thread.CreatorID,
		BookIDs:     thread.BookIDs,
		Source:      thread.Source,
		Permalink:   thread.Permalink,
		CreatedAt:   thread.CreatedAt,
		UpdatedAt:   thread.UpdatedAt,
	}
}
