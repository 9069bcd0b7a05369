package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search catalog",
		Description: "Faceted search over local books, optionally merged with external catalog providers",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggest",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/suggest",
		Summary:     "Autocomplete suggestions",
		Description: "Returns title and author completions from the full-text index",
		Tags:        []string{"Search"},
	}, s.handleSuggest)
}

// === DTOs ===

// SearchInput contains parameters for a catalog search.
type SearchInput struct {
	Query    string `query:"q" validate:"required,min=1,max=200" doc:"Search query"`
	Type     string `query:"type" validate:"omitempty,max=30" doc:"Search type: all, title, author, mood, tone, theme, profession, pace, readingStyle"`
	External bool   `query:"external" doc:"Also query external catalog providers"`
	Limit    int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
}

// SearchResponse contains search results plus provenance counts.
type SearchResponse struct {
	Query         string         `json:"query" doc:"Original search query"`
	Books         []BookResponse `json:"books" doc:"Matching books, local rows first"`
	LocalCount    int            `json:"local_count" doc:"Results from the local catalog"`
	ExternalCount int            `json:"external_count" doc:"Results from external providers"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// SuggestInput contains parameters for autocomplete.
type SuggestInput struct {
	Query string `query:"q" validate:"required,min=1,max=100" doc:"Prefix or fuzzy query"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=25" doc:"Max suggestions (default 10)"`
}

// SuggestionResult is one autocomplete candidate.
type SuggestionResult struct {
	ID     string  `json:"id" doc:"Book ID"`
	Title  string  `json:"title" doc:"Title"`
	Author string  `json:"author" doc:"Author"`
	Score  float64 `json:"score" doc:"Relevance score"`
}

// SuggestResponse contains autocomplete candidates.
type SuggestResponse struct {
	Suggestions []SuggestionResult `json:"suggestions" doc:"Autocomplete candidates"`
}

// SuggestOutput wraps the suggest response for Huma.
type SuggestOutput struct {
	Body SuggestResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	result, err := s.services.Search.Search(ctx, domain.CatalogQuery{
		Query: input.Query,
		Type:  domain.ParseSearchType(input.Type),
		Limit: limit,
	}, input.External)
	if err != nil {
		return nil, err
	}

	books := make([]BookResponse, 0, len(result.Books))
	for i := range result.Books {
		books = append(books, toBookResponse(&result.Books[i]))
	}

	return &SearchOutput{Body: SearchResponse{
		Query:         input.Query,
		Books:         books,
		LocalCount:    result.LocalCount,
		ExternalCount: result.ExternalCount,
	}}, nil
}

func (s *Server) handleSuggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	suggestions, err := s.services.Search.Suggest(ctx, input.Query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SuggestionResult, 0, len(suggestions))
	for _, sg := range suggestions {
		results = append(results, SuggestionResult{
			ID:     sg.ID,
			Title:  sg.Title,
			Author: sg.Author,
			Score:  sg.Score,
		})
	}

	return &SuggestOutput{Body: SuggestResponse{Suggestions: results}}, nil
}
