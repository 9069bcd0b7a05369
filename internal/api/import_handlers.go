package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerImportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "importReddit",
		Method:        http.MethodPost,
		Path:          "/api/v1/import/reddit",
		Summary:       "Import Reddit threads",
		Description:   "Pulls top posts from the configured subreddits and upserts them as threads",
		Tags:          []string{"Import"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusAccepted,
	}, s.handleImportReddit)
}

// ImportInput identifies an authenticated import trigger.
type ImportInput struct {
	Authorization string `header:"Authorization"`
}

// ImportResponse summarizes an import run.
type ImportResponse struct {
	Fetched int `json:"fetched" doc:"Posts fetched from all subreddits"`
	Created int `json:"created" doc:"New threads created"`
	Updated int `json:"updated" doc:"Existing threads refreshed"`
	Failed  int `json:"failed" doc:"Posts that could not be imported"`
}

// ImportOutput wraps the import response for Huma.
type ImportOutput struct {
	Body ImportResponse
}

func (s *Server) handleImportReddit(ctx context.Context, _ *ImportInput) (*ImportOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if s.services.Import == nil {
		return nil, huma.Error503ServiceUnavailable("import is not configured")
	}

	stats, err := s.services.Import.Run(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("import failed", err)
	}

	return &ImportOutput{Body: ImportResponse{
		Fetched: stats.Fetched,
		Created: stats.Created,
		Updated: stats.Updated,
		Failed:  stats.Failed,
	}}, nil
}
