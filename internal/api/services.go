package api

import (
	"github.com/moodshelfapp/moodshelf-server/internal/media/covers"
	"github.com/moodshelfapp/moodshelf-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth   *service.AuthService
	Book   *service.BookService
	Thread *service.ThreadService
	Search *service.SearchService
	Import *service.ImportService
}

// StorageServices groups file storage handlers used by the API server.
type StorageServices struct {
	Covers *covers.Storage // Book cover images
}
