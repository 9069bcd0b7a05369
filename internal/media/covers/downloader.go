package covers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// maxCoverSize limits download size to prevent memory exhaustion.
	maxCoverSize = 10 * 1024 * 1024 // 10MB

	// downloadTimeout is the maximum time for a cover download.
	downloadTimeout = 30 * time.Second
)

// Result contains the outcome of a cover download operation.
type Result struct {
	Success  bool
	BlurHash string
	Width    int
	Height   int
	Size     int64 // Stored file size in bytes
	Source   string
	Error    error // Set when Success is false
}

// Downloader fetches cover images from provider URLs, runs them through
// the processing pipeline, and persists them via Storage.
type Downloader struct {
	httpClient *http.Client
	storage    *Storage
	logger     *slog.Logger
}

// NewDownloader creates a cover downloader.
func NewDownloader(storage *Storage, logger *slog.Logger) *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
		storage: storage,
		logger:  logger,
	}
}

// Storage exposes the underlying cover storage.
func (d *Downloader) Storage() *Storage {
	return d.storage
}

// Download fetches a cover from the URL, processes it, and stores it for
// the given book ID. Failures are reported in the Result rather than
// returned; callers decide whether a missing cover is fatal.
func (d *Downloader) Download(ctx context.Context, bookID, url, source string) *Result {
	result := &Result{Source: source}

	if url == "" {
		result.Error = errors.New("empty cover URL")
		return result
	}

	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = fmt.Errorf("create request: %w", err)
		return result
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Errorf("download: %w", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("download failed: status %d", resp.StatusCode)
		return result
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverSize))
	if err != nil {
		result.Error = fmt.Errorf("read data: %w", err)
		return result
	}

	processed, err := Process(data)
	if err != nil {
		result.Error = fmt.Errorf("process: %w", err)
		return result
	}

	if err := d.storage.Save(bookID, processed.Data); err != nil {
		result.Error = fmt.Errorf("store: %w", err)
		return result
	}

	result.Success = true
	result.BlurHash = processed.BlurHash
	result.Width = processed.Width
	result.Height = processed.Height
	result.Size = int64(len(processed.Data))

	d.logger.Info("downloaded cover",
		"book_id", bookID,
		"source", source,
		"size", result.Size,
		"width", result.Width,
		"height", result.Height,
	)

	return result
}
