package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog/reddit"
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/id"
	"github.com/moodshelfapp/moodshelf-server/internal/normalize"
	"github.com/moodshelfapp/moodshelf-server/internal/store"
	"github.com/moodshelfapp/moodshelf-server/internal/tagger"
)

// postsPerSubreddit caps how many posts one import run pulls per subreddit.
const postsPerSubreddit = 25

// RedditSource pulls top posts from a subreddit. Satisfied by
// *reddit.Client.
type RedditSource interface {
	TopPosts(ctx context.Context, subreddit, window string, limit int) ([]reddit.Post, error)
}

// ImportService ingests book discussion threads from external communities.
// Imported threads are deduplicated by their source permalink: re-running
// an import updates counters on existing threads instead of duplicating.
type ImportService struct {
	store      store.Store
	source     RedditSource
	tagger     *tagger.Tagger
	subreddits []string
	window     string
	logger     *slog.Logger
}

// NewImportService creates an import service over the given source.
func NewImportService(
	st store.Store,
	source RedditSource,
	tg *tagger.Tagger,
	subreddits []string,
	window string,
	logger *slog.Logger,
) *ImportService {
	return &ImportService{
		store:      st,
		source:     source,
		tagger:     tg,
		subreddits: subreddits,
		window:     window,
		logger:     logger,
	}
}

// ImportStats summarizes one import run.
type ImportStats struct {
	Fetched int `json:"fetched"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Run pulls top posts from every configured subreddit and upserts them as
// threads. A failing subreddit is logged and skipped; the run only errors
// when every subreddit failed.
func (s *ImportService) Run(ctx context.Context) (*ImportStats, error) {
	stats := &ImportStats{}
	failures := 0

	for _, subreddit := range s.subreddits {
		posts, err := s.source.TopPosts(ctx, subreddit, s.window, postsPerSubreddit)
		if err != nil {
			s.logger.Warn("subreddit fetch failed", "subreddit", subreddit, "error", err)
			failures++
			continue
		}
		stats.Fetched += len(posts)

		for _, post := range posts {
			if err := s.upsertPost(ctx, post, stats); err != nil {
				s.logger.Warn("failed to import post",
					"subreddit", subreddit,
					"permalink", post.Permalink,
					"error", err,
				)
				stats.Failed++
			}
		}
	}

	if failures > 0 && failures == len(s.subreddits) {
		return stats, fmt.Errorf("all %d subreddits failed", failures)
	}

	s.logger.Info("import run complete",
		"fetched", stats.Fetched,
		"created", stats.Created,
		"updated", stats.Updated,
		"failed", stats.Failed,
	)
	return stats, nil
}

// upsertPost converts one post into a thread, linking any local books the
// post mentions by title.
func (s *ImportService) upsertPost(ctx context.Context, post reddit.Post, stats *ImportStats) error {
	existing, err := s.store.GetThreadByPermalink(ctx, post.Permalink)
	switch {
	case err == nil:
		// Already imported. Refresh the community counters; they only
		// ever move up, so a source score that dropped between runs is
		// ignored.
		existing.Upvotes = max(existing.Upvotes, post.Score)
		existing.Comments = max(existing.Comments, post.NumComments)
		existing.Touch()
		if err := s.store.UpdateThread(ctx, existing); err != nil {
			return err
		}
		stats.Updated++
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	text := post.Title + " " + post.SelfText
	result := s.tagger.Tag(text, nil, 0)
	tags := make([]string, 0, len(result.Tone)+len(result.Themes))
	tags = append(tags, result.Tone...)
	tags = append(tags, result.Themes...)

	bookIDs, err := s.linkMentionedBooks(ctx, text)
	if err != nil {
		return err
	}

	thread := &domain.Thread{
		Title:       post.Title,
		Description: post.SelfText,
		Upvotes:     post.Score,
		Comments:    post.NumComments,
		Tags:        tags,
		BookIDs:     bookIDs,
		Source:      "reddit",
		Permalink:   post.Permalink,
	}
	thread.ID = id.MustGenerate(id.PrefixThread)
	thread.InitTimestamps()

	if err := s.store.CreateThread(ctx, thread); err != nil {
		// A concurrent run may have won the permalink race.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	stats.Created++
	return nil
}

// linkMentionedBooks returns the IDs of local books whose title appears in
// the post text. Very short titles are skipped to avoid false links.
func (s *ImportService) linkMentionedBooks(ctx context.Context, text string) ([]string, error) {
	books, err := s.store.AllBooks(ctx)
	if err != nil {
		return nil, err
	}

	folded := normalize.Fold(text)
	var ids []string
	for _, book := range books {
		if len(book.Title) < 4 {
			continue
		}
		if normalize.ContainsFold(folded, book.Title) {
			ids = append(ids, book.ID)
		}
	}
	return ids, nil
}
