package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strings"

	"github.com/moodshelfapp/moodshelf-server/internal/catalog"
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// Search implements catalog.Adapter.
func (c *Client) Search(ctx context.Context, query string, limit int, searchType domain.SearchType) ([]catalog.Book, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))

	body, err := c.doGet(ctx, c.baseURL+"/search.json", params)
	if err != nil {
		return nil, catalog.WrapError(providerName, "search", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, catalog.WrapError(providerName, "search", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	results := make([]catalog.Book, 0, len(resp.Docs))
	for i := range resp.Docs {
		doc := &resp.Docs[i]

		// A record without a title or author cannot be deduplicated or
		// displayed; skip it rather than failing the batch.
		if doc.Title == "" || len(doc.AuthorName) == 0 {
			c.logger.Debug("skipping malformed record", "provider", providerName, "key", doc.Key)
			continue
		}

		book := c.normalize(ctx, doc)

		if !catalog.NarrowFacets(&book, query, searchType) {
			continue
		}
		results = append(results, book)
	}

	return results, nil
}

// normalize converts one search doc into the common shape, fetching the
// work detail for an extended description when available.
func (c *Client) normalize(ctx context.Context, doc *searchDoc) catalog.Book {
	book := catalog.Book{
		Title:         doc.Title,
		Author:        doc.AuthorName[0],
		PublishedYear: doc.FirstPublishYear,
		Rating:        doc.RatingsAverage,
		PageCount:     doc.PageCountMedian,
		Subjects:      doc.Subjects,
		Source:        providerName,
	}

	if len(doc.ISBN) > 0 {
		book.ISBN = doc.ISBN[0]
	}
	if doc.CoverID != 0 {
		book.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coverURL, doc.CoverID)
	}

	if desc, err := c.workDescription(ctx, doc.Key); err != nil {
		c.logger.Debug("work detail unavailable", "key", doc.Key, "error", err)
	} else {
		book.Description = desc
	}

	res := c.tagger.Tag(book.Title+" "+book.Description, book.Subjects, book.PageCount)
	book.Tone = res.Tone
	book.Themes = res.Themes
	book.Professions = res.Professions
	book.BestFor = res.BestFor
	book.Pace = res.Pace

	return book
}

// workDescription fetches the work detail record for its description,
// using the response cache when possible.
func (c *Client) workDescription(ctx context.Context, workKey string) (string, error) {
	if workKey == "" || !strings.HasPrefix(workKey, "/works/") {
		return "", nil
	}

	cacheKey := "openlibrary:work:" + workKey

	body, ok := c.cache.Get(cacheKey)
	if !ok {
		var err error
		body, err = c.doGet(ctx, c.baseURL+workKey+".json", nil)
		if err != nil {
			return "", catalog.WrapError(providerName, "workDetail", err)
		}
		if err := c.cache.Set(cacheKey, body, detailCacheTTL); err != nil {
			c.logger.Warn("failed to cache work detail", "key", workKey, "error", err)
		}
	}

	var detail workDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return "", catalog.WrapError(providerName, "workDetail", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	// Description arrives as either a plain string or a rich-text
	// object; FlattenDescription normalizes both.
	return catalog.FlattenDescription(detail.Description), nil
}

// Raw API response types.

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	ISBN             []string `json:"isbn"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int64    `json:"cover_i"`
	Subjects         []string `json:"subject"`
	PageCountMedian  int      `json:"number_of_pages_median"`
	RatingsAverage   float64  `json:"ratings_average"`
}

type workDetail struct {
	Description any      `json:"description"`
	Subjects    []string `json:"subjects"`
}
