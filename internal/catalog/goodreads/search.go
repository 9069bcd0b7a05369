package goodreads

import (
	"context"
	"encoding/xml"
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

	body, err := c.doGet(ctx, c.baseURL+"/search/index.xml", params)
	if err != nil {
		return nil, catalog.WrapError(providerName, "search", err)
	}

	var resp searchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, catalog.WrapError(providerName, "search", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	results := make([]catalog.Book, 0, len(resp.Search.Results.Works))
	for i := range resp.Search.Results.Works {
		work := &resp.Search.Results.Works[i]

		if work.BestBook.Title == "" || work.BestBook.Author.Name == "" {
			c.logger.Debug("skipping malformed work", "provider", providerName, "id", work.ID)
			continue
		}

		book := c.normalize(work)

		if !catalog.NarrowFacets(&book, query, searchType) {
			continue
		}
		results = append(results, book)
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func (c *Client) normalize(work *work) catalog.Book {
	book := catalog.Book{
		Title:         work.BestBook.Title,
		Author:        work.BestBook.Author.Name,
		PublishedYear: work.PublicationYear,
		CoverURL:      coverURL(work.BestBook.ImageURL),
		Rating:        work.AverageRating,
		Source:        providerName,
	}

	// The search feed carries no page count or description; the tagger
	// works from the title alone and pace defaults to moderate.
	res := c.tagger.Tag(book.Title, nil, 0)
	book.Tone = res.Tone
	book.Themes = res.Themes
	book.Professions = res.Professions
	book.BestFor = res.BestFor
	book.Pace = res.Pace

	return book
}

// coverURL drops the Goodreads "nophoto" placeholder so the aggregator
// can fill the cover in from another source.
func coverURL(u string) string {
	if strings.Contains(u, "nophoto") {
		return ""
	}
	return u
}

// Raw API response types.

type searchResponse struct {
	XMLName xml.Name `xml:"GoodreadsResponse"`
	Search  struct {
		Results struct {
			Works []work `xml:"work"`
		} `xml:"results"`
	} `xml:"search"`
}

type work struct {
	ID              int64   `xml:"id"`
	PublicationYear int     `xml:"original_publication_year"`
	AverageRating   float64 `xml:"average_rating"`
	BestBook        struct {
		Title  string `xml:"title"`
		Author struct {
			Name string `xml:"name"`
		} `xml:"author"`
		ImageURL string `xml:"image_url"`
	} `xml:"best_book"`
}
