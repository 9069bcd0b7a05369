package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
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
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("printType", "books")

	body, err := c.doGet(ctx, c.baseURL+"/volumes", params)
	if err != nil {
		return nil, catalog.WrapError(providerName, "search", err)
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, catalog.WrapError(providerName, "search", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	results := make([]catalog.Book, 0, len(resp.Items))
	for i := range resp.Items {
		info := &resp.Items[i].VolumeInfo

		if info.Title == "" || len(info.Authors) == 0 {
			c.logger.Debug("skipping malformed volume", "provider", providerName, "id", resp.Items[i].ID)
			continue
		}

		book := c.normalize(info)

		if !catalog.NarrowFacets(&book, query, searchType) {
			continue
		}
		results = append(results, book)
	}

	return results, nil
}

func (c *Client) normalize(info *volumeInfo) catalog.Book {
	book := catalog.Book{
		Title:         info.Title,
		Author:        info.Authors[0],
		PublishedYear: publishedYear(info.PublishedDate),
		CoverURL:      coverURL(info.ImageLinks),
		Rating:        info.AverageRating,
		PageCount:     info.PageCount,
		Description:   catalog.NormalizeText(info.Description),
		Subjects:      info.Categories,
		Source:        providerName,
	}

	for _, ident := range info.IndustryIdentifiers {
		if ident.Type == "ISBN_13" {
			book.ISBN = ident.Identifier
			break
		}
		if ident.Type == "ISBN_10" && book.ISBN == "" {
			book.ISBN = ident.Identifier
		}
	}

	res := c.tagger.Tag(book.Title+" "+book.Description, book.Subjects, book.PageCount)
	book.Tone = res.Tone
	book.Themes = res.Themes
	book.Professions = res.Professions
	book.BestFor = res.BestFor
	book.Pace = res.Pace

	return book
}

// publishedYear extracts the year from a date that may be "2004",
// "2004-03" or "2004-03-01".
func publishedYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// coverURL prefers the larger thumbnail and upgrades the scheme; the
// API still hands out http links.
func coverURL(links imageLinks) string {
	u := links.Thumbnail
	if u == "" {
		u = links.SmallThumbnail
	}
	return strings.Replace(u, "http://", "https://", 1)
}

// Raw API response types.

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	AverageRating       float64              `json:"averageRating"`
	ImageLinks          imageLinks           `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
