package storygraph

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

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
	params.Set("search_term", query)

	body, err := c.doGet(ctx, c.baseURL+"/search", params)
	if err != nil {
		return nil, catalog.WrapError(providerName, "search", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, catalog.WrapError(providerName, "search", fmt.Errorf("%w: %v", catalog.ErrMalformed, err))
	}

	panes := findPanes(doc)

	results := make([]catalog.Book, 0, len(panes))
	for _, pane := range panes {
		book, ok := c.extract(pane)
		if !ok {
			continue
		}

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

// findPanes collects every node whose class marks it as a result pane.
func findPanes(doc *html.Node) []*html.Node {
	var panes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "book-pane") {
			panes = append(panes, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return panes
}

// extract pulls title, author and cover out of one result pane. Panes
// missing either title or author are rejected.
func (c *Client) extract(pane *html.Node) (catalog.Book, bool) {
	var title, author, cover string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				href := attr(n, "href")
				switch {
				case strings.HasPrefix(href, "/books/") && title == "":
					title = nodeText(n)
				case strings.HasPrefix(href, "/authors/") && author == "":
					author = nodeText(n)
				}
			case "img":
				if cover == "" {
					cover = attr(n, "src")
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(pane)

	if title == "" || author == "" {
		c.logger.Debug("skipping malformed pane", "provider", providerName)
		return catalog.Book{}, false
	}

	book := catalog.Book{
		Title:    title,
		Author:   author,
		CoverURL: cover,
		Source:   providerName,
	}

	res := c.tagger.Tag(book.Title, nil, 0)
	book.Tone = res.Tone
	book.Themes = res.Themes
	book.Professions = res.Professions
	book.BestFor = res.BestFor
	book.Pace = res.Pace

	return book, true
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText flattens the text content below a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
