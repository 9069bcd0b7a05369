package catalog

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// Providers disagree about what a description is: Open Library returns
// either a plain string or a {"type", "value"} object, Goodreads and
// Google Books embed HTML. Everything is normalized here, at the adapter
// boundary, so no downstream consumer ever sees the ambiguity.

// htmlTagPattern detects common HTML tags in a description string.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// whitespacePattern collapses runs of whitespace.
var whitespacePattern = regexp.MustCompile(`\s+`)

// markdownMarkPattern removes emphasis markers left over from the
// HTML-to-Markdown conversion.
var markdownMarkPattern = regexp.MustCompile("[*_`#]+")

// FlattenDescription normalizes a provider description value into plain
// text. It accepts the shapes seen in the wild: a plain string, or a
// rich-text object decoded as map with a "value" field.
func FlattenDescription(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return NormalizeText(d)
	case map[string]any:
		if value, ok := d["value"].(string); ok {
			return NormalizeText(value)
		}
		return ""
	default:
		return ""
	}
}

// NormalizeText strips HTML markup from a description and collapses
// whitespace. Non-HTML input passes through with whitespace cleanup only.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	if containsHTML(s) {
		if md, err := htmltomarkdown.ConvertString(s); err == nil {
			s = markdownMarkPattern.ReplaceAllString(md, "")
		} else {
			s = stripHTML(s)
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// containsHTML checks if a string appears to contain HTML markup.
func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// stripHTML removes tags by walking the parsed node tree. Used as the
// fallback when Markdown conversion fails.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return html.UnescapeString(regexp.MustCompile(`<[^>]*>`).ReplaceAllString(s, " "))
	}

	var buf strings.Builder
	extractText(doc, &buf)
	return buf.String()
}

// extractText recursively extracts text content from HTML nodes,
// inserting spaces around block elements.
func extractText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}
}
