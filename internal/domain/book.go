package domain

import "strings"

// Pace describes how quickly a book reads, derived from page count.
type Pace string

const (
	// PaceFast is assigned to books under 300 pages.
	PaceFast Pace = "Fast"
	// PaceModerate is assigned to books between 300 and 599 pages,
	// and to books with an unknown page count.
	PaceModerate Pace = "Moderate"
	// PaceSlow is assigned to books of 600 pages or more.
	PaceSlow Pace = "Slow"
)

// Valid reports whether p is one of the three known pace values.
func (p Pace) Valid() bool {
	switch p {
	case PaceFast, PaceModerate, PaceSlow:
		return true
	}
	return false
}

// Book represents a book in the discovery catalog.
//
// Tone, Themes, BestFor, Categories, and Professions behave as sets:
// after tagging they contain no duplicate entries. IsExternal marks a
// transient record sourced from an external catalog provider that has
// not been persisted locally; it is never stored.
type Book struct {
	Entity
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ISBN          string   `json:"isbn,omitempty"`
	PublishedYear int      `json:"published_year,omitempty"`
	CoverImage    string   `json:"cover_image,omitempty"`
	CoverBlurHash string   `json:"cover_blur_hash,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Description   string   `json:"description,omitempty"`
	Pace          Pace     `json:"pace,omitempty"`
	Tone          []string `json:"tone,omitempty"`
	Themes        []string `json:"themes,omitempty"`
	BestFor       []string `json:"best_for,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Professions   []string `json:"professions,omitempty"`
	Source        string   `json:"source,omitempty"`
	IsExternal    bool     `json:"is_external,omitempty"`
}

// HasTag reports whether any entry of the given tag set contains the
// query or the query contains the entry, case-insensitively. This is
// the bidirectional substring check used by facet matching.
func HasTag(tags []string, query string) bool {
	q := strings.ToLower(query)
	for _, t := range tags {
		lt := strings.ToLower(t)
		if strings.Contains(lt, q) || strings.Contains(q, lt) {
			return true
		}
	}
	return false
}
