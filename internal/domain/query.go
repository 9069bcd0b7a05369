package domain

// SearchType selects which field(s) a search matches against.
type SearchType string

const (
	// SearchAll matches across title, author, theme, tone, and profession.
	SearchAll SearchType = "all"
	// SearchTitle matches the title field.
	SearchTitle SearchType = "title"
	// SearchAuthor matches the author field.
	SearchAuthor SearchType = "author"
	// SearchMood matches entries of the tone set.
	SearchMood SearchType = "mood"
	// SearchTone is an alias for SearchMood.
	SearchTone SearchType = "tone"
	// SearchTheme matches entries of the theme set.
	SearchTheme SearchType = "theme"
	// SearchProfession matches entries of the profession set bidirectionally.
	SearchProfession SearchType = "profession"
	// SearchPace matches the pace enum after synonym rewriting.
	SearchPace SearchType = "pace"
	// SearchReadingStyle is an alias for SearchPace.
	SearchReadingStyle SearchType = "readingStyle"
)

// ParseSearchType normalizes a raw discriminator string. Unknown or
// empty values fall back to SearchAll.
func ParseSearchType(s string) SearchType {
	switch SearchType(s) {
	case SearchTitle:
		return SearchTitle
	case SearchAuthor:
		return SearchAuthor
	case SearchMood, SearchTone:
		return SearchMood
	case SearchTheme:
		return SearchTheme
	case SearchProfession:
		return SearchProfession
	case SearchPace, SearchReadingStyle:
		return SearchPace
	default:
		return SearchAll
	}
}

// CatalogQuery is the ephemeral value describing one search request.
// It is never persisted.
type CatalogQuery struct {
	Query string
	Type  SearchType
	// Limit caps the result count after filtering. Zero means no cap.
	Limit int
}
