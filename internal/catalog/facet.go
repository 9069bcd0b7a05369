package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

var titleCaser = cases.Title(language.English)

// NarrowFacets adjusts a tagged result for a facet-qualified search and
// reports whether the result should be kept.
//
// For mood and theme searches the matching tag set is narrowed to entries
// matching the query (bidirectional substring); when nothing matches, a
// single tag is synthesized from the query term so the caller always
// receives at least one relevant tag. Profession searches are stricter:
// a result with no matching profession tag is dropped entirely. Every
// other search type leaves the result untouched.
//
// The profession asymmetry is deliberate and matched by tests; do not
// unify it with the permissive facets.
func NarrowFacets(b *Book, query string, searchType domain.SearchType) bool {
	switch searchType {
	case domain.SearchMood, domain.SearchTone:
		b.Tone = narrowOrSynthesize(b.Tone, query)
	case domain.SearchTheme:
		b.Themes = narrowOrSynthesize(b.Themes, query)
	case domain.SearchProfession:
		narrowed := narrow(b.Professions, query)
		if len(narrowed) == 0 {
			return false
		}
		b.Professions = narrowed
	}
	return true
}

// narrow keeps tags matching the query by bidirectional case-insensitive
// substring check.
func narrow(tags []string, query string) []string {
	q := strings.ToLower(query)

	var kept []string
	for _, tag := range tags {
		lt := strings.ToLower(tag)
		if strings.Contains(lt, q) || strings.Contains(q, lt) {
			kept = append(kept, tag)
		}
	}
	return kept
}

// narrowOrSynthesize narrows tags to the query; when no tag survives, it
// synthesizes one from the query term itself.
func narrowOrSynthesize(tags []string, query string) []string {
	if kept := narrow(tags, query); len(kept) > 0 {
		return kept
	}
	return []string{SynthesizeTag(query)}
}

// SynthesizeTag turns a raw query term into a presentable tag.
func SynthesizeTag(query string) string {
	return titleCaser.String(strings.TrimSpace(query))
}
