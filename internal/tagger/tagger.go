// Package tagger classifies free text into tone, theme, pace, profession,
// and audience tags by case-insensitive substring matching against fixed
// keyword tables.
//
// The matching is intentionally naive: no stemming, no negation handling,
// no overlap resolution. Several tags firing on the same sentence is
// expected behavior. All functions are pure; absent input yields empty
// tag sets, never an error.
package tagger

import (
	"strings"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

// Audience labels emitted by BestFor.
const (
	AudienceChildren    = "Children"
	AudienceYoungAdults = "Young Adults"
	AudienceCasual      = "Casual Readers"
	AudienceAvid        = "Avid Readers"
)

// Page-count thresholds shared by Pace and BestFor.
const (
	fastMaxPages = 300
	slowMinPages = 600
)

// Result is the ephemeral enrichment output attached to a provider's raw
// record before it becomes a Book.
type Result struct {
	Tone        []string
	Themes      []string
	Professions []string
	BestFor     []string
	Pace        domain.Pace
}

// Tagger matches text against an injected Vocabulary.
type Tagger struct {
	vocab Vocabulary
}

// New creates a tagger with the given vocabulary.
func New(vocab Vocabulary) *Tagger {
	return &Tagger{vocab: vocab}
}

// Default creates a tagger with the production vocabulary.
func Default() *Tagger {
	return New(DefaultVocabulary())
}

// Tag runs every classifier over one record.
func (t *Tagger) Tag(text string, subjects []string, pageCount int) Result {
	return Result{
		Tone:        t.Tone(text),
		Themes:      t.Themes(subjects, text),
		Professions: t.Professions(text, subjects),
		BestFor:     t.BestFor(subjects, pageCount, text),
		Pace:        t.Pace(pageCount),
	}
}

// Tone returns every tone tag whose keywords appear in the text.
func (t *Tagger) Tone(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var tags []string
	for _, rule := range t.vocab.Tones {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.Tag)
				break
			}
		}
	}
	return tags
}

// Themes unions themes from two sources: the head segment of each
// hierarchical subject string (split on "--" or "/", trimmed), and
// substring hits of the theme vocabulary against the text. The result is
// deduplicated by case-sensitive exact string, insertion order kept.
func (t *Tagger) Themes(subjects []string, text string) []string {
	var themes []string
	seen := make(map[string]bool)

	add := func(theme string) {
		if theme == "" || seen[theme] {
			return
		}
		seen[theme] = true
		themes = append(themes, theme)
	}

	for _, subject := range subjects {
		add(subjectHead(subject))
	}

	if text != "" {
		lower := strings.ToLower(text)
		for _, theme := range t.vocab.Themes {
			if strings.Contains(lower, strings.ToLower(theme)) {
				add(theme)
			}
		}
	}

	return themes
}

// subjectHead returns the head segment of a hierarchical subject string.
// "Fiction -- Mystery -- Historical" and "Fiction / Mystery" both yield
// "Fiction".
func subjectHead(subject string) string {
	head := subject
	if i := strings.Index(head, "--"); i >= 0 {
		head = head[:i]
	}
	if i := strings.Index(head, "/"); i >= 0 {
		head = head[:i]
	}
	return strings.TrimSpace(head)
}

// Pace maps a page count to a reading pace. Unknown page counts
// (zero or negative) default to Moderate.
func (t *Tagger) Pace(pageCount int) domain.Pace {
	switch {
	case pageCount <= 0:
		return domain.PaceModerate
	case pageCount < fastMaxPages:
		return domain.PaceFast
	case pageCount < slowMinPages:
		return domain.PaceModerate
	default:
		return domain.PaceSlow
	}
}

// Professions returns every profession bucket with at least one keyword
// hit in the text, plus buckets mapped from the subjects. A single hit
// qualifies the whole bucket; there is no weighting. Deduplicated,
// insertion order kept.
func (t *Tagger) Professions(text string, subjects []string) []string {
	var professions []string
	seen := make(map[string]bool)

	add := func(bucket string) {
		if seen[bucket] {
			return
		}
		seen[bucket] = true
		professions = append(professions, bucket)
	}

	if text != "" {
		lower := strings.ToLower(text)
		for _, rule := range t.vocab.Professions {
			for _, kw := range rule.Keywords {
				if strings.Contains(lower, kw) {
					add(rule.Tag)
					break
				}
			}
		}
	}

	for _, subject := range subjects {
		lower := strings.ToLower(subject)
		for _, rule := range t.vocab.SubjectProfessions {
			for _, kw := range rule.Keywords {
				if strings.Contains(lower, kw) {
					add(rule.Tag)
					break
				}
			}
		}
	}

	return professions
}

// BestFor emits audience labels from subject substring checks and
// page-count thresholds. Each check is independent; the result is an
// order-insensitive union.
func (t *Tagger) BestFor(subjects []string, pageCount int, text string) []string {
	var audiences []string
	seen := make(map[string]bool)

	add := func(label string) {
		if seen[label] {
			return
		}
		seen[label] = true
		audiences = append(audiences, label)
	}

	if matchesAny(subjects, t.vocab.ChildrenSubjects) {
		add(AudienceChildren)
	}
	if matchesAny(subjects, t.vocab.YoungAdultSubjects) {
		add(AudienceYoungAdults)
	}
	if pageCount > 0 && pageCount < fastMaxPages {
		add(AudienceCasual)
	}
	if pageCount >= slowMinPages {
		add(AudienceAvid)
	}

	return audiences
}

// matchesAny reports whether any subject contains any needle,
// case-insensitively.
func matchesAny(subjects, needles []string) bool {
	for _, subject := range subjects {
		lower := strings.ToLower(subject)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return true
			}
		}
	}
	return false
}
