package search

import (
	"github.com/moodshelfapp/moodshelf-server/internal/domain"
	"github.com/moodshelfapp/moodshelf-server/internal/normalize"
)

// paceRule maps a human phrasing of reading style to a pace value.
type paceRule struct {
	Phrase string
	Pace   domain.Pace
}

// paceRules are evaluated top to bottom; the first phrase contained in
// the folded query wins. Order matters: "slow burn" must match before a
// bare "slow" lookalike would, so the more specific phrases come first.
var paceRules = []paceRule{
	{"deep dive", domain.PaceSlow},
	{"slow burn", domain.PaceSlow},
	{"quick read", domain.PaceFast},
	{"page-turner", domain.PaceFast},
	{"page turner", domain.PaceFast},
	{"academic", domain.PaceSlow},
	{"dense", domain.PaceSlow},
	{"epic", domain.PaceSlow},
	{"quick", domain.PaceFast},
	{"short", domain.PaceFast},
	{"breezy", domain.PaceFast},
	{"light", domain.PaceFast},
	{"average", domain.PaceModerate},
	{"medium", domain.PaceModerate},
	{"steady", domain.PaceModerate},
	{"balanced", domain.PaceModerate},
}

// ResolvePace rewrites a reading-style query to a pace value. Queries
// that already name a pace map to it; queries matching no rule pass
// through unchanged so the caller's equality check simply fails to
// match anything.
func ResolvePace(query string) domain.Pace {
	folded := normalize.Fold(query)

	switch folded {
	case "fast":
		return domain.PaceFast
	case "moderate":
		return domain.PaceModerate
	case "slow":
		return domain.PaceSlow
	}

	for _, rule := range paceRules {
		if normalize.ContainsFold(folded, rule.Phrase) {
			return rule.Pace
		}
	}

	return domain.Pace(query)
}
