package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func TestTone_KeywordHit(t *testing.T) {
	tg := Default()

	tags := tg.Tone("a deeply Humorous tale")
	assert.Contains(t, tags, "Humorous")
}

func TestTone_MultipleTagsFire(t *testing.T) {
	tg := Default()

	tags := tg.Tone("a dark and humorous romance")
	assert.Contains(t, tags, "Dark")
	assert.Contains(t, tags, "Humorous")
	assert.Contains(t, tags, "Romantic")
}

func TestTone_EmptyText(t *testing.T) {
	tg := Default()
	assert.Empty(t, tg.Tone(""))
}

func TestTone_CustomVocabulary(t *testing.T) {
	tg := New(Vocabulary{
		Tones: []KeywordRule{
			{Tag: "Cozy", Keywords: []string{"fireplace", "tea"}},
		},
	})

	assert.Equal(t, []string{"Cozy"}, tg.Tone("a cup of tea by the window"))
	assert.Empty(t, tg.Tone("a stormy sea voyage"))
}

func TestThemes_SubjectHeads(t *testing.T) {
	tg := Default()

	themes := tg.Themes([]string{
		"Fiction -- Mystery -- Historical",
		"Science / Physics",
		"  Philosophy  ",
	}, "")

	assert.Equal(t, []string{"Fiction", "Science", "Philosophy"}, themes)
}

func TestThemes_TextVocabularyUnion(t *testing.T) {
	tg := Default()

	themes := tg.Themes([]string{"Fiction -- Crime"}, "a story of justice and betrayal")
	assert.Contains(t, themes, "Fiction")
	assert.Contains(t, themes, "Justice")
	assert.Contains(t, themes, "Betrayal")
}

func TestThemes_Dedup(t *testing.T) {
	tg := Default()

	themes := tg.Themes([]string{"Justice -- History", "Justice / Law"}, "justice for all")
	count := 0
	for _, theme := range themes {
		if theme == "Justice" {
			count++
		}
	}
	assert.Equal(t, 1, count, "Justice must appear exactly once")
}

func TestPace_Thresholds(t *testing.T) {
	tg := Default()

	tests := []struct {
		pages int
		want  domain.Pace
	}{
		{1, domain.PaceFast},
		{299, domain.PaceFast},
		{300, domain.PaceModerate},
		{599, domain.PaceModerate},
		{600, domain.PaceSlow},
		{1200, domain.PaceSlow},
		{0, domain.PaceModerate},  // unknown
		{-5, domain.PaceModerate}, // unknown
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tg.Pace(tt.pages), "pages=%d", tt.pages)
	}
}

func TestProfessions_SingleKeywordQualifiesBucket(t *testing.T) {
	tg := Default()

	professions := tg.Professions("the young surgeon hesitated", nil)
	assert.Equal(t, []string{"Doctors"}, professions)
}

func TestProfessions_SubjectMap(t *testing.T) {
	tg := Default()

	professions := tg.Professions("", []string{"Medicine -- History", "Law"})
	assert.Contains(t, professions, "Doctors")
	assert.Contains(t, professions, "Lawyers")
}

func TestProfessions_Dedup(t *testing.T) {
	tg := Default()

	// Text hit and subject hit for the same bucket must collapse.
	professions := tg.Professions("a hospital drama", []string{"Medicine"})
	assert.Equal(t, []string{"Doctors"}, professions)
}

func TestBestFor(t *testing.T) {
	tg := Default()

	assert.Contains(t, tg.BestFor([]string{"Juvenile fiction"}, 0, ""), AudienceChildren)
	assert.Contains(t, tg.BestFor([]string{"Young Adult fantasy"}, 0, ""), AudienceYoungAdults)
	assert.Contains(t, tg.BestFor(nil, 150, ""), AudienceCasual)
	assert.Contains(t, tg.BestFor(nil, 700, ""), AudienceAvid)
	assert.Empty(t, tg.BestFor(nil, 0, ""))
}

// Scenario from the recommendation pipeline: a short Victorian mystery.
func TestTag_VictorianMystery(t *testing.T) {
	tg := Default()

	desc := "A dark and suspenseful mystery set in Victorian London, exploring themes of Justice and Identity"
	res := tg.Tag(desc, nil, 250)

	assert.Subset(t, res.Tone, []string{"Dark", "Suspenseful", "Mysterious"})
	assert.Subset(t, res.Themes, []string{"Justice", "Identity", "Mystery"})
	assert.Equal(t, domain.PaceFast, res.Pace)
}

func TestTag_EmptyInputs(t *testing.T) {
	tg := Default()

	res := tg.Tag("", nil, 0)
	assert.Empty(t, res.Tone)
	assert.Empty(t, res.Themes)
	assert.Empty(t, res.Professions)
	assert.Empty(t, res.BestFor)
	assert.Equal(t, domain.PaceModerate, res.Pace)
}
