package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func TestResolvePace(t *testing.T) {
	tests := []struct {
		query string
		want  domain.Pace
	}{
		{"deep dive", domain.PaceSlow},
		{"academic", domain.PaceSlow},
		{"slow burn", domain.PaceSlow},
		{"quick read", domain.PaceFast},
		{"something quick", domain.PaceFast},
		{"average", domain.PaceModerate},
		{"Fast", domain.PaceFast},
		{"SLOW", domain.PaceSlow},
		{"moderate", domain.PaceModerate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvePace(tt.query), tt.query)
	}
}

func TestResolvePaceUnrecognizedPassesThrough(t *testing.T) {
	got := ResolvePace("meandering")
	assert.Equal(t, domain.Pace("meandering"), got)
	assert.False(t, got.Valid())
}
