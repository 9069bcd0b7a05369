package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"  spaced   out  ", "spaced out"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("The Silent Patient", "silent"))
	assert.True(t, ContainsFold("STRASSE", "straße"))
	assert.False(t, ContainsFold("Dune", "messiah"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Dune  Messiah", "dune messiah"))
	assert.False(t, EqualFold("Dune", "Dune Messiah"))
}
