package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenDescription_PlainString(t *testing.T) {
	assert.Equal(t, "A quiet story.", FlattenDescription("A quiet story."))
}

func TestFlattenDescription_RichTextObject(t *testing.T) {
	v := map[string]any{"type": "/type/text", "value": "From the archives."}
	assert.Equal(t, "From the archives.", FlattenDescription(v))
}

func TestFlattenDescription_UnknownShape(t *testing.T) {
	assert.Equal(t, "", FlattenDescription(nil))
	assert.Equal(t, "", FlattenDescription(42))
	assert.Equal(t, "", FlattenDescription(map[string]any{"other": true}))
}

func TestNormalizeText_StripsHTML(t *testing.T) {
	got := NormalizeText("<p>A <b>bold</b> beginning.</p><p>A second act.</p>")

	assert.NotContains(t, got, "<")
	assert.Contains(t, got, "A bold beginning.")
	assert.Contains(t, got, "A second act.")
}

func TestNormalizeText_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", NormalizeText("one\n  two\t\tthree "))
}

func TestNormalizeText_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeText(""))
}
