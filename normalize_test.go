package recipex_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/recipex"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "  2 cups\n\t flour  ", "2 cups flour"},
		{"decodes entities", "salt &amp; pepper", "salt & pepper"},
		{"decodes double encoded entities", "salt &amp;amp; pepper", "salt & pepper"},
		{"strips checkbox glyphs", "▢ 1 cup sugar", "1 cup sugar"},
		{"strips bullets", "● eggs ✔", "eggs"},
		{"replaces non-breaking space", "200\u00a0g", "200 g"},
		{"drops zero width space", "fl\u200bour", "flour"},
		{"composes accents", "cre\u0300me", "cr\u00e8me"},
		{"keeps fraction glyphs", "½ cup milk", "½ cup milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, recipex.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"  hello   world ",
		"&amp;amp;lt;b&amp;gt;",
		"&#9634; 2 cups",
		"a\u200b&amp;\u00a0b",
		"Υλικά  για  τη  ζύμη",
		"材料\u3000（2人分）",
	}
	for _, in := range inputs {
		once := recipex.Normalize(in)
		assert.Equal(t, once, recipex.Normalize(once), "input %q", in)
	}
}

func TestNormalize_DeeplyEncodedEntities(t *testing.T) {
	t.Parallel()

	in := "salt &" + strings.Repeat("amp;", 24) + " pepper"

	got := recipex.Normalize(in)

	assert.Equal(t, "salt & pepper", got)
	assert.Equal(t, got, recipex.Normalize(got))
}

func TestNormalizePtr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, recipex.NormalizePtr(nil))

	blank := "   &nbsp; "
	assert.Nil(t, recipex.NormalizePtr(&blank))

	s := " Pasta  al  forno "
	got := recipex.NormalizePtr(&s)
	if assert.NotNil(t, got) {
		assert.Equal(t, "Pasta al forno", *got)
	}
}

func TestNormalizeTimeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "30 minutes", recipex.NormalizeTimeText("30minutes"))
	assert.Equal(t, "1 hr 20 mins", recipex.NormalizeTimeText(" 1hr 20mins "))
	assert.Equal(t, "45 λεπτά", recipex.NormalizeTimeText("45λεπτά"))
}
