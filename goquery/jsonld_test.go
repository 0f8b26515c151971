package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func ldPage(scripts ...string) string {
	var b strings.Builder
	b.WriteString("<html><head>")
	for _, s := range scripts {
		b.WriteString(`<script type="application/ld+json">`)
		b.WriteString(s)
		b.WriteString("</script>")
	}
	b.WriteString("</head><body></body></html>")
	return b.String()
}

func TestRepairJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a": [1, 2]}`, goquery.RepairJSON(`{"a": [1, 2,]}`))
	assert.Equal(t, `{"a": 1 }`, goquery.RepairJSON(`{"a": 1, }`))
	assert.Equal(t, `{"a": "x,y"}`, goquery.RepairJSON(`{"a": "x,y"}`))
}

func TestFindRecipeBlock(t *testing.T) {
	t.Parallel()

	t.Run("finds recipe inside graph", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`{"@context":"https://schema.org","@graph":[{"@type":"WebPage","name":"page"},{"@type":"Recipe","name":"Soup"}]}`))

		b := goquery.FindRecipeBlock(doc, []string{"Recipe"}, false)

		require.NotNil(t, b)
		assert.Equal(t, "Soup", b.String("name"))
	})

	t.Run("matches list typed block", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`{"@type":["Recipe","NewsArticle"],"name":"Stew"}`))

		b := goquery.FindRecipeBlock(doc, []string{"Recipe"}, false)

		require.NotNil(t, b)
		assert.Equal(t, "Stew", b.String("name"))
	})

	t.Run("searches top level list", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`[{"@type":"Organization"},{"@type":"Recipe","name":"Pie"}]`))

		b := goquery.FindRecipeBlock(doc, []string{"Recipe"}, false)

		require.NotNil(t, b)
		assert.Equal(t, "Pie", b.String("name"))
	})

	t.Run("skips undecodable scripts and keeps document order", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(
			`{"@type":"Recipe",,}`,
			`{"@type":"Recipe","name":"First"}`,
			`{"@type":"Recipe","name":"Second"}`,
		))

		b := goquery.FindRecipeBlock(doc, []string{"Recipe"}, false)

		require.NotNil(t, b)
		assert.Equal(t, "First", b.String("name"))
	})

	t.Run("trailing comma needs lenient mode", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`{"@type":"Recipe","name":"Cake","recipeIngredient":["flour","sugar",],}`))

		assert.Nil(t, goquery.FindRecipeBlock(doc, []string{"Recipe"}, false))

		b := goquery.FindRecipeBlock(doc, []string{"Recipe"}, true)
		require.NotNil(t, b)
		assert.Equal(t, []string{"flour", "sugar"}, b.Strings("recipeIngredient"))
	})

	t.Run("honors configured types", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`{"@type":"HowTo","name":"Bread"}`))

		assert.Nil(t, goquery.FindRecipeBlock(doc, []string{"Recipe"}, false))
		b := goquery.FindRecipeBlock(doc, []string{"Recipe", "HowTo"}, false)
		require.NotNil(t, b)
		assert.Equal(t, "Bread", b.String("name"))
	})

	t.Run("does not follow mainEntity", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, ldPage(`{"@type":"WebPage","mainEntity":{"@type":"Recipe","name":"Hidden"}}`))

		assert.Nil(t, goquery.FindRecipeBlock(doc, []string{"Recipe"}, false))
	})

	t.Run("returns nil without scripts", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, "<html><body><p>hi</p></body></html>")

		assert.Nil(t, goquery.FindRecipeBlock(doc, []string{"Recipe"}, false))
	})
}
