package yaml_test

import (
	"testing"
	"testing/fstest"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/goquery"
	"github.com/fwojciec/recipex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSites(t *testing.T) {
	t.Parallel()

	sites, err := yaml.DefaultSites()

	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(sites), 30)

	languages := map[string]bool{}
	registry := goquery.NewRegistry(nil)
	for _, s := range sites {
		languages[s.Language] = true
		require.NoError(t, registry.Register(s), s.ID)
		_, err := s.IngredientParser()
		require.NoError(t, err, s.ID)
	}
	for _, code := range recipex.LocaleCodes() {
		assert.True(t, languages[code], "no site for locale %s", code)
	}

	generic, err := registry.Site(recipex.GenericSiteID)
	require.NoError(t, err)
	assert.True(t, generic.Microdata)
}

func TestDefaultSites_ParseIngredients(t *testing.T) {
	t.Parallel()

	sites, err := yaml.DefaultSites()
	require.NoError(t, err)
	byID := make(map[string]*recipex.Site, len(sites))
	for _, s := range sites {
		byID[s.ID] = s
	}

	type want struct {
		line   string
		name   string
		amount string
		unit   string
	}
	tests := map[string][]want{
		"24kitchen":       {{"2 el olijfolie", "olijfolie", "2", "el"}},
		"akispetretzikis": {{"2 κ.σ. ελαιόλαδο", "ελαιόλαδο", "2", "κ.σ."}},
		"allrecipes":      {{"1 ½ cups all-purpose flour", "all-purpose flour", "1.5", "cups"}},
		"aniagotuje":      {{"2 łyżki masła", "masła", "2", "łyżki"}},
		"arla":            {{"2 spsk olivenolie", "olivenolie", "2", "spsk"}},
		"bakingsecrets":   {{"2 šaukštai cukraus", "cukraus", "2", "šaukštai"}},
		"bistrobadia":     {{"2 EL Olivenöl, kaltgepresst", "Olivenöl", "2", "EL"}},
		"bonviveur":       {{"2 cucharadas de aceite", "aceite", "2", "cucharadas"}},
		"chefkoch":        {{"1 Prise Salz", "Salz", "1", "Prise"}},
		"continente":      {{"2 colheres de sopa de azeite", "azeite", "2", "colheres de sopa"}},
		"cooktail":        {{"설탕 1큰술", "설탕", "1", "큰술"}},
		"cuisineaz":       {{"200 g de farine", "farine", "200", "g"}},
		"generic":         {{"2 cups milk", "milk", "2", "cups"}},
		"giallozafferano": {{"200 g di farina", "farina", "200", "g"}},
		"godematreisen":   {{"2 ss olivenolje", "olivenolje", "2", "ss"}},
		"ica":             {{"2 msk smör", "smör", "2", "msk"}},
		"koket":           {{"2 msk Smör", "smör", "2", "msk"}},
		"kurashiru": {
			{"卵 1個", "卵", "1", "個"},
			{"塩 適量", "塩", "", "適量"},
			{"水 200ml", "水", "200", "ml"},
			{"しょうゆ 大さじ1と½", "しょうゆ", "1.5", "大さじ"},
		},
		"kwestiasmaku":          {{"1 szklanka mleka", "mleka", "1", "szklanka"}},
		"lakirecepti":           {{"2 kašike ulja", "ulja", "2", "kašike"}},
		"lamaistas":             {{"2 vnt. kiaušiniai", "kiaušiniai", "2", "vnt."}},
		"lecturas":              {{"1 pizca de sal", "sal", "1", "pizca"}},
		"leukerecepten":         {{"1 teen knoflook, geperst", "knoflook", "1", "teen"}},
		"madreshoy":             {{"2 kutsara toyo", "toyo", "2", "kutsara"}},
		"misya":                 {{"sale q.b.", "sale", "", ""}, {"200 g di zucchero", "zucchero", "200", "g"}},
		"povarenok":             {{"2 ст. л. сахара", "сахара", "2", "ст. л."}},
		"ptitchef":              {{"2-4 tomates", "tomates", "3", ""}},
		"receptiindex":          {{"2 žlice ulja", "ulja", "2", "žlice"}},
		"recipetineats":         {{"1 ½ cups flour", "flour", "1 1/2", "cups"}},
		"sallysbakingaddiction": {{"2-3 cups flour", "flour", "3", "cups"}},
		"simplyrecipes":         {{"1 tablespoon olive oil", "olive oil", "1", "tablespoon"}},
		"sirogohan":             {{"卵 2個", "卵", "2", "個"}, {"砂糖 大さじ2", "砂糖", "2", "大さじ"}},
		"smachnoho":             {{"2 ст. л. цукру", "цукру", "2", "ст. л."}},
		"sweetandbitter":        {{"1 φλιτζάνι ζάχαρη", "ζάχαρη", "1", "φλιτζάνι"}},
		"tudoreceitas":          {{"2 xícaras de farinha", "farinha", "2", "xícaras"}},
	}

	for id := range byID {
		assert.Contains(t, tests, id, "no ingredient cases for site %s", id)
	}

	for id, cases := range tests {
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			site, ok := byID[id]
			require.True(t, ok, "unknown site %s", id)
			p, err := site.IngredientParser()
			require.NoError(t, err)

			for _, c := range cases {
				got := p.Parse(c.line)

				require.NotNil(t, got, c.line)
				assert.Equal(t, c.name, got.Name, c.line)
				assert.Equal(t, c.amount, got.Amount.String(), c.line)
				unit := ""
				if got.Unit != nil {
					unit = *got.Unit
				}
				assert.Equal(t, c.unit, unit, c.line)
			}
		})
	}
}

func TestLoadSites(t *testing.T) {
	t.Parallel()

	t.Run("decodes a full record", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"example.yaml": {Data: []byte(`
id: example
domain: example.com
language: it
base_url: https://example.com/
lenient_json: true
title_suffix: '\s*\|\s*Example$'
derive_total_time: true
duration:
  preset: locale-words
  fold_minutes: true
ingredients:
  units: [pizzico]
  ranges: max
  amounts: string
instructions:
  numbered: true
  separator: "\n"
fields:
  notes:
    - css: .notes
  image_urls:
    - xpath: //img[@class="hero"]
      attr: src
`)},
		}

		sites, err := yaml.LoadSites(fsys)

		require.NoError(t, err)
		require.Len(t, sites, 1)
		s := sites[0]
		assert.Equal(t, "example", s.ID)
		assert.Equal(t, "it", s.Language)
		assert.True(t, s.LenientJSON)
		assert.True(t, s.DeriveTotalTime)
		assert.Equal(t, recipex.PresetLocaleWords, s.Duration.Preset)
		assert.True(t, s.Duration.FoldMinutes)
		assert.Equal(t, []string{"pizzico"}, s.Ingredients.Units)
		assert.Equal(t, recipex.RangeMax, s.Ingredients.Ranges)
		assert.Equal(t, recipex.AmountString, s.Ingredients.Amounts)
		assert.Equal(t, recipex.InstructionFormat{Numbered: true, Separator: "\n"}, s.Instructions)
		assert.Equal(t, []recipex.Selector{{CSS: ".notes"}}, s.Fields[recipex.FieldNotes])
		assert.Equal(t, []recipex.Selector{{XPath: `//img[@class="hero"]`, Attr: "src"}}, s.Fields[recipex.FieldImageURLs])
	})

	t.Run("id defaults to file name", func(t *testing.T) {
		t.Parallel()

		sites, err := yaml.LoadSites(fstest.MapFS{"plain.yaml": {Data: []byte("language: en\n")}})

		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "plain", sites[0].ID)
	})

	t.Run("ignores other files", func(t *testing.T) {
		t.Parallel()

		sites, err := yaml.LoadSites(fstest.MapFS{"README.md": {Data: []byte("# sites")}})

		require.NoError(t, err)
		assert.Empty(t, sites)
	})

	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name:  "unknown key",
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: a\ncolour: red\n")}},
		},
		{
			name:  "unknown language",
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: a\nlanguage: xx\n")}},
		},
		{
			name:  "unknown preset",
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: a\nduration:\n  preset: fancy\n")}},
		},
		{
			name:  "unknown field",
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: a\nfields:\n  colour:\n    - css: p\n")}},
		},
		{
			name:  "empty selector",
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: a\nfields:\n  notes:\n    - attr: src\n")}},
		},
		{
			name: "duplicate id",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("id: same\n")},
				"b.yaml": {Data: []byte("id: same\n")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.LoadSites(tt.files)

			assert.Equal(t, recipex.EINVALID, recipex.ErrorCode(err))
		})
	}
}
