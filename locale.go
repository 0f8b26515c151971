package recipex

import "sort"

// Locale is the language-dependent vocabulary shared by every site
// written in that language.
type Locale struct {
	Code            string
	Units           []string
	Fillers         []string
	Descriptors     []string
	TrailingClauses []string
	// IngredientHeadings and InstructionHeadings are section titles used
	// to find lists when a page carries no structured data.
	IngredientHeadings  []string
	InstructionHeadings []string
	Duration            DurationWords
	// NameFirst is set for languages that write the quantity last.
	NameFirst bool
	// MinNameLength overrides DefaultMinNameLength for scripts where a
	// single character is a whole word.
	MinNameLength int
	// Joiners are words that join a whole number to a fraction ("1と½").
	Joiners []string
}

// LookupLocale returns the built-in locale for a language code.
func LookupLocale(code string) (Locale, bool) {
	l, ok := locales[code]
	return l, ok
}

// LocaleCodes returns the codes of all built-in locales, sorted.
func LocaleCodes() []string {
	codes := make([]string, 0, len(locales))
	for c := range locales {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

var metricUnits = []string{"g", "gr", "kg", "mg", "ml", "cl", "dl", "l"}

func withMetric(units ...string) []string {
	return append(append([]string{}, metricUnits...), units...)
}

var locales = map[string]Locale{
	"en": {
		Code: "en",
		Units: withMetric(
			"cups", "cup", "c", "tablespoons", "tablespoon", "tbsp", "tbsps", "tbs", "tbl",
			"teaspoons", "teaspoon", "tsp", "tsps", "ounces", "ounce", "oz", "fl oz",
			"pounds", "pound", "lb", "lbs", "grams", "gram", "kilograms", "kilogram",
			"milliliters", "milliliter", "millilitres", "millilitre", "liters", "liter",
			"litres", "litre", "quarts", "quart", "qt", "pints", "pint", "pt", "gallons",
			"gallon", "pinches", "pinch", "dashes", "dash", "cloves", "clove", "cans", "can",
			"packages", "package", "pkg", "sticks", "stick", "slices", "slice", "pieces",
			"piece", "handfuls", "handful", "bunches", "bunch", "sprigs", "sprig", "heads",
			"head", "stalks", "stalk", "drops", "drop", "jars", "jar", "inches", "inch",
		),
		Fillers: []string{
			"to taste", "as needed", "or more", "if needed", "optional", "for garnish",
			"for serving", "for topping", "for sprinkling", "for dusting", "divided",
		},
		Descriptors: []string{"lukewarm", "of"},
		TrailingClauses: []string{
			"warm", "at room temperature", "room temperature", "drained", "grated",
			"sliced", "chopped", "minced", "crushed", "fresh or frozen", "lukewarm",
			"sifted", "softened", "melted", "diced", "peeled", "beaten", "divided",
			"finely chopped", "roughly chopped", "thinly sliced",
		},
		IngredientHeadings:  []string{"Ingredients"},
		InstructionHeadings: []string{"Instructions", "Directions", "Method", "Preparation"},
		Duration:            EnglishDurationWords,
	},
	"it": {
		Code: "it",
		Units: withMetric(
			"cucchiai", "cucchiaio", "cucchiaini", "cucchiaino", "bicchieri", "bicchiere",
			"tazze", "tazza", "pizzichi", "pizzico", "spicchi", "spicchio", "fette", "fetta",
			"foglie", "foglia", "rametti", "rametto", "bustine", "bustina", "mazzetto",
			"pezzi", "pezzo", "vasetti", "vasetto", "noce", "q.b.", "qb",
		),
		Fillers:             []string{"quanto basta", "a piacere", "facoltativo", "opzionale", "per guarnire"},
		Descriptors:         []string{"di"},
		TrailingClauses:     []string{"tritato", "tritata", "grattugiato", "grattugiata", "a temperatura ambiente", "tiepida", "tiepido"},
		IngredientHeadings:  []string{"Ingredienti"},
		InstructionHeadings: []string{"Preparazione", "Procedimento"},
		Duration:            DurationWords{Hour: "ora", Hours: "ore", Minute: "minuto", Minutes: "minuti"},
	},
	"de": {
		Code: "de",
		Units: withMetric(
			"EL", "Esslöffel", "TL", "Teelöffel", "Tasse", "Tassen", "Prise", "Prisen",
			"Päckchen", "Pck.", "Pkg.", "Stück", "Stk.", "Bund", "Zehe", "Zehen", "Scheibe",
			"Scheiben", "Becher", "Dose", "Dosen", "Msp.", "Handvoll", "Zweig", "Zweige",
		),
		Fillers:             []string{"nach Geschmack", "nach Belieben", "optional", "zum Garnieren", "etwas"},
		TrailingClauses:     []string{"gehackt", "gerieben", "geschmolzen", "zimmerwarm", "weich", "gewürfelt"},
		IngredientHeadings:  []string{"Zutaten"},
		InstructionHeadings: []string{"Zubereitung", "Anleitung"},
		Duration:            DurationWords{Hour: "Stunde", Hours: "Stunden", Minute: "Minute", Minutes: "Minuten"},
	},
	"fr": {
		Code: "fr",
		Units: withMetric(
			"cuillères à soupe", "cuillère à soupe", "c. à soupe", "càs", "cs",
			"cuillères à café", "cuillère à café", "c. à café", "càc", "cc", "tasses",
			"tasse", "pincées", "pincée", "gousses", "gousse", "tranches", "tranche",
			"sachets", "sachet", "brins", "brin", "feuilles", "feuille", "verres", "verre",
		),
		Fillers:             []string{"au goût", "selon le goût", "facultatif", "pour servir", "pour décorer"},
		Descriptors:         []string{"de", "d'"},
		TrailingClauses:     []string{"haché", "hachée", "râpé", "râpée", "fondu", "fondue", "ramolli", "coupé en dés"},
		IngredientHeadings:  []string{"Ingrédients"},
		InstructionHeadings: []string{"Préparation", "Instructions", "Étapes"},
		Duration:            DurationWords{Hour: "heure", Hours: "heures", Minute: "minute", Minutes: "minutes"},
	},
	"es": {
		Code: "es",
		Units: withMetric(
			"cucharadas", "cucharada", "cucharaditas", "cucharadita", "tazas", "taza",
			"pizcas", "pizca", "dientes", "diente", "rebanadas", "rebanada", "latas", "lata",
			"ramitas", "ramita", "hojas", "hoja", "sobres", "sobre",
		),
		Fillers:             []string{"al gusto", "a gusto", "opcional", "para decorar", "para servir"},
		Descriptors:         []string{"de"},
		TrailingClauses:     []string{"picado", "picada", "rallado", "rallada", "derretida", "derretido", "en cubos"},
		IngredientHeadings:  []string{"Ingredientes"},
		InstructionHeadings: []string{"Preparación", "Instrucciones", "Elaboración"},
		Duration:            DurationWords{Hour: "hora", Hours: "horas", Minute: "minuto", Minutes: "minutos"},
	},
	"pt": {
		Code: "pt",
		Units: withMetric(
			"colheres de sopa", "colher de sopa", "colheres de chá", "colher de chá",
			"xícaras", "xícara", "chávenas", "chávena", "pitadas", "pitada", "dentes",
			"dente", "fatias", "fatia", "latas", "lata", "ramos", "ramo",
		),
		Fillers:             []string{"a gosto", "q.b.", "opcional", "para decorar"},
		Descriptors:         []string{"de"},
		TrailingClauses:     []string{"picado", "picada", "ralado", "ralada", "derretida", "derretido"},
		IngredientHeadings:  []string{"Ingredientes"},
		InstructionHeadings: []string{"Modo de preparo", "Preparação", "Modo de preparação"},
		Duration:            DurationWords{Hour: "hora", Hours: "horas", Minute: "minuto", Minutes: "minutos"},
	},
	"nl": {
		Code: "nl",
		Units: withMetric(
			"eetlepels", "eetlepel", "el", "theelepels", "theelepel", "tl", "kopjes", "kopje",
			"snufje", "snuf", "teentjes", "teentje", "plakjes", "plakje", "takjes", "takje",
			"blikjes", "blikje", "zakjes", "zakje",
		),
		Fillers:             []string{"naar smaak", "optioneel", "om te garneren"},
		TrailingClauses:     []string{"gehakt", "geraspt", "gesmolten", "in blokjes"},
		IngredientHeadings:  []string{"Ingrediënten"},
		InstructionHeadings: []string{"Bereiding", "Bereidingswijze"},
		Duration:            DurationWords{Hour: "uur", Hours: "uur", Minute: "minuut", Minutes: "minuten"},
	},
	"lt": {
		Code: "lt",
		Units: withMetric(
			"šaukštai", "šaukšto", "šaukštas", "š.", "šaukšteliai", "šaukštelio",
			"šaukštelis", "arb. š.", "valg. š.", "stiklinės", "stiklinė", "stiklinių",
			"žiupsnelis", "žiupsnelio", "skiltelės", "skiltelė", "vnt.", "vnt",
			"puodelis", "puodelio", "pakelis", "pakelio", "riekė", "riekės",
		),
		Fillers:             []string{"pagal skonį", "nebūtina", "papuošimui"},
		TrailingClauses:     []string{"smulkintas", "smulkinta", "tarkuotas", "tarkuota", "ištirpintas"},
		IngredientHeadings:  []string{"Ingredientai", "Reikės", "Produktai"},
		InstructionHeadings: []string{"Gaminimo eiga", "Paruošimas", "Gamyba"},
		Duration:            DurationWords{Hour: "valanda", Hours: "valandos", Minute: "minutė", Minutes: "minutės"},
	},
	"el": {
		Code: "el",
		Units: withMetric(
			"γρ.", "γρ", "κιλό", "κιλά", "λίτρο", "λίτρα", "κουταλιές της σούπας",
			"κουταλιά της σούπας", "κ.σ.", "κουταλάκια του γλυκού", "κουταλάκι του γλυκού",
			"κ.γ.", "φλιτζάνια", "φλιτζάνι", "πρέζα", "σκελίδες", "σκελίδα", "φέτες", "φέτα",
			"ματσάκι", "κομμάτια", "κομμάτι", "τεμάχια", "τεμάχιο",
		),
		Fillers:             []string{"κατά βούληση", "προαιρετικά", "για το σερβίρισμα", "για γαρνίρισμα"},
		TrailingClauses:     []string{"ψιλοκομμένο", "ψιλοκομμένα", "τριμμένο", "τριμμένη", "λιωμένο"},
		IngredientHeadings:  []string{"Υλικά", "Συστατικά"},
		InstructionHeadings: []string{"Εκτέλεση", "Οδηγίες", "Διαδικασία"},
		Duration:            DurationWords{Hour: "ώρα", Hours: "ώρες", Minute: "λεπτό", Minutes: "λεπτά"},
	},
	"ja": {
		Code: "ja",
		Units: withMetric(
			"大さじ", "小さじ", "カップ", "cc", "個", "本", "枚", "片", "かけ", "束", "袋",
			"缶", "切れ", "株", "玉", "適量", "少々",
		),
		Fillers:             []string{"適量", "少々", "お好みで", "適宜"},
		IngredientHeadings:  []string{"材料"},
		InstructionHeadings: []string{"作り方", "手順"},
		Duration:            DurationWords{Hour: "時間", Minute: "分"},
		NameFirst:           true,
		MinNameLength:       1,
		Joiners:             []string{"と"},
	},
	"ko": {
		Code: "ko",
		Units: withMetric(
			"큰술", "작은술", "컵", "개", "장", "쪽", "줌", "봉지", "마리", "모", "T", "t",
		),
		Fillers:             []string{"약간", "적당량", "기호에 따라", "선택"},
		IngredientHeadings:  []string{"재료"},
		InstructionHeadings: []string{"만드는 법", "조리법", "조리 순서"},
		Duration:            DurationWords{Hour: "시간", Minute: "분"},
		NameFirst:           true,
		MinNameLength:       1,
	},
	"da": {
		Code: "da",
		Units: withMetric(
			"spsk.", "spsk", "tsk.", "tsk", "dl", "knivspids", "fed", "fed.", "stk.", "stk",
			"skiver", "skive", "dåse", "dåser", "bundt", "pakke", "håndfuld",
		),
		Fillers:             []string{"efter smag", "evt.", "eventuelt", "til pynt", "til servering"},
		TrailingClauses:     []string{"hakket", "revet", "smeltet", "stuetempereret", "i tern"},
		IngredientHeadings:  []string{"Ingredienser"},
		InstructionHeadings: []string{"Fremgangsmåde", "Sådan gør du", "Opskrift"},
		Duration:            DurationWords{Hour: "time", Hours: "timer", Minute: "minut", Minutes: "minutter"},
	},
	"sv": {
		Code: "sv",
		Units: withMetric(
			"msk", "tsk", "krm", "dl", "st", "st.", "klyftor", "klyfta", "nypa", "skivor",
			"skiva", "burk", "paket", "knippe", "kvist", "kvistar",
		),
		Fillers:             []string{"efter smak", "valfritt", "till servering", "till garnering"},
		TrailingClauses:     []string{"hackad", "hackade", "riven", "rivet", "smält", "rumstempererat"},
		IngredientHeadings:  []string{"Ingredienser"},
		InstructionHeadings: []string{"Gör så här", "Instruktioner", "Tillagning"},
		Duration:            DurationWords{Hour: "timme", Hours: "timmar", Minute: "minut", Minutes: "minuter"},
	},
	"no": {
		Code: "no",
		Units: withMetric(
			"ss", "ts", "dl", "stk", "stk.", "fedd", "klype", "skiver", "skive", "boks",
			"pakke", "bunt", "never",
		),
		Fillers:             []string{"etter smak", "valgfritt", "til servering", "til pynt"},
		TrailingClauses:     []string{"hakket", "revet", "smeltet", "i terninger"},
		IngredientHeadings:  []string{"Ingredienser"},
		InstructionHeadings: []string{"Fremgangsmåte", "Slik gjør du"},
		Duration:            DurationWords{Hour: "time", Hours: "timer", Minute: "minutt", Minutes: "minutter"},
	},
	"sr": {
		Code: "sr",
		Units: withMetric(
			"kašike", "kašika", "kašičice", "kašičica", "šolje", "šolja", "prstohvat",
			"čen", "čena", "kom", "kom.", "komada", "komad", "kesica", "kesice", "glavica",
			"кашике", "кашика", "кашичице", "кашичица", "шоље", "шоља", "прстохват", "ком",
		),
		Fillers:             []string{"po ukusu", "po želji", "по укусу", "по жељи"},
		TrailingClauses:     []string{"sitno seckan", "seckan", "rendan", "otopljen"},
		IngredientHeadings:  []string{"Sastojci", "Састојци"},
		InstructionHeadings: []string{"Priprema", "Način pripreme", "Припрема"},
		Duration:            DurationWords{Hour: "sat", Hours: "sati", Minute: "minut", Minutes: "minuta"},
	},
	"hr": {
		Code: "hr",
		Units: withMetric(
			"žlice", "žlica", "žličice", "žličica", "šalice", "šalica", "prstohvat", "češnja",
			"češnjeva", "kom", "komada", "vrećica", "glavica",
		),
		Fillers:             []string{"po ukusu", "po želji", "za posluživanje"},
		TrailingClauses:     []string{"sitno nasjeckan", "nasjeckan", "naribani", "otopljeni"},
		IngredientHeadings:  []string{"Sastojci"},
		InstructionHeadings: []string{"Priprema", "Postupak"},
		Duration:            DurationWords{Hour: "sat", Hours: "sati", Minute: "minuta", Minutes: "minuta"},
	},
	"tl": {
		Code: "tl",
		Units: withMetric(
			"tasa", "kutsara", "kutsarita", "tbsp", "tsp", "cups", "cup", "piraso", "butil",
			"ulo", "dahon", "lata", "pakete", "tali", "lbs", "lb",
		),
		Fillers:             []string{"ayon sa panlasa", "to taste", "opsyonal"},
		Descriptors:         []string{"ng"},
		TrailingClauses:     []string{"hiniwa", "tinadtad", "dinikdik", "chopped", "minced", "sliced"},
		IngredientHeadings:  []string{"Mga Sangkap", "Sangkap", "Ingredients"},
		InstructionHeadings: []string{"Paraan ng Pagluluto", "Paraan", "Instructions"},
		Duration:            DurationWords{Hour: "oras", Minute: "minuto"},
	},
	"uk": {
		Code: "uk",
		Units: withMetric(
			"г", "гр", "кг", "мл", "л", "ст. л.", "ст.л.", "ч. л.", "ч.л.", "склянки", "склянка",
			"дрібка", "зубчики", "зубчик", "шт.", "шт", "скибочки", "пучок", "пачка",
		),
		Fillers:             []string{"за смаком", "за бажанням", "для подачі"},
		TrailingClauses:     []string{"подрібнений", "тертий", "розтоплене"},
		IngredientHeadings:  []string{"Інгредієнти", "Складники"},
		InstructionHeadings: []string{"Приготування", "Спосіб приготування"},
		Duration:            DurationWords{Hour: "година", Hours: "години", Minute: "хвилина", Minutes: "хвилин"},
	},
	"ru": {
		Code: "ru",
		Units: withMetric(
			"г", "гр", "кг", "мл", "л", "ст. л.", "ст.л.", "ч. л.", "ч.л.", "стакана", "стакан",
			"щепотка", "зубчика", "зубчик", "шт.", "шт", "ломтика", "пучок", "пачка",
		),
		Fillers:             []string{"по вкусу", "по желанию", "для подачи"},
		TrailingClauses:     []string{"измельченный", "тертый", "растопленное"},
		IngredientHeadings:  []string{"Ингредиенты"},
		InstructionHeadings: []string{"Приготовление", "Способ приготовления"},
		Duration:            DurationWords{Hour: "час", Hours: "часа", Minute: "минута", Minutes: "минут"},
	},
	"pl": {
		Code: "pl",
		Units: withMetric(
			"łyżki", "łyżka", "łyżek", "łyżeczki", "łyżeczka", "szklanki", "szklanka",
			"szczypta", "ząbki", "ząbek", "szt.", "szt", "plasterki", "opakowanie", "pęczek",
		),
		Fillers:             []string{"do smaku", "opcjonalnie", "do podania"},
		TrailingClauses:     []string{"posiekany", "starty", "roztopione"},
		IngredientHeadings:  []string{"Składniki"},
		InstructionHeadings: []string{"Przygotowanie", "Sposób przygotowania"},
		Duration:            DurationWords{Hour: "godzina", Hours: "godziny", Minute: "minuta", Minutes: "minut"},
	},
}
