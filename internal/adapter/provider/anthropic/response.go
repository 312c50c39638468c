package anthropic

// apiAnalysis is the wire shape the model is instructed to produce.
type apiAnalysis struct {
	EchoedInput  string           `json:"echoed_input"`
	IsValid      bool             `json:"is_valid"`
	Lemma        string           `json:"lemma"`
	POS          string           `json:"pos"`
	Gender       string           `json:"gender"`
	Feature      string           `json:"feature"`
	Translations []apiTranslation `json:"translations"`
	Inflections  []apiInflection  `json:"inflections"`
	Example      *apiExample      `json:"example"`
	Suggestions  []apiSuggestion  `json:"suggestions"`
}

type apiTranslation struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type apiInflection struct {
	Form    string `json:"form"`
	Feature string `json:"feature"`
}

type apiExample struct {
	Sentence      string `json:"sentence"`
	TranslationEN string `json:"translation_en"`
	TranslationRU string `json:"translation_ru"`
}

type apiSuggestion struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}
