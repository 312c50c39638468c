package provider

// Analysis is the structured, already-validated result of one external-model
// word analysis. It is a closed shape: nothing loosely typed crosses this
// boundary: a response that cannot be decoded into it is an error, never a
// partially-filled Analysis.
type Analysis struct {
	// IsValid reports whether the model considers the query a real word in
	// the target language.
	IsValid bool
	// EchoedInput is the word the model claims it analyzed. The gateway
	// compares it against the original query before trusting anything else.
	EchoedInput string

	Lemma        string
	PartOfSpeech string
	Gender       string
	Feature      string
	Translations []TranslationResult
	Inflections  []InflectionResult
	Example      *ExampleResult
	Suggestions  []SuggestionResult
}

// TranslationResult is one language-tagged gloss from the model.
type TranslationResult struct {
	Lang string
	Text string
}

// InflectionResult is one surface form with its grammatical feature.
type InflectionResult struct {
	Form    string
	Feature string
}

// ExampleResult is a usage sentence with parallel renderings.
type ExampleResult struct {
	Sentence      string
	TranslationEN string
	TranslationRU string
}

// SuggestionResult is one alternative word the model proposes, with its
// claimed meaning.
type SuggestionResult struct {
	Word    string
	Meaning string
}
