package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

// decodeAnalysis turns raw model output into a validated provider.Analysis.
// The decode is strict: missing required fields or enum values outside the
// schema reject the whole response as malformed (wrapped ErrTransient), so
// nothing loosely typed escapes this package.
func decodeAnalysis(raw string) (*provider.Analysis, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrTransient)
	}

	var api apiAnalysis
	dec := json.NewDecoder(strings.NewReader(jsonStr))
	if err := dec.Decode(&api); err != nil {
		return nil, fmt.Errorf("decode analysis json: %v: %w", err, domain.ErrTransient)
	}

	if err := validateAPIAnalysis(api); err != nil {
		return nil, fmt.Errorf("malformed analysis: %v: %w", err, domain.ErrTransient)
	}

	return mapAnalysis(api), nil
}

// validateAPIAnalysis enforces the schema contract on the decoded response.
func validateAPIAnalysis(api apiAnalysis) error {
	if api.EchoedInput == "" {
		return fmt.Errorf("echoed_input is empty")
	}

	if api.IsValid {
		if api.Lemma == "" {
			return fmt.Errorf("valid analysis without lemma")
		}
		if !domain.PartOfSpeech(api.POS).IsValid() {
			return fmt.Errorf("invalid pos %q", api.POS)
		}
		if api.Gender != "" && !domain.Gender(api.Gender).IsValid() {
			return fmt.Errorf("invalid gender %q", api.Gender)
		}
		if len(api.Translations) == 0 {
			return fmt.Errorf("valid analysis without translations")
		}
		for i, t := range api.Translations {
			if t.Lang == "" || t.Text == "" {
				return fmt.Errorf("translation %d incomplete", i)
			}
		}
		for i, f := range api.Inflections {
			if f.Form == "" || f.Feature == "" {
				return fmt.Errorf("inflection %d incomplete", i)
			}
		}
	}

	for i, s := range api.Suggestions {
		if s.Word == "" {
			return fmt.Errorf("suggestion %d has no word", i)
		}
	}

	return nil
}

func mapAnalysis(api apiAnalysis) *provider.Analysis {
	a := &provider.Analysis{
		IsValid:      api.IsValid,
		EchoedInput:  api.EchoedInput,
		Lemma:        api.Lemma,
		PartOfSpeech: api.POS,
		Gender:       api.Gender,
		Feature:      api.Feature,
	}

	for _, t := range api.Translations {
		a.Translations = append(a.Translations, provider.TranslationResult{Lang: t.Lang, Text: t.Text})
	}
	for _, f := range api.Inflections {
		a.Inflections = append(a.Inflections, provider.InflectionResult{Form: f.Form, Feature: f.Feature})
	}
	if api.Example != nil && api.Example.Sentence != "" {
		a.Example = &provider.ExampleResult{
			Sentence:      api.Example.Sentence,
			TranslationEN: api.Example.TranslationEN,
			TranslationRU: api.Example.TranslationRU,
		}
	}
	for _, s := range api.Suggestions {
		a.Suggestions = append(a.Suggestions, provider.SuggestionResult{Word: s.Word, Meaning: s.Meaning})
	}

	return a
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return out, nil
}
