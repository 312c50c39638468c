// Package anthropic implements the generative-model analyzer capability on
// top of the Anthropic Messages API. The rest of the system treats it as a
// black box behind the Analyze method; prompt wording lives only here.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/wortlab/mygerman-backend/internal/domain"
	"github.com/wortlab/mygerman-backend/internal/provider"
)

// Client calls the Anthropic API to analyze a single word.
type Client struct {
	client sdk.Client
	model  string
	log    *slog.Logger
}

// NewClient creates an analyzer client for the given API key and model.
func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		log:    logger.With("adapter", "anthropic"),
	}
}

// Analyze asks the model for a full analysis of word. The request embeds the
// exact query and instructs the model to echo back the word it analyzed; the
// caller is responsible for verifying that echo. Timeouts, API failures, and
// malformed responses are returned wrapped in domain.ErrTransient so callers
// can retry, never as a not-found.
func (c *Client) Analyze(ctx context.Context, word string) (*provider.Analysis, error) {
	c.log.DebugContext(ctx, "analyze request", slog.String("word", word))

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: 2048,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(buildPrompt(word))),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "analyze request failed",
			slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("anthropic: analyze %q: %v: %w", word, err, domain.ErrTransient)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("anthropic: empty response for %q: %w", word, domain.ErrTransient)
	}

	analysis, err := decodeAnalysis(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %q: %w", word, err)
	}

	c.log.DebugContext(ctx, "analyze response",
		slog.String("word", word),
		slog.Bool("is_valid", analysis.IsValid),
		slog.String("echoed_input", analysis.EchoedInput),
		slog.Int("suggestions", len(analysis.Suggestions)),
	)

	return analysis, nil
}

// buildPrompt creates the analysis prompt for a single word. The echo
// requirement is the contract the gateway's validation depends on.
func buildPrompt(word string) string {
	return fmt.Sprintf(`You are a German lexicographer. Analyze exactly this input word: "%s"

CRITICAL: You must analyze the word exactly as given. Do NOT silently substitute
a corrected or normalized word. Always set "echoed_input" to the exact word you
actually analyzed. If the input looks misspelled, set "is_valid" to false and
put your corrections into "suggestions" instead.

Output ONLY a valid JSON object matching this exact schema:
{
  "echoed_input": "<the word you analyzed>",
  "is_valid": <true if it is a real German word>,
  "lemma": "<dictionary base form, empty if not valid>",
  "pos": "<NOUN|VERB|ADJECTIVE|ADVERB|PRONOUN|PREPOSITION|CONJUNCTION|INTERJECTION|NUMERAL|PARTICLE|OTHER>",
  "gender": "<MASCULINE|FEMININE|NEUTER or empty for non-nouns>",
  "feature": "<grammatical feature of the input if it is an inflected form, e.g. present_1st_sg, else empty>",
  "translations": [{"lang": "en", "text": "<English translation>"}, {"lang": "ru", "text": "<Russian translation>"}],
  "inflections": [{"form": "<inflected surface form>", "feature": "<feature key, e.g. present_2nd_sg, plural, dative_pl>"}],
  "example": {"sentence": "<German example sentence>", "translation_en": "<English>", "translation_ru": "<Russian>"},
  "suggestions": [{"word": "<alternative German word>", "meaning": "<its English meaning>"}]
}

Rules:
- 2-4 translations per language, most common first
- Up to 8 inflections covering the main paradigm
- suggestions only when the input is not a valid word or looks misspelled
- Output ONLY the JSON, no markdown, no explanations`, word)
}
