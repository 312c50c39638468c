package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// wordResolver is the engine capability the transport consumes.
type wordResolver interface {
	Resolve(ctx context.Context, rawQuery string) (domain.ResolutionResult, error)
}

// ResolveHandler serves POST /v1/resolve.
type ResolveHandler struct {
	resolver wordResolver
}

// NewResolveHandler creates a ResolveHandler.
func NewResolveHandler(resolver wordResolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

// ResolveRequest is the JSON request body.
type ResolveRequest struct {
	Query string `json:"query"`
}

// ResolveResponse is the JSON rendering of a resolution outcome.
type ResolveResponse struct {
	Outcome     string              `json:"outcome"`
	Reason      string              `json:"reason,omitempty"`
	Match       *matchDTO           `json:"match,omitempty"`
	Candidates  []candidateDTO      `json:"candidates,omitempty"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	Trace       traceDTO            `json:"trace"`
}

type matchDTO struct {
	Lemma        string           `json:"lemma"`
	PartOfSpeech string           `json:"part_of_speech"`
	Gender       string           `json:"gender,omitempty"`
	Article      string           `json:"article,omitempty"`
	Level        string           `json:"level,omitempty"`
	MatchType    string           `json:"match_type"`
	Feature      string           `json:"feature,omitempty"`
	Translations []translationDTO `json:"translations,omitempty"`
}

type translationDTO struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type candidateDTO struct {
	Rank       int     `json:"rank"`
	Lemma      string  `json:"lemma"`
	Sense      string  `json:"sense_id"`
	MatchType  string  `json:"match_type"`
	Similarity float64 `json:"similarity"`
	Confidence string  `json:"confidence"`
}

type traceDTO struct {
	Query           string    `json:"query"`
	NormalizedQuery string    `json:"normalized_query"`
	Language        string    `json:"language"`
	StrippedArticle string    `json:"stripped_article,omitempty"`
	Tiers           []tierDTO `json:"tiers"`
}

type tierDTO struct {
	Tier    string   `json:"tier"`
	Queried []string `json:"queried,omitempty"`
	Found   int      `json:"found"`
}

// Resolve handles one resolution request.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.resolver.Resolve(r.Context(), req.Query)
	if err != nil {
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
		return
	}

	status := http.StatusOK
	if result.Kind == domain.OutcomeTransientFailure {
		status = http.StatusBadGateway
	}

	writeJSON(w, status, toResolveResponse(result))
}

func toResolveResponse(result domain.ResolutionResult) ResolveResponse {
	resp := ResolveResponse{
		Outcome:     string(result.Kind),
		Reason:      result.Reason,
		Suggestions: result.Suggestions,
		Trace:       toTraceDTO(result.Trace),
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []domain.Suggestion{}
	}

	if result.Match != nil {
		resp.Match = toMatchDTO(*result.Match, result.MatchTier, result.Feature)
	}

	if result.Ranked != nil {
		for _, c := range result.Ranked.Candidates {
			resp.Candidates = append(resp.Candidates, candidateDTO{
				Rank:       c.Rank,
				Lemma:      c.LemmaSense.Lemma.Text,
				Sense:      c.LemmaSense.Sense.ID.String(),
				MatchType:  c.Tier.String(),
				Similarity: c.Similarity,
				Confidence: string(c.Label),
			})
		}
	}

	return resp
}

func toMatchDTO(ls domain.LemmaSense, tier domain.MatchTier, feature string) *matchDTO {
	dto := &matchDTO{
		Lemma:        ls.Lemma.Text,
		PartOfSpeech: ls.Sense.PartOfSpeech.String(),
		Feature:      feature,
	}
	if tier != 0 {
		dto.MatchType = tier.String()
	} else {
		dto.MatchType = "enriched"
	}
	if ls.Sense.Gender != nil {
		dto.Gender = ls.Sense.Gender.String()
		dto.Article = ls.Sense.Gender.Article()
	}
	if ls.Lemma.Level != nil {
		dto.Level = *ls.Lemma.Level
	}
	for _, t := range ls.Sense.Translations {
		dto.Translations = append(dto.Translations, translationDTO{Lang: t.Lang, Text: t.Text})
	}
	return dto
}

func toTraceDTO(trace domain.MatchTrace) traceDTO {
	dto := traceDTO{
		Query:           trace.RawQuery,
		NormalizedQuery: trace.NormalizedQuery,
		Language:        trace.Language,
		StrippedArticle: trace.StrippedArticle,
		Tiers:           []tierDTO{},
	}
	for _, t := range trace.Tiers {
		dto.Tiers = append(dto.Tiers, tierDTO{
			Tier:    t.Tier.String(),
			Queried: t.Queried,
			Found:   t.Found,
		})
	}
	return dto
}
