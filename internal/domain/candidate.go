package domain

// ResolutionCandidate is a transient match produced by the resolver. It is
// never persisted unless the surrounding application promotes it.
type ResolutionCandidate struct {
	LemmaSense LemmaSense
	Tier       MatchTier
	Similarity float64
	// Feature is the grammatical annotation for inflected matches
	// (e.g. "present_1st_sg"); empty otherwise.
	Feature string
	// Variant is the generated case variant that produced the hit.
	Variant string
}

// Label returns the confidence bucket for the candidate's similarity.
func (c ResolutionCandidate) Label() ConfidenceLabel {
	return ConfidenceFor(c.Similarity)
}

// RankedCandidate is a candidate with its final rank position.
type RankedCandidate struct {
	ResolutionCandidate
	Rank  int
	Label ConfidenceLabel
}

// RankedResultSet is the ordered, explainable output of the ambiguity
// aggregator. Order is fully deterministic.
type RankedResultSet struct {
	Candidates []RankedCandidate
}

// Suggestion is a non-authoritative "did you mean" hint surfaced to the
// caller. Nothing about a suggestion is persisted.
type Suggestion struct {
	Text       string          `json:"text"`
	Meaning    string          `json:"meaning,omitempty"`
	Similarity float64         `json:"similarity,omitempty"`
	Label      ConfidenceLabel `json:"label,omitempty"`
	// Source names where the suggestion came from: "fuzzy" or "external-model".
	Source string `json:"source"`
}

// TierRecord documents what one resolver tier looked at and found.
type TierRecord struct {
	Tier    MatchTier
	Queried []string
	Found   int
}

// MatchTrace preserves every tier's findings for caller-side transparency.
// A result is never silently dropped: each attempted tier appears here.
type MatchTrace struct {
	RawQuery        string
	NormalizedQuery string
	Language        string
	StrippedArticle string
	Tiers           []TierRecord
}

// OutcomeKind discriminates the closed set of resolution outcomes.
type OutcomeKind string

const (
	OutcomeFound            OutcomeKind = "found"
	OutcomeAmbiguous        OutcomeKind = "ambiguous"
	OutcomeNotFound         OutcomeKind = "not_found"
	OutcomeRejected         OutcomeKind = "rejected"
	OutcomeTransientFailure OutcomeKind = "transient_failure"
)

// ResolutionResult is the single shape returned to the surrounding
// application. Exactly one of the outcome-specific fields is meaningful,
// selected by Kind. Suggestions is never nil.
type ResolutionResult struct {
	Kind OutcomeKind

	// Match is set when Kind == OutcomeFound.
	Match *LemmaSense
	// MatchTier and Feature annotate how the match was found.
	MatchTier MatchTier
	Feature   string

	// Ranked is set when Kind == OutcomeAmbiguous.
	Ranked *RankedResultSet

	// Suggestions accompanies not_found and rejected outcomes. Never nil.
	Suggestions []Suggestion

	// Reason is a human-readable reason code for not_found, rejected, and
	// transient_failure outcomes.
	Reason string

	Trace MatchTrace
}

// NewNotFound builds a not_found result with a guaranteed non-nil
// suggestion list.
func NewNotFound(reason string, suggestions []Suggestion) ResolutionResult {
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return ResolutionResult{Kind: OutcomeNotFound, Reason: reason, Suggestions: suggestions}
}

// NewRejected builds a rejected result (the external model altered the
// input). Distinct from not_found so the caller can message "did you mean X".
func NewRejected(reason string, suggestions []Suggestion) ResolutionResult {
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return ResolutionResult{Kind: OutcomeRejected, Reason: reason, Suggestions: suggestions}
}

// NewTransientFailure builds a retryable-failure result.
func NewTransientFailure(reason string) ResolutionResult {
	return ResolutionResult{Kind: OutcomeTransientFailure, Reason: reason, Suggestions: []Suggestion{}}
}
