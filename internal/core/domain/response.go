package domain

import "time"

// Source identifies which pipeline stage produced a response.
type Source string

// Available sources.
const (
	// SourcePredefined is a semantic or facet match against a QAEntry.
	SourcePredefined Source = "predefined"

	// SourceIntent is a reply drawn from a matched intent's pool.
	SourceIntent Source = "intent"

	// SourceGeneric is a reply drawn from the unknown pool.
	SourceGeneric Source = "generic"

	// SourceExternal is text produced by the optional external generator.
	SourceExternal Source = "external"
)

// IsValid returns true if the source is recognised.
func (s Source) IsValid() bool {
	switch s {
	case SourcePredefined, SourceIntent, SourceGeneric, SourceExternal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Source) String() string {
	return string(s)
}

// Description returns a human-readable label for the source.
func (s Source) Description() string {
	switch s {
	case SourcePredefined:
		return "Predefined answer"
	case SourceIntent:
		return "Intent response"
	case SourceGeneric:
		return "Generic response"
	case SourceExternal:
		return "AI enhanced"
	default:
		return unknownDescription
	}
}

// Fixed confidences for stages that do not produce a similarity score.
const (
	IntentConfidence   = 1.0
	FacetConfidence    = 0.85
	FallbackConfidence = 0.0
)

// Response is the result of a single turn.
type Response struct {
	// Text is the reply shown to the user. Never empty.
	Text string `json:"text"`

	// Source is the stage that produced Text.
	Source Source `json:"source"`

	// Intent is the detected intent for intent and generic replies.
	Intent Intent `json:"intent,omitempty"`

	// Confidence is the similarity score or the stage's fixed constant, in [0,1].
	Confidence float64 `json:"confidence"`

	// EntryID is the matched QAEntry for predefined replies.
	EntryID string `json:"entry_id,omitempty"`
}

// ConversationTurn records one exchange in a session.
type ConversationTurn struct {
	Query    string
	Response Response
	At       time.Time
}

// MatchResult is the outcome of the semantic stage.
type MatchResult struct {
	// Entry is the best-scoring entry, or nil if there are no entries.
	Entry *QAEntry

	// Score is the aggregated similarity for Entry.
	Score float64

	// Accepted is true when Score cleared the threshold.
	Accepted bool

	// Phrasing is the question or variation that scored highest.
	Phrasing string

	// ViaFacet is true when a facet keyword lifted the score.
	ViaFacet bool
}

// Generation is the explicit success/failure result of the external generator.
type Generation struct {
	Text string
	Err  error
}

// OK reports whether the generation succeeded with usable text.
func (g Generation) OK() bool {
	return g.Err == nil && g.Text != ""
}

// GenerationFailed builds a failed Generation.
func GenerationFailed(err error) Generation {
	return Generation{Err: err}
}
