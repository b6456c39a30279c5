// internal/models/analysis.go
package models

// AnalysisKind identifies one of the five remote analysis endpoints.
// It selects the endpoint URL, the response shape and the export columns.
type AnalysisKind string

const (
	KindSentiment                  AnalysisKind = "sentiment"
	KindEntity                     AnalysisKind = "entity"
	KindEntitySentiment            AnalysisKind = "entity_sentiment"
	KindEntitySentimentBySentence  AnalysisKind = "entity_sentiment_sentences"
	KindSyntax                     AnalysisKind = "syntax"
)

// AllKinds lists every supported analysis kind in dashboard panel order.
func AllKinds() []AnalysisKind {
	return []AnalysisKind{
		KindSentiment,
		KindEntity,
		KindEntitySentiment,
		KindEntitySentimentBySentence,
		KindSyntax,
	}
}

// ParseKind maps a URL path segment to an AnalysisKind.
func ParseKind(s string) (AnalysisKind, bool) {
	switch AnalysisKind(s) {
	case KindSentiment, KindEntity, KindEntitySentiment,
		KindEntitySentimentBySentence, KindSyntax:
		return AnalysisKind(s), true
	}
	return "", false
}

// AnalysisRequest is one submission of user text against a kind.
// Text length in [1, 1000] runes is enforced before dispatch.
type AnalysisRequest struct {
	Kind AnalysisKind `json:"kind"`
	Text string       `json:"text"`
}

// Sentence sentiment categories, derived from the score.
const (
	CategoryPositive = "positive"
	CategoryNeutral  = "neutral"
	CategoryNegative = "negative"
)

// SentimentCategory buckets a sentence score: above 0.2 positive,
// below -0.2 negative, neutral otherwise.
func SentimentCategory(score float64) string {
	switch {
	case score > 0.2:
		return CategoryPositive
	case score < -0.2:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

// SentimentScore is a score/magnitude pair as returned by the service.
type SentimentScore struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// SentenceSentiment is one sentence of a document-level sentiment analysis.
type SentenceSentiment struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
	Category  string  `json:"category"`
}

// SentimentResult is the normalized payload of the sentiment endpoint.
type SentimentResult struct {
	Score     float64             `json:"score"`
	Magnitude float64             `json:"magnitude"`
	Sentences []SentenceSentiment `json:"sentences"`
}

// Entity is one extracted entity with its relative importance.
// Salience is nil when the service omitted it.
type Entity struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Salience *float64 `json:"salience,omitempty"`
}

// EntitySentiment is one entity with optional sentiment attached.
// A nil Sentiment is valid and renders as "N/A" downstream.
type EntitySentiment struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Salience  *float64        `json:"salience,omitempty"`
	Sentiment *SentimentScore `json:"sentiment,omitempty"`
}

// SentenceSalience is one sentence of the per-sentence entity sentiment
// analysis. All numeric fields are optional in the payload.
type SentenceSalience struct {
	Text               string   `json:"text"`
	Sentiment          *float64 `json:"sentiment,omitempty"`
	Magnitude          *float64 `json:"magnitude,omitempty"`
	AggregatedSalience *float64 `json:"aggregatedSalience,omitempty"`
}

// SyntaxToken is one token of a syntactic analysis. Dependency is the
// dependency edge label, already flattened to a string.
type SyntaxToken struct {
	Text         string `json:"text"`
	PartOfSpeech string `json:"partOfSpeech"`
	Dependency   string `json:"dependency"`
}

// AnalysisResult is the tagged union over all analysis kinds. Exactly one
// of the payload fields is populated, selected by Kind. Results are only
// ever produced by the normalizer; raw payloads never flow past it.
type AnalysisResult struct {
	Kind AnalysisKind `json:"kind"`

	Sentiment        *SentimentResult   `json:"sentiment,omitempty"`
	Entities         []Entity           `json:"entities,omitempty"`
	EntitySentiments []EntitySentiment  `json:"entitySentiments,omitempty"`
	Sentences        []SentenceSalience `json:"sentences,omitempty"`
	Tokens           []SyntaxToken      `json:"tokens,omitempty"`
}
