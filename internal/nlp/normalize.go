// internal/nlp/normalize.go
package nlp

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
)

// Wire shapes of the five endpoints. Optional numerics stay pointers so a
// field the service omitted is carried as absent, never as zero. Extra
// fields in the payload are ignored for forward compatibility.

type rawScoredSentence struct {
	Text      string                 `json:"text"`
	Sentiment *models.SentimentScore `json:"sentiment"`
}

type rawSentimentPayload struct {
	Sentiment *models.SentimentScore `json:"sentiment"`
	Sentences []rawScoredSentence    `json:"sentences"`
}

type rawEntitiesPayload struct {
	Entities []struct {
		Name     string   `json:"name"`
		Type     string   `json:"type"`
		Salience *float64 `json:"salience"`
	} `json:"entities"`
}

type rawEntitySentimentPayload struct {
	Entities []struct {
		Name      string                 `json:"name"`
		Type      string                 `json:"type"`
		Salience  *float64               `json:"salience"`
		Sentiment *models.SentimentScore `json:"sentiment"`
	} `json:"entities"`
}

type rawSentencesPayload struct {
	Sentences []struct {
		Text               string   `json:"text"`
		Sentiment          *float64 `json:"sentiment"`
		Magnitude          *float64 `json:"magnitude"`
		AggregatedSalience *float64 `json:"aggregatedSalience"`
	} `json:"sentences"`
}

type rawSyntaxPayload struct {
	Tokens []struct {
		Text           string          `json:"text"`
		PartOfSpeech   string          `json:"partOfSpeech"`
		DependencyEdge json.RawMessage `json:"dependencyEdge"`
	} `json:"tokens"`
}

// Normalize converts a raw endpoint payload into the typed result for a
// kind. It is pure: the same input always yields a structurally equal
// result, and nothing downstream ever sees the raw payload.
func Normalize(kind models.AnalysisKind, raw json.RawMessage) (*models.AnalysisResult, error) {
	switch kind {
	case models.KindSentiment:
		return normalizeSentiment(raw)
	case models.KindEntity:
		return normalizeEntities(raw)
	case models.KindEntitySentiment:
		return normalizeEntitySentiment(raw)
	case models.KindEntitySentimentBySentence:
		return normalizeSentences(raw)
	case models.KindSyntax:
		return normalizeSyntax(raw)
	default:
		return nil, fmt.Errorf("unknown analysis kind: %s", kind)
	}
}

func decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.NewTransientError("failed to decode response", err)
	}
	return nil
}

func normalizeSentiment(raw json.RawMessage) (*models.AnalysisResult, error) {
	var payload rawSentimentPayload
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}

	result := &models.SentimentResult{}
	if payload.Sentiment != nil {
		result.Score = payload.Sentiment.Score
		result.Magnitude = payload.Sentiment.Magnitude
	}

	result.Sentences = lo.Map(payload.Sentences, func(s rawScoredSentence, _ int) models.SentenceSentiment {
		out := models.SentenceSentiment{Text: s.Text}
		if s.Sentiment != nil {
			out.Score = s.Sentiment.Score
			out.Magnitude = s.Sentiment.Magnitude
		}
		out.Category = models.SentimentCategory(out.Score)
		return out
	})

	return &models.AnalysisResult{Kind: models.KindSentiment, Sentiment: result}, nil
}

func normalizeEntities(raw json.RawMessage) (*models.AnalysisResult, error) {
	var payload rawEntitiesPayload
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}

	entities := make([]models.Entity, 0, len(payload.Entities))
	for _, e := range payload.Entities {
		entities = append(entities, models.Entity{
			Name:     e.Name,
			Type:     e.Type,
			Salience: e.Salience,
		})
	}

	return &models.AnalysisResult{Kind: models.KindEntity, Entities: entities}, nil
}

func normalizeEntitySentiment(raw json.RawMessage) (*models.AnalysisResult, error) {
	var payload rawEntitySentimentPayload
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}

	entities := make([]models.EntitySentiment, 0, len(payload.Entities))
	for _, e := range payload.Entities {
		entities = append(entities, models.EntitySentiment{
			Name:      e.Name,
			Type:      e.Type,
			Salience:  e.Salience,
			Sentiment: e.Sentiment,
		})
	}

	return &models.AnalysisResult{Kind: models.KindEntitySentiment, EntitySentiments: entities}, nil
}

func normalizeSentences(raw json.RawMessage) (*models.AnalysisResult, error) {
	var payload rawSentencesPayload
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}

	sentences := make([]models.SentenceSalience, 0, len(payload.Sentences))
	for _, s := range payload.Sentences {
		sentences = append(sentences, models.SentenceSalience{
			Text:               s.Text,
			Sentiment:          s.Sentiment,
			Magnitude:          s.Magnitude,
			AggregatedSalience: s.AggregatedSalience,
		})
	}

	return &models.AnalysisResult{Kind: models.KindEntitySentimentBySentence, Sentences: sentences}, nil
}

func normalizeSyntax(raw json.RawMessage) (*models.AnalysisResult, error) {
	var payload rawSyntaxPayload
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}

	tokens := make([]models.SyntaxToken, 0, len(payload.Tokens))
	for _, t := range payload.Tokens {
		tokens = append(tokens, models.SyntaxToken{
			Text:         t.Text,
			PartOfSpeech: t.PartOfSpeech,
			Dependency:   flattenDependencyEdge(t.DependencyEdge),
		})
	}

	return &models.AnalysisResult{Kind: models.KindSyntax, Tokens: tokens}, nil
}

// flattenDependencyEdge accepts both shapes the service has produced for
// dependencyEdge: a bare label string, or an object carrying a label.
func flattenDependencyEdge(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var label string
	if err := json.Unmarshal(raw, &label); err == nil {
		return label
	}

	var edge struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(raw, &edge); err == nil && edge.Label != "" {
		return edge.Label
	}

	return string(raw)
}
