// internal/nlp/normalize_test.go
package nlp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
)

func TestNormalize_Sentiment(t *testing.T) {
	raw := json.RawMessage(`{
		"sentiment": {"score": 0.5, "magnitude": 1.2},
		"sentences": [
			{"text": "Great product.", "sentiment": {"score": 0.8, "magnitude": 0.8}},
			{"text": "Terrible support.", "sentiment": {"score": -0.6, "magnitude": 0.6}},
			{"text": "It exists.", "sentiment": {"score": 0.0, "magnitude": 0.1}}
		]
	}`)

	result, err := Normalize(models.KindSentiment, raw)
	require.NoError(t, err)
	require.Equal(t, models.KindSentiment, result.Kind)
	require.NotNil(t, result.Sentiment)
	require.Equal(t, 0.5, result.Sentiment.Score)
	require.Equal(t, 1.2, result.Sentiment.Magnitude)

	require.Len(t, result.Sentiment.Sentences, 3)
	require.Equal(t, models.CategoryPositive, result.Sentiment.Sentences[0].Category)
	require.Equal(t, models.CategoryNegative, result.Sentiment.Sentences[1].Category)
	require.Equal(t, models.CategoryNeutral, result.Sentiment.Sentences[2].Category)
}

func TestNormalize_Entities_AbsentSalienceStaysAbsent(t *testing.T) {
	raw := json.RawMessage(`{"entities": [
		{"name": "Paris", "type": "LOCATION", "salience": 0.8234},
		{"name": "Louvre", "type": "LOCATION"}
	]}`)

	result, err := Normalize(models.KindEntity, raw)
	require.NoError(t, err)
	require.Len(t, result.Entities, 2)

	require.NotNil(t, result.Entities[0].Salience)
	require.Equal(t, 0.8234, *result.Entities[0].Salience)

	// Missing numerics must survive as absent, not become 0.
	require.Nil(t, result.Entities[1].Salience)
}

func TestNormalize_EntitySentiment(t *testing.T) {
	raw := json.RawMessage(`{"entities": [
		{"name": "Paris", "type": "LOCATION", "salience": 0.6,
		 "sentiment": {"score": 0.4, "magnitude": 0.9}},
		{"name": "Berlin", "type": "LOCATION"}
	]}`)

	result, err := Normalize(models.KindEntitySentiment, raw)
	require.NoError(t, err)
	require.Len(t, result.EntitySentiments, 2)

	first := result.EntitySentiments[0]
	require.NotNil(t, first.Sentiment)
	require.Equal(t, 0.4, first.Sentiment.Score)

	second := result.EntitySentiments[1]
	require.Nil(t, second.Sentiment)
	require.Nil(t, second.Salience)
}

func TestNormalize_SentencesWithSalience(t *testing.T) {
	raw := json.RawMessage(`{"sentences": [
		{"text": "I love it here.", "sentiment": 0.9, "magnitude": 0.9, "aggregatedSalience": 0.33},
		{"text": "Moving on."}
	]}`)

	result, err := Normalize(models.KindEntitySentimentBySentence, raw)
	require.NoError(t, err)
	require.Len(t, result.Sentences, 2)
	require.Equal(t, 0.33, *result.Sentences[0].AggregatedSalience)
	require.Nil(t, result.Sentences[1].Sentiment)
	require.Nil(t, result.Sentences[1].Magnitude)
	require.Nil(t, result.Sentences[1].AggregatedSalience)
}

func TestNormalize_SyntaxDependencyShapes(t *testing.T) {
	// dependencyEdge arrives either as a bare label or as an object.
	raw := json.RawMessage(`{"tokens": [
		{"text": "Paris", "partOfSpeech": "NOUN", "dependencyEdge": "NSUBJ"},
		{"text": "is", "partOfSpeech": "VERB", "dependencyEdge": {"label": "ROOT", "headTokenIndex": 1}},
		{"text": "big", "partOfSpeech": "ADJ"}
	]}`)

	result, err := Normalize(models.KindSyntax, raw)
	require.NoError(t, err)
	require.Len(t, result.Tokens, 3)
	require.Equal(t, "NSUBJ", result.Tokens[0].Dependency)
	require.Equal(t, "ROOT", result.Tokens[1].Dependency)
	require.Equal(t, "", result.Tokens[2].Dependency)
}

func TestNormalize_IgnoresUnknownFields(t *testing.T) {
	raw := json.RawMessage(`{"entities": [{"name": "Paris", "type": "LOCATION", "salience": 0.5,
		"mentions": [{"text": "Paris"}], "metadata": {"wikipedia_url": "x"}}]}`)

	result, err := Normalize(models.KindEntity, raw)
	require.NoError(t, err)
	require.Len(t, result.Entities, 1)
	require.Equal(t, "Paris", result.Entities[0].Name)
}

func TestNormalize_MalformedPayload(t *testing.T) {
	_, err := Normalize(models.KindSentiment, json.RawMessage(`{"sentiment": "not an object"`))
	require.Error(t, err)
	require.True(t, apperrors.IsTransient(err))
}

func TestNormalize_IsDeterministic(t *testing.T) {
	raw := json.RawMessage(`{"entities": [{"name": "Paris", "type": "LOCATION", "salience": 0.8234}]}`)

	first, err := Normalize(models.KindEntity, raw)
	require.NoError(t, err)
	second, err := Normalize(models.KindEntity, raw)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNormalize_UnknownKind(t *testing.T) {
	_, err := Normalize(models.AnalysisKind("bogus"), json.RawMessage(`{}`))
	require.Error(t, err)
}
