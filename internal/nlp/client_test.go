// internal/nlp/client_test.go
package nlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
)

func TestClient_Endpoints(t *testing.T) {
	client := NewClient("https://example.test/", 5*time.Second)

	tests := []struct {
		kind models.AnalysisKind
		want string
	}{
		{models.KindSentiment, "https://example.test/analyzeText"},
		{models.KindEntity, "https://example.test/analyzeEntities"},
		{models.KindEntitySentiment, "https://example.test/analyzeEntitySentiment"},
		{models.KindEntitySentimentBySentence, "https://example.test/analyzeSentencesWithSalience"},
		{models.KindSyntax, "https://example.test/analyzeSyntax"},
	}
	for _, tt := range tests {
		endpoint, err := client.Endpoint(tt.kind)
		require.NoError(t, err)
		require.Equal(t, tt.want, endpoint)
	}

	_, err := client.Endpoint(models.AnalysisKind("bogus"))
	require.Error(t, err)
}

func TestClient_AnalyzeIssuesSingleGet(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/analyzeEntities", r.URL.Path)
		require.Equal(t, "Paris is lovely.", r.URL.Query().Get("text"))
		w.Write([]byte(`{"entities": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	raw, err := client.Analyze(context.Background(), models.KindEntity, "Paris is lovely.")
	require.NoError(t, err)
	require.JSONEq(t, `{"entities": []}`, string(raw))
	require.Equal(t, int64(1), calls.Load())
}

func TestClient_BadRequestCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Text exceeds limit or is invalid.\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Analyze(context.Background(), models.KindSentiment, "hello")
	require.True(t, apperrors.IsServerRejected(err))

	var appError *apperrors.AppError
	require.ErrorAs(t, err, &appError)
	require.Equal(t, "Text exceeds limit or is invalid.", appError.Message)
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Analyze(context.Background(), models.KindSentiment, "hello")
	require.True(t, apperrors.IsTransient(err))
}

func TestClient_TransportFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, time.Second)
	_, err := client.Analyze(context.Background(), models.KindSentiment, "hello")
	require.True(t, apperrors.IsTransient(err))
}

func TestClient_InFlightFlag(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(`{"entities": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	require.False(t, client.InFlight(models.KindEntity))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := client.Analyze(context.Background(), models.KindEntity, "Paris")
		require.NoError(t, err)
	}()

	<-entered
	require.True(t, client.InFlight(models.KindEntity))
	require.False(t, client.InFlight(models.KindSyntax))

	close(release)
	<-done
	require.False(t, client.InFlight(models.KindEntity))
}

func TestClient_InFlightClearedOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Analyze(context.Background(), models.KindSyntax, "hello")
	require.Error(t, err)
	require.False(t, client.InFlight(models.KindSyntax))
}
