package textanalysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pranav-c01/ICT-Training/internal/azure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type analyzerMock struct {
	mock.Mock
}

func (m *analyzerMock) DetectLanguage(ctx context.Context, text string) (Language, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Language), args.Error(1)
}

func (m *analyzerMock) AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Sentiment), args.Error(1)
}

func (m *analyzerMock) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *analyzerMock) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entity), args.Error(1)
}

func (m *analyzerMock) RecognizeLinkedEntities(ctx context.Context, text string) ([]LinkedEntity, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LinkedEntity), args.Error(1)
}

func TestAnalyze_BlankTextMakesNoCalls(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \r\n"} {
		a := new(analyzerMock)

		res, err := Analyze(context.Background(), a, text)

		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Nil(t, res)
		a.AssertNotCalled(t, "DetectLanguage", mock.Anything, mock.Anything)
		a.AssertExpectations(t)
	}
}

func TestAnalyze_AllCapabilities(t *testing.T) {
	ctx := context.Background()
	text := "The hotel in London was great."
	a := new(analyzerMock)
	a.On("DetectLanguage", ctx, text).Return(Language{Name: "English", ISO6391: "en", Confidence: 1}, nil).Once()
	a.On("AnalyzeSentiment", ctx, text).Return(Sentiment{Label: "positive", Scores: Scores{Positive: 0.98, Neutral: 0.01, Negative: 0.01}}, nil).Once()
	a.On("ExtractKeyPhrases", ctx, text).Return([]string{"hotel", "London"}, nil).Once()
	a.On("RecognizeEntities", ctx, text).Return([]Entity{{Text: "London", Category: "Location", Confidence: 0.99}}, nil).Once()
	a.On("RecognizeLinkedEntities", ctx, text).Return([]LinkedEntity{{Name: "London"}}, nil).Once()

	res, err := Analyze(ctx, a, text)

	require.NoError(t, err)
	a.AssertExpectations(t)
	assert.Empty(t, res.Failures)
	assert.Equal(t, "English", res.Language.Name)
	assert.Equal(t, Scores{Positive: 0.98, Neutral: 0.01, Negative: 0.01}, res.Sentiment.Scores)
	assert.Equal(t, []string{"hotel", "London"}, res.KeyPhrases)
	assert.Len(t, res.Entities, 1)
	assert.Len(t, res.LinkedEntities, 1)
	for _, c := range AllCapabilities {
		assert.True(t, res.Has(c), c)
	}
}

func TestAnalyze_FailureDoesNotBlockSiblings(t *testing.T) {
	ctx := context.Background()
	text := "Hola"
	linkErr := errors.New("entity linking is not available in this region")
	sentimentErr := errors.New("boom")

	m := &MockAnalyzer{
		AnalyzeSentimentFunc: func(ctx context.Context, text string) (Sentiment, error) {
			return Sentiment{}, sentimentErr
		},
		RecognizeLinkedEntitiesFunc: func(ctx context.Context, text string) ([]LinkedEntity, error) {
			return nil, linkErr
		},
		ExtractKeyPhrasesFunc: func(ctx context.Context, text string) ([]string, error) {
			return []string{"hola"}, nil
		},
	}

	res, err := Analyze(ctx, m, text)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"DetectLanguage", "AnalyzeSentiment", "ExtractKeyPhrases", "RecognizeEntities", "RecognizeLinkedEntities",
	}, m.Calls)
	assert.Equal(t, []Failure{
		{Capability: CapabilitySentiment, Err: sentimentErr},
		{Capability: CapabilityLinkedEntities, Err: linkErr},
	}, res.Failures)
	assert.Nil(t, res.Sentiment)
	assert.False(t, res.Has(CapabilitySentiment))
	assert.True(t, res.Has(CapabilityKeyPhrases))
	assert.Equal(t, []string{"hola"}, res.KeyPhrases)
	assert.ErrorIs(t, res.Err(CapabilityLinkedEntities), linkErr)
	assert.NoError(t, res.Err(CapabilityEntities))
}

func TestAnalyze_SelectedCapabilitiesKeepFixedOrder(t *testing.T) {
	m := &MockAnalyzer{}

	res, err := Analyze(context.Background(), m, "text", CapabilityEntities, CapabilityLanguage)

	require.NoError(t, err)
	assert.Equal(t, []string{"DetectLanguage", "RecognizeEntities"}, m.Calls)
	assert.Equal(t, []Capability{CapabilityLanguage, CapabilityEntities}, res.Requested)
	assert.False(t, res.Has(CapabilitySentiment))
}

func TestLinkedEntityConfidence(t *testing.T) {
	e := LinkedEntity{Matches: []Match{{Confidence: 0.2}, {Confidence: 0.7}, {Confidence: 0.5}}}
	assert.Equal(t, 0.7, e.Confidence())
	assert.Equal(t, 0.0, LinkedEntity{}.Confidence())
}

func TestAzureAnalyzer_MapsResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := io.ReadAll(r.Body)
		body := string(b)
		switch {
		case strings.Contains(body, `"kind":"SentimentAnalysis"`):
			w.Write([]byte(`{"results":{"documents":[{"id":"1","sentiment":"negative","confidenceScores":{"positive":0.1,"neutral":0.2,"negative":0.7},"sentences":[{"text":"Bad.","sentiment":"negative","confidenceScores":{"positive":0.1,"neutral":0.2,"negative":0.7}}]}],"errors":[]}}`))
		case strings.Contains(body, `"kind":"EntityLinking"`):
			w.Write([]byte(`{"results":{"documents":[{"id":"1","entities":[{"name":"Seattle","id":"Seattle","url":"https://en.wikipedia.org/wiki/Seattle","dataSource":"Wikipedia","language":"en","matches":[{"text":"Seattle","offset":0,"length":7,"confidenceScore":0.4}]}]}],"errors":[]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"InvalidRequest","message":"unexpected kind"}}`))
		}
	}))
	defer ts.Close()

	a := NewAzureAnalyzer(azure.NewTextAnalyticsClient(azure.ClientOpts{Endpoint: ts.URL, Key: "foo"}))

	sentiment, err := a.AnalyzeSentiment(context.Background(), "Bad.")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{
		Label:     "negative",
		Scores:    Scores{Positive: 0.1, Neutral: 0.2, Negative: 0.7},
		Sentences: []SentenceSentiment{{Text: "Bad.", Label: "negative", Scores: Scores{Positive: 0.1, Neutral: 0.2, Negative: 0.7}}},
	}, sentiment)

	linked, err := a.RecognizeLinkedEntities(context.Background(), "Seattle")
	require.NoError(t, err)
	assert.Equal(t, []LinkedEntity{{
		Name:         "Seattle",
		DataSource:   "Wikipedia",
		DataSourceID: "Seattle",
		URL:          "https://en.wikipedia.org/wiki/Seattle",
		Language:     "en",
		Matches:      []Match{{Text: "Seattle", Confidence: 0.4, Offset: 0, Length: 7}},
	}}, linked)

	_, err = a.RecognizeEntities(context.Background(), "Seattle")
	var svcErr *azure.ServiceError
	assert.True(t, errors.As(err, &svcErr))
}
