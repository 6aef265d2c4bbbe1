package textanalysis

import (
	"context"

	"github.com/pranav-c01/ICT-Training/internal/azure"
)

// AzureAnalyzer implements Analyzer with the Azure Language service.
type AzureAnalyzer struct {
	client *azure.TextAnalyticsClient
}

// Ensure AzureAnalyzer implements Analyzer
var _ Analyzer = (*AzureAnalyzer)(nil)

// NewAzureAnalyzer wraps an existing client.
func NewAzureAnalyzer(client *azure.TextAnalyticsClient) *AzureAnalyzer {
	return &AzureAnalyzer{client: client}
}

func (a *AzureAnalyzer) DetectLanguage(ctx context.Context, text string) (Language, error) {
	lang, err := a.client.DetectLanguage(ctx, text)
	if err != nil {
		return Language{}, err
	}
	return Language{
		Name:       lang.Name,
		ISO6391:    lang.ISO6391Name,
		Confidence: lang.ConfidenceScore,
	}, nil
}

func (a *AzureAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error) {
	doc, err := a.client.AnalyzeSentiment(ctx, text)
	if err != nil {
		return Sentiment{}, err
	}
	sentiment := Sentiment{
		Label:  doc.Sentiment,
		Scores: scores(doc.ConfidenceScores),
	}
	for _, s := range doc.Sentences {
		sentiment.Sentences = append(sentiment.Sentences, SentenceSentiment{
			Text:   s.Text,
			Label:  s.Sentiment,
			Scores: scores(s.ConfidenceScores),
		})
	}
	return sentiment, nil
}

func scores(s azure.SentimentConfidenceScores) Scores {
	return Scores{Positive: s.Positive, Neutral: s.Neutral, Negative: s.Negative}
}

func (a *AzureAnalyzer) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	return a.client.ExtractKeyPhrases(ctx, text)
}

func (a *AzureAnalyzer) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	resp, err := a.client.RecognizeEntities(ctx, text)
	if err != nil {
		return nil, err
	}
	var entities []Entity
	for _, e := range resp {
		entities = append(entities, Entity{
			Text:        e.Text,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Confidence:  e.ConfidenceScore,
			Offset:      e.Offset,
			Length:      e.Length,
		})
	}
	return entities, nil
}

func (a *AzureAnalyzer) RecognizeLinkedEntities(ctx context.Context, text string) ([]LinkedEntity, error) {
	resp, err := a.client.RecognizeLinkedEntities(ctx, text)
	if err != nil {
		return nil, err
	}
	var entities []LinkedEntity
	for _, e := range resp {
		var matches []Match
		for _, m := range e.Matches {
			matches = append(matches, Match{
				Text:       m.Text,
				Confidence: m.ConfidenceScore,
				Offset:     m.Offset,
				Length:     m.Length,
			})
		}
		entities = append(entities, LinkedEntity{
			Name:         e.Name,
			DataSource:   e.DataSource,
			DataSourceID: e.ID,
			URL:          e.URL,
			Language:     e.Language,
			Matches:      matches,
		})
	}
	return entities, nil
}
