package textanalysis

import (
	"context"
	"sync"
)

// MockAnalyzer is a test double for Analyzer.
// Each method can be overridden with a custom function.
// If not overridden, methods return empty results.
type MockAnalyzer struct {
	DetectLanguageFunc          func(ctx context.Context, text string) (Language, error)
	AnalyzeSentimentFunc        func(ctx context.Context, text string) (Sentiment, error)
	ExtractKeyPhrasesFunc       func(ctx context.Context, text string) ([]string, error)
	RecognizeEntitiesFunc       func(ctx context.Context, text string) ([]Entity, error)
	RecognizeLinkedEntitiesFunc func(ctx context.Context, text string) ([]LinkedEntity, error)

	mu sync.Mutex

	// Calls tracks the invoked method names in order
	Calls []string
}

// Ensure MockAnalyzer implements Analyzer
var _ Analyzer = (*MockAnalyzer)(nil)

func (m *MockAnalyzer) record(method string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, method)
	m.mu.Unlock()
}

// CallCount returns how many calls were made.
func (m *MockAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockAnalyzer) DetectLanguage(ctx context.Context, text string) (Language, error) {
	m.record("DetectLanguage")
	if m.DetectLanguageFunc != nil {
		return m.DetectLanguageFunc(ctx, text)
	}
	return Language{}, nil
}

func (m *MockAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error) {
	m.record("AnalyzeSentiment")
	if m.AnalyzeSentimentFunc != nil {
		return m.AnalyzeSentimentFunc(ctx, text)
	}
	return Sentiment{}, nil
}

func (m *MockAnalyzer) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	m.record("ExtractKeyPhrases")
	if m.ExtractKeyPhrasesFunc != nil {
		return m.ExtractKeyPhrasesFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockAnalyzer) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	m.record("RecognizeEntities")
	if m.RecognizeEntitiesFunc != nil {
		return m.RecognizeEntitiesFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockAnalyzer) RecognizeLinkedEntities(ctx context.Context, text string) ([]LinkedEntity, error) {
	m.record("RecognizeLinkedEntities")
	if m.RecognizeLinkedEntitiesFunc != nil {
		return m.RecognizeLinkedEntitiesFunc(ctx, text)
	}
	return nil, nil
}
