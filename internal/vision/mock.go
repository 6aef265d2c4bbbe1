package vision

import "context"

// MockAnalyzer is a test double for Analyzer.
type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, image []byte, features []Feature) (*Result, error)

	// Calls counts Analyze invocations
	Calls int
}

var _ Analyzer = (*MockAnalyzer)(nil)

func (m *MockAnalyzer) Analyze(ctx context.Context, image []byte, features []Feature) (*Result, error) {
	m.Calls++
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, image, features)
	}
	return &Result{}, nil
}
