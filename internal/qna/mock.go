package qna

import "context"

// MockAnswerer is a test double for Answerer.
type MockAnswerer struct {
	GetAnswersFunc func(ctx context.Context, question string) ([]Answer, error)

	// Questions records every question received
	Questions []string
}

var _ Answerer = (*MockAnswerer)(nil)

func (m *MockAnswerer) GetAnswers(ctx context.Context, question string) ([]Answer, error) {
	m.Questions = append(m.Questions, question)
	if m.GetAnswersFunc != nil {
		return m.GetAnswersFunc(ctx, question)
	}
	return nil, nil
}
