package qna

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyQuestion is returned when there is nothing to ask.
var ErrEmptyQuestion = errors.New("question is empty")

// NoAnswer is shown when the knowledge base returned nothing.
const NoAnswer = "No answer found."

// Answer is one ranked answer from the knowledge base.
type Answer struct {
	Text       string
	Confidence float64
	ID         int
	Source     string
	Questions  []string
}

// Response holds the answers for one question, best first.
type Response struct {
	Question string
	Answers  []Answer
}

// Best returns the top-ranked answer or nil.
func (r *Response) Best() *Answer {
	if r == nil || len(r.Answers) == 0 {
		return nil
	}
	return &r.Answers[0]
}

// Answerer queries a knowledge base.
type Answerer interface {
	GetAnswers(ctx context.Context, question string) ([]Answer, error)
}

// Ask sends question to a. Blank questions return ErrEmptyQuestion without
// calling a.
func Ask(ctx context.Context, a Answerer, question string) (*Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	answers, err := a.GetAnswers(ctx, question)
	if err != nil {
		return nil, err
	}
	return &Response{Question: question, Answers: answers}, nil
}

// IsQuit reports whether the user asked to end the session.
func IsQuit(question string) bool {
	return strings.EqualFold(strings.TrimSpace(question), "quit")
}
