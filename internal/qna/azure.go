package qna

import (
	"context"

	"github.com/pranav-c01/ICT-Training/internal/azure"
)

// AzureAnswerer implements Answerer with a deployed question answering
// project.
type AzureAnswerer struct {
	client *azure.QuestionAnsweringClient
	opts   azure.AnswersOptions
}

var _ Answerer = (*AzureAnswerer)(nil)

func NewAzureAnswerer(client *azure.QuestionAnsweringClient, opts azure.AnswersOptions) *AzureAnswerer {
	return &AzureAnswerer{client: client, opts: opts}
}

func (a *AzureAnswerer) GetAnswers(ctx context.Context, question string) ([]Answer, error) {
	res, err := a.client.GetAnswers(ctx, question, a.opts)
	if err != nil {
		return nil, err
	}
	answers := make([]Answer, 0, len(res.Answers))
	for _, ans := range res.Answers {
		answers = append(answers, Answer{
			Text:       ans.Answer,
			Confidence: ans.ConfidenceScore,
			ID:         ans.ID,
			Source:     ans.Source,
			Questions:  ans.Questions,
		})
	}
	return answers, nil
}
