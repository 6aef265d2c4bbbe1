package azure

import (
	"context"
	"fmt"
)

const (
	queryKnowledgeBasesPath  = "/language/:query-knowledgebases"
	questionAnsweringVersion = "2021-10-01"
)

// QuestionAnsweringClient queries a deployed custom question answering
// project.
type QuestionAnsweringClient struct {
	client
	projectName    string
	deploymentName string
}

// NewQuestionAnsweringClient creates a client for one project deployment.
// No request is made.
func NewQuestionAnsweringClient(opts ClientOpts, projectName, deploymentName string) *QuestionAnsweringClient {
	return &QuestionAnsweringClient{
		client:         newClient(opts),
		projectName:    projectName,
		deploymentName: deploymentName,
	}
}

// AnswersOptions tunes a query. Zero values leave the service defaults.
type AnswersOptions struct {
	Top                 int
	ConfidenceThreshold float64
}

type answersRequest struct {
	Question                 string  `json:"question"`
	Top                      int     `json:"top,omitempty"`
	ConfidenceScoreThreshold float64 `json:"confidenceScoreThreshold,omitempty"`
}

// KnowledgeBaseAnswer is one ranked answer.
type KnowledgeBaseAnswer struct {
	Questions       []string          `json:"questions"`
	Answer          string            `json:"answer"`
	ConfidenceScore float64           `json:"confidenceScore"`
	ID              int               `json:"id"`
	Source          string            `json:"source"`
	Metadata        map[string]string `json:"metadata"`
}

// AnswersResult is the ranked list of answers to a question.
type AnswersResult struct {
	Answers []KnowledgeBaseAnswer `json:"answers"`
}

// GetAnswers sends question to the knowledge base.
func (c *QuestionAnsweringClient) GetAnswers(ctx context.Context, question string, opts AnswersOptions) (AnswersResult, error) {
	result := &AnswersResult{}
	_, err := handleError(c.req(ctx, result).
		SetQueryParams(map[string]string{
			"projectName":    c.projectName,
			"deploymentName": c.deploymentName,
			"api-version":    questionAnsweringVersion,
		}).
		SetBody(answersRequest{
			Question:                 question,
			Top:                      opts.Top,
			ConfidenceScoreThreshold: opts.ConfidenceThreshold,
		}).
		Post(queryKnowledgeBasesPath))
	if err != nil {
		return AnswersResult{}, fmt.Errorf("query knowledge base: %w", err)
	}
	return *result, nil
}
