package azure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnswers(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"answers":[{"questions":["How can I cancel a booking?"],"answer":"Call us at 555 123 4567.","confidenceScore":0.9,"id":3,"source":"faq.tsv","metadata":{}},{"questions":["Refunds?"],"answer":"Refunds take 5 days.","confidenceScore":0.3,"id":7,"source":"faq.tsv","metadata":{}}]}`)

	client := NewQuestionAnsweringClient(ClientOpts{Endpoint: ts.URL, Key: "foo"}, "LearnFAQ", "production")
	res, err := client.GetAnswers(context.Background(), "How do I cancel?", AnswersOptions{Top: 2})

	require.NoError(t, err)
	assert.Equal(t, "/language/:query-knowledgebases", rec.path)
	q, err := url.ParseQuery(rec.query)
	require.NoError(t, err)
	assert.Equal(t, "LearnFAQ", q.Get("projectName"))
	assert.Equal(t, "production", q.Get("deploymentName"))
	assert.Equal(t, "2021-10-01", q.Get("api-version"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, map[string]any{"question": "How do I cancel?", "top": float64(2)}, body)

	require.Len(t, res.Answers, 2)
	assert.Equal(t, "Call us at 555 123 4567.", res.Answers[0].Answer)
	assert.Equal(t, 0.9, res.Answers[0].ConfidenceScore)
	assert.Equal(t, 3, res.Answers[0].ID)
}

func TestGetAnswers_ProjectNotFound(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusNotFound, `{"error":{"code":"ProjectNotFound","message":"The specified project was not found."}}`)

	client := NewQuestionAnsweringClient(ClientOpts{Endpoint: ts.URL, Key: "foo"}, "missing", "production")
	_, err := client.GetAnswers(context.Background(), "Hi", AnswersOptions{})

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "ProjectNotFound", svcErr.Code)
}
