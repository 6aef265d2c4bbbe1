package azure

import (
	"context"
	"fmt"
)

const (
	analyzeTextPath       = "/language/:analyze-text"
	textAnalyticsVersion  = "2023-04-01"
	analyzeTextDocumentID = "1"
)

// Analysis kinds of the analyze-text API.
const (
	KindLanguageDetection   = "LanguageDetection"
	KindSentimentAnalysis   = "SentimentAnalysis"
	KindKeyPhraseExtraction = "KeyPhraseExtraction"
	KindEntityRecognition   = "EntityRecognition"
	KindEntityLinking       = "EntityLinking"
)

// TextAnalyticsClient calls the analyze-text API of the Language service.
// Every method sends exactly one request for one document.
type TextAnalyticsClient struct {
	client
}

// NewTextAnalyticsClient creates a client. No request is made.
func NewTextAnalyticsClient(opts ClientOpts) *TextAnalyticsClient {
	return &TextAnalyticsClient{client: newClient(opts)}
}

type textDocument struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type analyzeTextRequest struct {
	Kind          string `json:"kind"`
	AnalysisInput struct {
		Documents []textDocument `json:"documents"`
	} `json:"analysisInput"`
}

type documentError struct {
	ID    string `json:"id"`
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		InnerError *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"innererror"`
	} `json:"error"`
}

// DocumentError is returned when the service rejects the document itself,
// e.g. because it is too long or in an unsupported language.
type DocumentError struct {
	ID      string
	Code    string
	Message string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s rejected: %s - %s", e.ID, e.Code, e.Message)
}

type analyzeTextResponse[D any] struct {
	Kind    string `json:"kind"`
	Results struct {
		Documents    []D             `json:"documents"`
		Errors       []documentError `json:"errors"`
		ModelVersion string          `json:"modelVersion"`
	} `json:"results"`
}

// Warning is a non-fatal note attached to a document result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetectedLanguage is the primary language of a document.
type DetectedLanguage struct {
	Name            string  `json:"name"`
	ISO6391Name     string  `json:"iso6391Name"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type languageDocument struct {
	ID               string           `json:"id"`
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
	Warnings         []Warning        `json:"warnings"`
}

// SentimentConfidenceScores holds the three-way sentiment distribution.
type SentimentConfidenceScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentenceSentiment is the sentiment of a single sentence.
type SentenceSentiment struct {
	Text             string                    `json:"text"`
	Sentiment        string                    `json:"sentiment"`
	ConfidenceScores SentimentConfidenceScores `json:"confidenceScores"`
	Offset           int                       `json:"offset"`
	Length           int                       `json:"length"`
}

// DocumentSentiment is the sentiment of the whole document.
type DocumentSentiment struct {
	ID               string                    `json:"id"`
	Sentiment        string                    `json:"sentiment"`
	ConfidenceScores SentimentConfidenceScores `json:"confidenceScores"`
	Sentences        []SentenceSentiment       `json:"sentences"`
	Warnings         []Warning                 `json:"warnings"`
}

type keyPhrasesDocument struct {
	ID         string    `json:"id"`
	KeyPhrases []string  `json:"keyPhrases"`
	Warnings   []Warning `json:"warnings"`
}

// CategorizedEntity is a named entity with its category.
type CategorizedEntity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory,omitempty"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type entitiesDocument struct {
	ID       string              `json:"id"`
	Entities []CategorizedEntity `json:"entities"`
	Warnings []Warning           `json:"warnings"`
}

// LinkedEntityMatch is one occurrence of a linked entity in the text.
type LinkedEntityMatch struct {
	Text            string  `json:"text"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// LinkedEntity is an entity resolved to a knowledge base record.
type LinkedEntity struct {
	Name       string              `json:"name"`
	ID         string              `json:"id"`
	URL        string              `json:"url"`
	DataSource string              `json:"dataSource"`
	Language   string              `json:"language"`
	BingID     string              `json:"bingId"`
	Matches    []LinkedEntityMatch `json:"matches"`
}

type linkedEntitiesDocument struct {
	ID       string         `json:"id"`
	Entities []LinkedEntity `json:"entities"`
	Warnings []Warning      `json:"warnings"`
}

// analyzeText sends one document of the given kind and returns the first
// document result, or a *DocumentError when the document was rejected.
func analyzeText[D any](ctx context.Context, c client, kind, text string) (D, error) {
	var zero D

	body := analyzeTextRequest{Kind: kind}
	body.AnalysisInput.Documents = []textDocument{{ID: analyzeTextDocumentID, Text: text}}

	result := &analyzeTextResponse[D]{}
	_, err := handleError(c.req(ctx, result).
		SetQueryParam("api-version", textAnalyticsVersion).
		SetBody(body).
		Post(analyzeTextPath))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", kind, err)
	}

	if len(result.Results.Errors) > 0 {
		e := result.Results.Errors[0]
		docErr := &DocumentError{ID: e.ID, Code: e.Error.Code, Message: e.Error.Message}
		if e.Error.InnerError != nil && e.Error.InnerError.Message != "" {
			docErr.Code = e.Error.InnerError.Code
			docErr.Message = e.Error.InnerError.Message
		}
		return zero, fmt.Errorf("%s: %w", kind, docErr)
	}
	if len(result.Results.Documents) == 0 {
		return zero, fmt.Errorf("%s: no document in response", kind)
	}

	return result.Results.Documents[0], nil
}

// DetectLanguage returns the primary language of text.
func (c *TextAnalyticsClient) DetectLanguage(ctx context.Context, text string) (DetectedLanguage, error) {
	doc, err := analyzeText[languageDocument](ctx, c.client, KindLanguageDetection, text)
	return doc.DetectedLanguage, err
}

// AnalyzeSentiment returns the document and sentence sentiment of text.
func (c *TextAnalyticsClient) AnalyzeSentiment(ctx context.Context, text string) (DocumentSentiment, error) {
	return analyzeText[DocumentSentiment](ctx, c.client, KindSentimentAnalysis, text)
}

// ExtractKeyPhrases returns the key phrases of text.
func (c *TextAnalyticsClient) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	doc, err := analyzeText[keyPhrasesDocument](ctx, c.client, KindKeyPhraseExtraction, text)
	return doc.KeyPhrases, err
}

// RecognizeEntities returns the named entities of text.
func (c *TextAnalyticsClient) RecognizeEntities(ctx context.Context, text string) ([]CategorizedEntity, error) {
	doc, err := analyzeText[entitiesDocument](ctx, c.client, KindEntityRecognition, text)
	return doc.Entities, err
}

// RecognizeLinkedEntities returns entities of text linked to a knowledge base.
func (c *TextAnalyticsClient) RecognizeLinkedEntities(ctx context.Context, text string) ([]LinkedEntity, error) {
	doc, err := analyzeText[linkedEntitiesDocument](ctx, c.client, KindEntityLinking, text)
	return doc.Entities, err
}
