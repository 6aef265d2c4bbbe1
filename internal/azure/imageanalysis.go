package azure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	imageAnalyzePath     = "/computervision/imageanalysis:analyze"
	imageAnalysisVersion = "2024-02-01"
)

// Visual features of the Image Analysis 4.0 API.
const (
	FeatureCaption       = "caption"
	FeatureDenseCaptions = "denseCaptions"
	FeatureTags          = "tags"
	FeatureObjects       = "objects"
	FeaturePeople        = "people"
)

// ImageAnalysisClient calls the Image Analysis 4.0 analyze API.
type ImageAnalysisClient struct {
	client
}

// NewImageAnalysisClient creates a client. No request is made.
func NewImageAnalysisClient(opts ClientOpts) *ImageAnalysisClient {
	return &ImageAnalysisClient{client: newClient(opts)}
}

// ImageAnalysisOptions are optional query parameters.
type ImageAnalysisOptions struct {
	Language             string
	GenderNeutralCaption bool
}

// ImageBoundingBox is a pixel rectangle in the analyzed image.
type ImageBoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// CaptionResult is a generated caption.
type CaptionResult struct {
	Text        string            `json:"text"`
	Confidence  float64           `json:"confidence"`
	BoundingBox *ImageBoundingBox `json:"boundingBox,omitempty"`
}

// DetectedTag is a content tag or an object label.
type DetectedTag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// DetectedObject is an object with its location.
type DetectedObject struct {
	BoundingBox ImageBoundingBox `json:"boundingBox"`
	Tags        []DetectedTag    `json:"tags"`
}

// DetectedPerson is a person with its location.
type DetectedPerson struct {
	BoundingBox ImageBoundingBox `json:"boundingBox"`
	Confidence  float64          `json:"confidence"`
}

// ImageMetadata holds the dimensions of the analyzed image.
type ImageMetadata struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageAnalysisResult mirrors the analyze response. Each sub-result is nil
// when the feature was not requested.
type ImageAnalysisResult struct {
	ModelVersion        string         `json:"modelVersion"`
	Metadata            ImageMetadata  `json:"metadata"`
	CaptionResult       *CaptionResult `json:"captionResult,omitempty"`
	DenseCaptionsResult *struct {
		Values []CaptionResult `json:"values"`
	} `json:"denseCaptionsResult,omitempty"`
	TagsResult *struct {
		Values []DetectedTag `json:"values"`
	} `json:"tagsResult,omitempty"`
	ObjectsResult *struct {
		Values []DetectedObject `json:"values"`
	} `json:"objectsResult,omitempty"`
	PeopleResult *struct {
		Values []DetectedPerson `json:"values"`
	} `json:"peopleResult,omitempty"`
}

// Analyze sends the image bytes with the requested features in one call.
func (c *ImageAnalysisClient) Analyze(ctx context.Context, image []byte, features []string, opts ImageAnalysisOptions) (ImageAnalysisResult, error) {
	if len(features) == 0 {
		return ImageAnalysisResult{}, errors.New("analyze image: at least one feature is required")
	}

	params := map[string]string{
		"api-version": imageAnalysisVersion,
		"features":    strings.Join(features, ","),
	}
	if opts.Language != "" {
		params["language"] = opts.Language
	}
	if opts.GenderNeutralCaption {
		params["gender-neutral-caption"] = strconv.FormatBool(true)
	}

	result := &ImageAnalysisResult{}
	_, err := handleError(c.req(ctx, result).
		SetQueryParams(params).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(image).
		Post(imageAnalyzePath))
	if err != nil {
		return ImageAnalysisResult{}, fmt.Errorf("analyze image: %w", err)
	}
	return *result, nil
}
