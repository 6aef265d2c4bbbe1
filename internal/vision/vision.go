package vision

import (
	"context"
	"errors"
)

// ErrEmptyImage is returned when no image bytes were provided.
var ErrEmptyImage = errors.New("image is empty")

// Feature is a visual feature the service can extract.
type Feature string

const (
	FeatureCaption       Feature = "caption"
	FeatureDenseCaptions Feature = "denseCaptions"
	FeatureTags          Feature = "tags"
	FeatureObjects       Feature = "objects"
	FeaturePeople        Feature = "people"
)

// DefaultFeatures is what the console and web apps request.
var DefaultFeatures = []Feature{
	FeatureCaption,
	FeatureDenseCaptions,
	FeatureTags,
	FeatureObjects,
	FeaturePeople,
}

// BoundingBox is a rectangle in image pixels.
type BoundingBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Caption is a generated description of the image or of a region.
type Caption struct {
	Text       string
	Confidence float64
	Box        *BoundingBox
}

// Tag is a content tag.
type Tag struct {
	Name       string
	Confidence float64
}

// Object is a detected object. Name is the first tag of the detection.
type Object struct {
	Name       string
	Confidence float64
	Box        BoundingBox
}

// Person is a detected person.
type Person struct {
	Confidence float64
	Box        BoundingBox
}

// Result is the analysis of one image. Slices are empty when the feature
// was not requested or nothing was detected.
type Result struct {
	Caption       *Caption
	DenseCaptions []Caption
	Tags          []Tag
	Objects       []Object
	People        []Person
	Width         int
	Height        int
	ModelVersion  string
}

// Analyzer analyzes an image with one remote call.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, features []Feature) (*Result, error)
}

// Analyze runs a on image. Empty input returns ErrEmptyImage without calling
// a. With no features DefaultFeatures are requested.
func Analyze(ctx context.Context, a Analyzer, image []byte, features ...Feature) (*Result, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if len(features) == 0 {
		features = DefaultFeatures
	}
	return a.Analyze(ctx, image, features)
}
