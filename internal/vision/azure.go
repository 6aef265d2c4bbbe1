package vision

import (
	"context"

	"github.com/pranav-c01/ICT-Training/internal/azure"
)

// AzureAnalyzer implements Analyzer with Image Analysis 4.0.
type AzureAnalyzer struct {
	client *azure.ImageAnalysisClient
	opts   azure.ImageAnalysisOptions
}

var _ Analyzer = (*AzureAnalyzer)(nil)

func NewAzureAnalyzer(client *azure.ImageAnalysisClient, opts azure.ImageAnalysisOptions) *AzureAnalyzer {
	return &AzureAnalyzer{client: client, opts: opts}
}

func (a *AzureAnalyzer) Analyze(ctx context.Context, image []byte, features []Feature) (*Result, error) {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}

	res, err := a.client.Analyze(ctx, image, names, a.opts)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Width:        res.Metadata.Width,
		Height:       res.Metadata.Height,
		ModelVersion: res.ModelVersion,
	}
	if res.CaptionResult != nil {
		c := caption(*res.CaptionResult)
		out.Caption = &c
	}
	if res.DenseCaptionsResult != nil {
		for _, c := range res.DenseCaptionsResult.Values {
			out.DenseCaptions = append(out.DenseCaptions, caption(c))
		}
	}
	if res.TagsResult != nil {
		for _, t := range res.TagsResult.Values {
			out.Tags = append(out.Tags, Tag{Name: t.Name, Confidence: t.Confidence})
		}
	}
	if res.ObjectsResult != nil {
		for _, o := range res.ObjectsResult.Values {
			obj := Object{Box: box(o.BoundingBox)}
			if len(o.Tags) > 0 {
				obj.Name = o.Tags[0].Name
				obj.Confidence = o.Tags[0].Confidence
			}
			out.Objects = append(out.Objects, obj)
		}
	}
	if res.PeopleResult != nil {
		for _, p := range res.PeopleResult.Values {
			out.People = append(out.People, Person{Confidence: p.Confidence, Box: box(p.BoundingBox)})
		}
	}
	return out, nil
}

func box(b azure.ImageBoundingBox) BoundingBox {
	return BoundingBox{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}

func caption(c azure.CaptionResult) Caption {
	out := Caption{Text: c.Text, Confidence: c.Confidence}
	if c.BoundingBox != nil {
		b := box(*c.BoundingBox)
		out.Box = &b
	}
	return out
}
