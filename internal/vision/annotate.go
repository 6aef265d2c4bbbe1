package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	// Decoders for the formats the service accepts.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	boxLineWidth = 3
	labelPadding = 2
	jpegQuality  = 90
)

// BoxColor is the outline and label background color.
var BoxColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}

// Box is a rectangle to draw, with an optional label.
type Box struct {
	BoundingBox
	Label string
}

// ObjectBoxes returns one labelled box per detected object.
func ObjectBoxes(r *Result) []Box {
	if r == nil {
		return nil
	}
	boxes := make([]Box, 0, len(r.Objects))
	for _, o := range r.Objects {
		boxes = append(boxes, Box{BoundingBox: o.Box, Label: o.Name})
	}
	return boxes
}

// PeopleBoxes returns one unlabelled box per detected person whose
// confidence is at least minConfidence.
func PeopleBoxes(r *Result, minConfidence float64) []Box {
	if r == nil {
		return nil
	}
	var boxes []Box
	for _, p := range r.People {
		if p.Confidence < minConfidence {
			continue
		}
		boxes = append(boxes, Box{BoundingBox: p.Box})
	}
	return boxes
}

// Annotate decodes src, draws boxes onto a copy of it and returns the copy
// encoded as JPEG. Boxes are clipped to the image bounds.
func Annotate(src []byte, boxes []Box) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, annotate(img, boxes), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func annotate(img image.Image, boxes []Box) *image.RGBA {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	for _, b := range boxes {
		rect := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height).
			Add(bounds.Min).
			Intersect(bounds)
		if rect.Empty() {
			continue
		}
		drawOutline(canvas, rect, boxLineWidth)
		if b.Label != "" {
			drawLabel(canvas, rect.Min, b.Label)
		}
	}
	return canvas
}

// drawOutline strokes the inside edge of r with lines of width w.
func drawOutline(dst draw.Image, r image.Rectangle, w int) {
	fill := image.NewUniform(BoxColor)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), fill, image.Point{}, draw.Src)
	}
}

// drawLabel writes text on a filled background whose top-left corner is at.
func drawLabel(dst draw.Image, at image.Point, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	height := face.Metrics().Height.Ceil()

	bg := image.Rect(at.X, at.Y, at.X+width+2*labelPadding, at.Y+height+2*labelPadding).
		Intersect(dst.Bounds())
	draw.Draw(dst, bg, image.NewUniform(BoxColor), image.Point{}, draw.Src)

	d.Dot = fixed.P(at.X+labelPadding, at.Y+labelPadding+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
