package render

import (
	"fmt"
	"strings"

	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
)

// Messages shown instead of results.
const (
	MsgEmptyText      = "Please enter some text or upload a file to analyze."
	MsgEmptyQuestion  = "Please enter a question."
	MsgEmptyImage     = "Please upload an image to analyze."
	MsgNoKeyPhrases   = "No key phrases found in the text."
	MsgNoEntities     = "No entities found in the text."
	MsgNoLinked       = "No linked entities found in the text."
	MsgAnalyzingImage = "Analyzing image..."
)

// WidgetKind is the type of a display element.
type WidgetKind string

const (
	KindHeader    WidgetKind = "header"
	KindSubheader WidgetKind = "subheader"
	KindText      WidgetKind = "text"
	KindInfo      WidgetKind = "info"
	KindWarning   WidgetKind = "warning"
	KindError     WidgetKind = "error"
	KindBarChart  WidgetKind = "bar_chart"
	KindTable     WidgetKind = "table"
	KindExpander  WidgetKind = "expander"
	KindImage     WidgetKind = "image"
)

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// Table is a simple table of strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Field is a labelled value inside an expander. URL makes it a link.
type Field struct {
	Name  string
	Value string
	URL   string
}

// Picture is an image to display.
type Picture struct {
	MIME    string
	Data    []byte
	Caption string
}

// Widget is one element of an interactive page. Which fields are set
// depends on Kind.
type Widget struct {
	Kind WidgetKind
	// Label is shown in bold before Text.
	Label  string
	Text   string
	Chart  []Bar
	Table  *Table
	Fields []Field
	Items  []string
	Image  *Picture
}

func subheader(text string) Widget { return Widget{Kind: KindSubheader, Text: text} }
func text(s string) Widget         { return Widget{Kind: KindText, Text: s} }
func info(text string) Widget      { return Widget{Kind: KindInfo, Text: text} }

func labelled(label, s string) Widget {
	return Widget{Kind: KindText, Label: label, Text: s}
}

// Warning is a widget for invalid user input.
func Warning(text string) Widget {
	return Widget{Kind: KindWarning, Text: text}
}

// Error is a widget for a failed call.
func Error(err error) Widget {
	return Widget{Kind: KindError, Text: "An error occurred: " + err.Error()}
}

// Failed is an error widget worded the way the image and question
// answering apps report a failed call.
func Failed(err error) Widget {
	return Widget{Kind: KindError, Text: "Error: " + err.Error()}
}

// Header is a page title widget.
func Header(text string) Widget {
	return Widget{Kind: KindHeader, Text: text}
}

// TextWidgets lays out a text analysis result section by section, in the
// order the capabilities ran. A failed capability becomes an error widget
// under its heading.
func TextWidgets(res *textanalysis.Result) []Widget {
	var w []Widget
	for _, c := range res.Requested {
		switch c {
		case textanalysis.CapabilityLanguage:
			w = append(w, subheader("Language Detection"))
			if err := res.Err(c); err != nil {
				w = append(w, Error(err))
				continue
			}
			w = append(w, text("Detected Language: "+res.Language.Name))

		case textanalysis.CapabilitySentiment:
			w = append(w, subheader("Sentiment Analysis"))
			if err := res.Err(c); err != nil {
				w = append(w, Error(err))
				continue
			}
			s := res.Sentiment
			w = append(w,
				text("Overall Sentiment: "+s.Label),
				Widget{Kind: KindBarChart, Chart: []Bar{
					{Label: "Positive", Value: s.Scores.Positive},
					{Label: "Neutral", Value: s.Scores.Neutral},
					{Label: "Negative", Value: s.Scores.Negative},
				}},
			)

		case textanalysis.CapabilityKeyPhrases:
			if err := res.Err(c); err != nil {
				w = append(w, subheader("Key Phrases"), Error(err))
				continue
			}
			if len(res.KeyPhrases) == 0 {
				w = append(w, info(MsgNoKeyPhrases))
				continue
			}
			w = append(w, subheader("Key Phrases"), text(strings.Join(res.KeyPhrases, ", ")))

		case textanalysis.CapabilityEntities:
			if err := res.Err(c); err != nil {
				w = append(w, subheader("Entities"), Error(err))
				continue
			}
			if len(res.Entities) == 0 {
				w = append(w, info(MsgNoEntities))
				continue
			}
			t := &Table{Columns: []string{"Text", "Category", "Confidence"}}
			for _, e := range res.Entities {
				t.Rows = append(t.Rows, []string{e.Text, e.Category, fmt.Sprintf("%.2f", e.Confidence)})
			}
			w = append(w, subheader("Entities"), Widget{Kind: KindTable, Table: t})

		case textanalysis.CapabilityLinkedEntities:
			if err := res.Err(c); err != nil {
				w = append(w, subheader("Linked Entities"), Error(err))
				continue
			}
			if len(res.LinkedEntities) == 0 {
				w = append(w, info(MsgNoLinked))
				continue
			}
			w = append(w, subheader("Linked Entities"))
			for _, e := range res.LinkedEntities {
				w = append(w, linkedEntityExpander(e))
			}
		}
	}
	return w
}

func linkedEntityExpander(e textanalysis.LinkedEntity) Widget {
	var matches []string
	for _, m := range e.Matches {
		matches = append(matches, fmt.Sprintf("Text: '%s' (Confidence: %.2f) Offset: %d, Length: %d",
			m.Text, m.Confidence, m.Offset, m.Length))
	}
	return Widget{
		Kind: KindExpander,
		Text: fmt.Sprintf("%s (%.2f)", e.Name, e.Confidence()),
		Fields: []Field{
			{Name: "Name", Value: e.Name},
			{Name: "Data Source", Value: e.DataSource},
			{Name: "URL", Value: e.URL, URL: e.URL},
			{Name: "Data Source Entity ID", Value: e.DataSourceID},
			{Name: "Language", Value: e.Language},
		},
		Items: matches,
	}
}

// AnswerWidgets shows the best answer and its confidence.
func AnswerWidgets(resp *qna.Response) []Widget {
	best := resp.Best()
	if best == nil {
		return []Widget{text(qna.NoAnswer)}
	}
	return []Widget{
		labelled("Answer:", best.Text),
		labelled("Confidence Score:", formatScore(best.Confidence)),
	}
}

// ImageWidgets lays out an image analysis result. src is the analyzed image,
// used for the annotated previews.
func ImageWidgets(res *vision.Result, src []byte) []Widget {
	var w []Widget
	if res.Caption != nil {
		w = append(w, labelled("Caption:", captionText(*res.Caption)))
	}
	if len(res.DenseCaptions) > 0 {
		w = append(w, labelled("Dense Captions:", ""))
		for _, c := range res.DenseCaptions {
			w = append(w, text("Caption: "+captionText(c)))
		}
	}
	if len(res.Tags) > 0 {
		w = append(w, labelled("Tags:", ""))
		for _, t := range res.Tags {
			w = append(w, text(fmt.Sprintf("Tag: '%s' (Confidence: %s)", t.Name, percent(t.Confidence))))
		}
	}
	if len(res.Objects) > 0 {
		w = append(w, labelled("Objects in the image:", ""))
		for _, o := range res.Objects {
			w = append(w, text(fmt.Sprintf("Object: %s (Confidence: %s)", o.Name, percent(o.Confidence))))
		}
		w = append(w, preview(src, vision.ObjectBoxes(res), "Objects detected"))
	}
	if len(res.People) > 0 {
		w = append(w, labelled("People detected in the image:", ""))
		w = append(w, preview(src, vision.PeopleBoxes(res, 0), "People detected"))
	}
	return w
}

func preview(src []byte, boxes []vision.Box, caption string) Widget {
	annotated, err := vision.Annotate(src, boxes)
	if err != nil {
		return Error(err)
	}
	return Widget{Kind: KindImage, Image: &Picture{MIME: "image/jpeg", Data: annotated, Caption: caption}}
}

func captionText(c vision.Caption) string {
	return fmt.Sprintf("'%s' (Confidence: %s)", c.Text, percent(c.Confidence))
}

// percent formats a [0,1] confidence as a percentage with two decimals.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
