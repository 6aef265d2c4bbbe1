package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
)

// Output files of the console image analysis.
const (
	ObjectsFile = "objects.jpg"
	PeopleFile  = "people.jpg"
)

const separator = "-------------"

// Console prints results as labelled lines.
type Console struct {
	w       io.Writer
	heading lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

// NewConsole returns a console renderer writing to w. Colors are only used
// when w is a terminal.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		heading: r.NewStyle().Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("196")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.w, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.w, format, a...)
}

// Document prints the heading of one analyzed document.
func (c *Console) Document(label, text string) {
	c.println()
	c.println(separator)
	c.println(c.heading.Render(label))
	c.println()
	c.println(text)
}

// Warning prints a notice about skipped input.
func (c *Console) Warning(msg string) {
	c.println(c.muted.Render(msg))
}

// Error prints a failure that is not tied to a capability.
func (c *Console) Error(err error) {
	c.println(c.failed.Render("Error: " + err.Error()))
}

// Text prints each requested capability of res on its own line.
func (c *Console) Text(res *textanalysis.Result) {
	for _, capability := range res.Requested {
		name, value := textLine(res, capability)
		if err := res.Err(capability); err != nil {
			c.printf("%s: %s\n", name, c.failed.Render(err.Error()))
			continue
		}
		c.printf("%s: %s\n", name, value)
	}
}

func textLine(res *textanalysis.Result, c textanalysis.Capability) (string, string) {
	switch c {
	case textanalysis.CapabilityLanguage:
		if res.Language == nil {
			return "Language", "Unknown"
		}
		return "Language", res.Language.Name
	case textanalysis.CapabilitySentiment:
		if res.Sentiment == nil {
			return "Sentiment", "Unknown"
		}
		return "Sentiment", res.Sentiment.Label
	case textanalysis.CapabilityKeyPhrases:
		return "Key Phrases", list(res.KeyPhrases)
	case textanalysis.CapabilityEntities:
		var names []string
		for _, e := range res.Entities {
			names = append(names, e.Text)
		}
		return "Entities", list(names)
	case textanalysis.CapabilityLinkedEntities:
		var names []string
		for _, e := range res.LinkedEntities {
			names = append(names, e.Name)
		}
		return "Linked Entities", list(names)
	}
	return string(c), ""
}

func list(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// Answer prints the best answer of resp.
func (c *Console) Answer(resp *qna.Response) {
	best := resp.Best()
	if best == nil {
		c.println(qna.NoAnswer)
		return
	}
	c.println(best.Text)
	c.println(c.muted.Render(fmt.Sprintf("Confidence: %s", formatScore(best.Confidence))))
	if best.Source != "" {
		c.println(c.muted.Render("Source: " + best.Source))
	}
}

// Image prints res and writes the annotated objects and people images of
// src into outDir. A file is only written when something was detected.
func (c *Console) Image(res *vision.Result, src []byte, outDir string) error {
	if res.Caption != nil {
		c.println()
		c.println(c.heading.Render("Caption:"))
		c.printf(" Caption: '%s' (confidence: %s)\n", res.Caption.Text, percent(res.Caption.Confidence))
	}

	if len(res.DenseCaptions) > 0 {
		c.println()
		c.println(c.heading.Render("Dense Captions:"))
		for _, dc := range res.DenseCaptions {
			c.printf(" Caption: '%s' (confidence: %s)\n", dc.Text, percent(dc.Confidence))
		}
	}

	if len(res.Tags) > 0 {
		c.println()
		c.println(c.heading.Render("Tags:"))
		for _, t := range res.Tags {
			c.printf(" Tag: '%s' (confidence: %s)\n", t.Name, percent(t.Confidence))
		}
	}

	if len(res.Objects) > 0 {
		c.println()
		c.println(c.heading.Render("Objects in image:"))
		for _, o := range res.Objects {
			c.printf(" %s (confidence: %s)\n", o.Name, percent(o.Confidence))
		}
		if err := c.save(src, vision.ObjectBoxes(res), filepath.Join(outDir, ObjectsFile)); err != nil {
			return err
		}
	}

	if len(res.People) > 0 {
		c.println()
		c.println(c.heading.Render("People in image:"))
		for _, p := range res.People {
			b := p.Box
			c.printf(" Person at (%d, %d, %d, %d) (confidence: %s)\n", b.X, b.Y, b.Width, b.Height, percent(p.Confidence))
		}
		if err := c.save(src, vision.PeopleBoxes(res, 0), filepath.Join(outDir, PeopleFile)); err != nil {
			return err
		}
	}

	return nil
}

func (c *Console) save(src []byte, boxes []vision.Box, path string) error {
	annotated, err := vision.Annotate(src, boxes)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, annotated, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	c.println("  Results saved in", path)
	return nil
}
