package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav-c01/ICT-Training/internal/input"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/render"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
	"github.com/rs/zerolog/log"
)

const (
	textTitle  = "Azure Text Analytics App"
	qnaTitle   = "Azure QnA App"
	imageTitle = "Azure Vision API Image Analysis"

	modeTyped  = "typed"
	modeUpload = "upload"

	// room for the multipart envelope around the file
	formOverhead   = 1 << 20
	textBodyLimit  = input.MaxTextSize + formOverhead
	imageBodyLimit = input.MaxImageSize + formOverhead
)

type page struct {
	Title    string
	Apps     []appLink
	Mode     string
	Text     string
	Question string
	Widgets  []render.Widget
}

func (s *Server) render(c *gin.Context, name string, p page) {
	p.Apps = s.links
	c.HTML(http.StatusOK, name, p)
}

func (s *Server) textForm(c *gin.Context) {
	s.render(c, "text.tmpl", page{Title: textTitle, Mode: modeTyped})
}

func (s *Server) analyzeText(c *gin.Context) {
	p := page{Title: textTitle, Mode: modeTyped}
	if err := parseForm(c); err != nil {
		p.Widgets = []render.Widget{uploadWarning(err, render.MsgEmptyText, input.ErrTextTooLarge)}
		s.render(c, "text.tmpl", p)
		return
	}
	p.Mode = c.DefaultPostForm("mode", modeTyped)

	var src input.Source
	switch p.Mode {
	case modeUpload:
		file, err := c.FormFile("file")
		if err != nil {
			p.Widgets = []render.Widget{uploadWarning(err, render.MsgEmptyText, input.ErrTextTooLarge)}
			s.render(c, "text.tmpl", p)
			return
		}
		src, err = readUpload(file, func(f multipart.File) (input.Source, error) {
			return input.ReadText(file.Filename, f, input.MaxTextSize)
		})
		if err != nil {
			p.Widgets = []render.Widget{render.Warning(err.Error())}
			s.render(c, "text.tmpl", p)
			return
		}
	default:
		p.Mode = modeTyped
		p.Text = c.PostForm("text")
		src = input.FromText(p.Text)
	}

	for doc, err := range src.Documents() {
		if err != nil {
			p.Widgets = append(p.Widgets, render.Error(err))
			continue
		}
		res, err := textanalysis.Analyze(c.Request.Context(), s.apps.Text, doc.Text())
		if errors.Is(err, textanalysis.ErrEmptyText) {
			p.Widgets = append(p.Widgets, render.Warning(render.MsgEmptyText))
			continue
		}
		if err != nil {
			p.Widgets = append(p.Widgets, render.Error(err))
			continue
		}
		for _, f := range res.Failures {
			log.Warn().Err(f.Err).Str("capability", string(f.Capability)).Msg("text analysis failed")
		}
		p.Widgets = append(p.Widgets, render.TextWidgets(res)...)
	}

	s.render(c, "text.tmpl", p)
}

func (s *Server) qnaForm(c *gin.Context) {
	s.render(c, "qna.tmpl", page{Title: qnaTitle})
}

func (s *Server) askQuestion(c *gin.Context) {
	p := page{Title: qnaTitle, Question: c.PostForm("question")}

	resp, err := qna.Ask(c.Request.Context(), s.apps.QnA, p.Question)
	switch {
	case errors.Is(err, qna.ErrEmptyQuestion):
		p.Widgets = []render.Widget{render.Warning(render.MsgEmptyQuestion)}
	case err != nil:
		log.Error().Err(err).Msg("question answering failed")
		p.Widgets = []render.Widget{render.Failed(err)}
	default:
		p.Widgets = render.AnswerWidgets(resp)
	}

	s.render(c, "qna.tmpl", p)
}

func (s *Server) imageForm(c *gin.Context) {
	s.render(c, "image.tmpl", page{Title: imageTitle})
}

func (s *Server) analyzeImage(c *gin.Context) {
	p := page{Title: imageTitle}
	if err := parseForm(c); err != nil {
		p.Widgets = []render.Widget{uploadWarning(err, render.MsgEmptyImage, input.ErrImageTooLarge)}
		s.render(c, "image.tmpl", p)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		p.Widgets = []render.Widget{uploadWarning(err, render.MsgEmptyImage, input.ErrImageTooLarge)}
		s.render(c, "image.tmpl", p)
		return
	}

	img, err := readUpload(file, func(f multipart.File) (input.Image, error) {
		return input.ReadImage(file.Filename, f, input.MaxImageSize)
	})
	if errors.Is(err, input.ErrEmptyImage) {
		p.Widgets = []render.Widget{render.Warning(render.MsgEmptyImage)}
		s.render(c, "image.tmpl", p)
		return
	}
	if err != nil {
		p.Widgets = []render.Widget{render.Warning(err.Error())}
		s.render(c, "image.tmpl", p)
		return
	}

	p.Widgets = append(p.Widgets, render.Widget{Kind: render.KindText, Text: render.MsgAnalyzingImage})
	res, err := vision.Analyze(c.Request.Context(), s.apps.Image, img.Data)
	if err != nil {
		log.Error().Err(err).Str("image", img.Name).Msg("image analysis failed")
		p.Widgets = append(p.Widgets, render.Failed(err))
	} else {
		p.Widgets = append(p.Widgets, render.ImageWidgets(res, img.Data)...)
	}

	s.render(c, "image.tmpl", p)
}

func readUpload[T any](file *multipart.FileHeader, read func(multipart.File) (T, error)) (T, error) {
	f, err := file.Open()
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f)
}

// parseForm reads the whole body up front so that a body over the route's
// limit is reported before any field is looked up. Url-encoded forms are
// parsed too.
func parseForm(c *gin.Context) error {
	_, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// uploadWarning explains why no file could be taken from the form.
func uploadWarning(err error, missing string, tooLarge error) render.Widget {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return render.Warning(tooLarge.Error())
	}
	return render.Warning(missing)
}
