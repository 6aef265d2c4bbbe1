// Package web serves the interactive text, question answering and image
// analysis pages.
package web

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

//go:embed templates/*.tmpl
var templateFS embed.FS

// Apps holds the analyzers of the enabled apps. A nil field disables the
// matching page.
type Apps struct {
	Text  textanalysis.Analyzer
	QnA   qna.Answerer
	Image vision.Analyzer
}

type appLink struct {
	Path  string
	Title string
}

// Server hosts the apps.
type Server struct {
	apps   Apps
	links  []appLink
	engine *gin.Engine
}

var funcs = template.FuncMap{
	// dataURI embeds image bytes into an <img> src.
	"dataURI": func(mime string, data []byte) template.URL {
		return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
	},
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

// New builds the gin engine with a route per enabled app.
func New(apps Apps) *Server {
	s := &Server{apps: apps}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.SetHTMLTemplate(parseTemplates())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if apps.Text != nil {
		s.links = append(s.links, appLink{Path: "/text", Title: textTitle})
		r.GET("/text", s.textForm)
		r.POST("/text", limitBody(textBodyLimit), s.analyzeText)
	}
	if apps.QnA != nil {
		s.links = append(s.links, appLink{Path: "/qna", Title: qnaTitle})
		r.GET("/qna", s.qnaForm)
		r.POST("/qna", s.askQuestion)
	}
	if apps.Image != nil {
		s.links = append(s.links, appLink{Path: "/image", Title: imageTitle})
		r.GET("/image", s.imageForm)
		r.POST("/image", limitBody(imageBodyLimit), s.analyzeImage)
	}

	r.GET("/", s.index)

	s.engine = r
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("web server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title": "AI services lab",
		"Apps":  s.links,
	})
}
