// Package server serves the portfolio page, its HTMX section fragments, the
// contact form, and live typing streams.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

// Options wires a Server. Store is required; everything else has a default.
type Options struct {
	Store         *content.Store
	Submitter     *contact.Submitter
	Clock         typing.Clock
	Logger        logrus.FieldLogger
	RequestLogger *logging.RequestLogger
}

// Server is the site's HTTP front end.
type Server struct {
	store     *content.Store
	submitter *contact.Submitter
	clock     typing.Clock
	log       logrus.FieldLogger
	engine    *gin.Engine
}

// New builds the gin engine and registers every route.
func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Store.Current() == nil {
		return nil, errors.New("server: content store is empty")
	}
	s := &Server{
		store:     opts.Store,
		submitter: opts.Submitter,
		clock:     opts.Clock,
		log:       opts.Logger,
	}
	if s.clock == nil {
		s.clock = typing.NewRealClock()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.submitter == nil {
		s.submitter = contact.NewSubmitter(0, s.clock, s.log)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("error loading static files: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.RequestLogger != nil {
		r.Use(opts.RequestLogger.Middleware())
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/sections/:name", s.section)

	// HTMX contact form endpoints
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)

	r.GET("/typing/:name", s.streamTyping)
	r.GET("/typing/:name/config", s.typingConfig)

	s.engine = r
	return s, nil
}

// Handler exposes the engine, mainly for tests.
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

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down: %w", err)
	}
	return nil
}
