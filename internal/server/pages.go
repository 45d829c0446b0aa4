package server

import (
	"net/http"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/gin-gonic/gin"
)

// sections lists the fragments served under /sections/:name.
var sections = map[string]bool{
	"nav":        true,
	"hero":       true,
	"about":      true,
	"education":  true,
	"skills":     true,
	"projects":   true,
	"experience": true,
	"contact":    true,
	"footer":     true,
}

// typingView is the server-rendered fallback for an animated line: the
// resting text is shown until the stream takes over.
type typingView struct {
	Name            string
	Resting         string
	Cursor          string
	BlinkMs         int
	HideWhileTyping bool
	// IsSplash marks the line whose completion reveals the page.
	IsSplash      bool
	RevealAfterMs int
}

type pageData struct {
	*content.Content
	SplashTyping *typingView
	HeroTyping   *typingView
}

func (s *Server) buildPage() pageData {
	c := s.store.Current()
	d := pageData{Content: c}
	d.SplashTyping = s.buildTypingView(c, c.Splash.Typing)
	if d.SplashTyping != nil {
		d.SplashTyping.IsSplash = true
		d.SplashTyping.RevealAfterMs = c.Splash.RevealAfterMs
	}
	d.HeroTyping = s.buildTypingView(c, c.Hero.Typing)
	return d
}

func (s *Server) buildTypingView(c *content.Content, name string) *typingView {
	if name == "" {
		return nil
	}
	cfg, ok := c.TypingConfig(name)
	if !ok {
		s.log.WithField("typing", name).Warn("Section refers to an unknown typing sequence")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		s.log.WithError(err).WithField("typing", name).Warn("Typing sequence is misconfigured, rendering it static")
	}
	v := &typingView{
		Name:    name,
		Resting: cfg.RestingText(),
	}
	if cfg.ShowCursor {
		v.Cursor = cfg.CursorCharacter
		if v.Cursor == "" {
			v.Cursor = typing.DefaultCursor
		}
		v.BlinkMs = int(cfg.CursorBlinkInterval.Milliseconds())
		v.HideWhileTyping = cfg.HideCursorWhileTyping
	}
	return v
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.buildPage())
}

func (s *Server) section(c *gin.Context) {
	name := c.Param("name")
	if !sections[name] {
		c.String(http.StatusNotFound, "unknown section %q", name)
		return
	}
	c.HTML(http.StatusOK, name, s.buildPage())
}
