// Package content loads the site's copy and typing configuration from YAML.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidContent is wrapped by every ValidationError.
var ErrInvalidContent = errors.New("invalid content")

// ValidationError points at the offending key.
type ValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid content: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid content: %s: %s", e.Path, e.Reason)
}

// Is lets errors.Is match ErrInvalidContent through any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContent
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Content is the whole page.
type Content struct {
	Site       Site                  `yaml:"site" json:"site"`
	Splash     Splash                `yaml:"splash" json:"splash"`
	Hero       Hero                  `yaml:"hero" json:"hero"`
	About      About                 `yaml:"about" json:"about"`
	Education  []Education           `yaml:"education" json:"education"`
	Skills     []Skill               `yaml:"skills" json:"skills"`
	Projects   []Project             `yaml:"projects" json:"projects"`
	Experience []Experience          `yaml:"experience" json:"experience"`
	Contact    Contact               `yaml:"contact" json:"contact"`
	Footer     Footer                `yaml:"footer" json:"footer"`
	Typing     map[string]TypingSpec `yaml:"typing" json:"typing"`
}

type Site struct {
	Title string `yaml:"title" json:"title"`
	Owner string `yaml:"owner" json:"owner"`
	Role  string `yaml:"role" json:"role"`
}

// Splash is the full-screen intro shown before the page.
type Splash struct {
	Typing        string `yaml:"typing" json:"typing"`
	RevealAfterMs int    `yaml:"reveal_after_ms" json:"reveal_after_ms"`
}

type Hero struct {
	Greeting     string `yaml:"greeting" json:"greeting"`
	Typing       string `yaml:"typing" json:"typing"`
	Tagline      string `yaml:"tagline" json:"tagline"`
	Description  string `yaml:"description" json:"description"`
	CallToAction string `yaml:"call_to_action" json:"call_to_action"`
	Socials      []Link `yaml:"socials" json:"socials"`
}

type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type About struct {
	Intro   string   `yaml:"intro" json:"intro"`
	WhyHire []string `yaml:"why_hire" json:"why_hire"`
}

type Education struct {
	Name       string `yaml:"name" json:"name"`
	University string `yaml:"university" json:"university"`
	Percentage string `yaml:"percentage" json:"percentage"`
	Batch      string `yaml:"batch" json:"batch"`
	Degree     string `yaml:"degree" json:"degree"`
}

type Skill struct {
	Name string `yaml:"name" json:"name"`
	Logo string `yaml:"logo" json:"logo"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Short       string   `yaml:"short" json:"short,omitempty"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	Live        string   `yaml:"live" json:"live,omitempty"`
	Repo        string   `yaml:"repo" json:"repo,omitempty"`
}

// Summary is the short blurb, falling back to the description.
func (p Project) Summary() string {
	if p.Short != "" {
		return p.Short
	}
	return p.Description
}

type Experience struct {
	Title    string   `yaml:"title" json:"title"`
	Company  string   `yaml:"company" json:"company"`
	Period   string   `yaml:"period" json:"period"`
	Duration string   `yaml:"duration" json:"duration"`
	Bullets  []string `yaml:"bullets" json:"bullets"`
}

type Contact struct {
	Heading  string `yaml:"heading" json:"heading"`
	Blurb    string `yaml:"blurb" json:"blurb"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
}

type Footer struct {
	Note    string `yaml:"note" json:"note"`
	Socials []Link `yaml:"socials" json:"socials"`
}

// Default returns the built-in content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load reads and validates a content file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks references between sections and every typing block.
func (c *Content) Validate() error {
	if c.Site.Owner == "" {
		return &ValidationError{Path: "site.owner", Reason: "required"}
	}
	for _, name := range c.TypingNames() {
		if err := c.Typing[name].Config().Validate(); err != nil {
			return &ValidationError{Path: "typing." + name, Reason: "bad timing", Err: err}
		}
	}
	if c.Hero.Typing != "" {
		if _, ok := c.Typing[c.Hero.Typing]; !ok {
			return &ValidationError{Path: "hero.typing", Reason: fmt.Sprintf("unknown typing %q", c.Hero.Typing)}
		}
	}
	if c.Splash.Typing != "" {
		spec, ok := c.Typing[c.Splash.Typing]
		if !ok {
			return &ValidationError{Path: "splash.typing", Reason: fmt.Sprintf("unknown typing %q", c.Splash.Typing)}
		}
		// The page is revealed when the splash completes; a loop never does.
		if spec.Loop {
			return &ValidationError{Path: "splash.typing", Reason: "splash sequence must not loop"}
		}
	}
	if c.Splash.RevealAfterMs < 0 {
		return &ValidationError{Path: "splash.reveal_after_ms", Reason: "negative"}
	}
	for i, p := range c.Projects {
		if p.Title == "" {
			return &ValidationError{Path: fmt.Sprintf("projects[%d].title", i), Reason: "required"}
		}
	}
	if c.Contact.Email != "" {
		if err := validate.Var(c.Contact.Email, "email"); err != nil {
			return &ValidationError{Path: "contact.email", Reason: "not an address", Err: err}
		}
	}
	return nil
}

// TypingNames lists the configured typing sequences in name order.
func (c *Content) TypingNames() []string {
	names := make([]string, 0, len(c.Typing))
	for name := range c.Typing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypingConfig resolves a named typing sequence.
func (c *Content) TypingConfig(name string) (typing.Config, bool) {
	spec, ok := c.Typing[name]
	if !ok {
		return typing.Config{}, false
	}
	return spec.Config(), true
}

// RevealAfter is how long the page waits after the splash finishes.
func (s Splash) RevealAfter() time.Duration {
	return time.Duration(s.RevealAfterMs) * time.Millisecond
}
