package content

import (
	"time"

	"github.com/Zachkp/portfolio/internal/typing"
	"gopkg.in/yaml.v3"
)

// Phrases accepts either a single string or a list in YAML.
type Phrases []string

func (p *Phrases) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = Phrases{s}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*p = list
	return nil
}

// SpeedRangeSpec is a per-character typing delay range in milliseconds.
type SpeedRangeSpec struct {
	MinMs int `yaml:"min_ms" json:"min_ms"`
	MaxMs int `yaml:"max_ms" json:"max_ms"`
}

// TypingSpec is the YAML form of a typing.Config. Durations are in
// milliseconds; unset keys take the DefaultTypingSpec values.
type TypingSpec struct {
	Phrases               Phrases         `yaml:"phrases" json:"phrases"`
	TypingSpeedMs         int             `yaml:"typing_speed_ms" json:"typing_speed_ms"`
	DeletingSpeedMs       int             `yaml:"deleting_speed_ms" json:"deleting_speed_ms"`
	PauseDurationMs       int             `yaml:"pause_duration_ms" json:"pause_duration_ms"`
	InitialDelayMs        int             `yaml:"initial_delay_ms" json:"initial_delay_ms"`
	Loop                  bool            `yaml:"loop" json:"loop"`
	ShowCursor            bool            `yaml:"show_cursor" json:"show_cursor"`
	CursorCharacter       string          `yaml:"cursor_character" json:"cursor_character"`
	CursorBlinkMs         int             `yaml:"cursor_blink_ms" json:"cursor_blink_ms"`
	HideCursorWhileTyping bool            `yaml:"hide_cursor_while_typing" json:"hide_cursor_while_typing"`
	VariableSpeed         *SpeedRangeSpec `yaml:"variable_speed" json:"variable_speed,omitempty"`
}

// DefaultTypingSpec holds the values a sequence gets for keys it omits.
func DefaultTypingSpec() TypingSpec {
	return TypingSpec{
		TypingSpeedMs:   50,
		DeletingSpeedMs: 30,
		PauseDurationMs: 2000,
		Loop:            true,
		ShowCursor:      true,
		CursorCharacter: typing.DefaultCursor,
		CursorBlinkMs:   500,
	}
}

func (s *TypingSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain TypingSpec
	spec := plain(DefaultTypingSpec())
	if err := node.Decode(&spec); err != nil {
		return err
	}
	*s = TypingSpec(spec)
	return nil
}

// Config converts the spec. Callbacks are left for the caller to attach.
func (s TypingSpec) Config() typing.Config {
	cfg := typing.Config{
		Phrases:               []string(s.Phrases),
		TypingSpeed:           millis(s.TypingSpeedMs),
		DeletingSpeed:         millis(s.DeletingSpeedMs),
		PauseDuration:         millis(s.PauseDurationMs),
		InitialDelay:          millis(s.InitialDelayMs),
		Loop:                  s.Loop,
		ShowCursor:            s.ShowCursor,
		CursorCharacter:       s.CursorCharacter,
		CursorBlinkInterval:   millis(s.CursorBlinkMs),
		HideCursorWhileTyping: s.HideCursorWhileTyping,
	}
	if v := s.VariableSpeed; v != nil {
		cfg.VariableSpeed = &typing.SpeedRange{Min: millis(v.MinMs), Max: millis(v.MaxMs)}
	}
	return cfg
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
