package typing

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// DefaultCursor is drawn when ShowCursor is set and no character is given.
const DefaultCursor = "|"

// ErrInvalidConfig is wrapped by every configuration rejection.
var ErrInvalidConfig = errors.New("typing: invalid configuration")

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("typing: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// SpeedRange draws each typing delay uniformly from [Min, Max].
type SpeedRange struct {
	Min time.Duration
	Max time.Duration
}

// Config describes one animated text display.
type Config struct {
	Phrases       []string
	TypingSpeed   time.Duration
	DeletingSpeed time.Duration
	PauseDuration time.Duration
	InitialDelay  time.Duration
	Loop          bool

	ShowCursor            bool
	CursorCharacter       string
	CursorBlinkInterval   time.Duration // 0 keeps the cursor steady
	HideCursorWhileTyping bool
	VariableSpeed         *SpeedRange

	// OnChange receives every new frame.
	OnChange func(Frame)
	// OnSequenceAdvance fires after a phrase has been typed, paused on and
	// erased, with the index of the phrase that comes next.
	OnSequenceAdvance func(next int)
	// OnAllComplete fires once, when a non-looping sequence finishes typing
	// its final phrase.
	OnAllComplete func()
}

// Validate rejects negative durations and inverted speed ranges.
func (c Config) Validate() error {
	durations := []struct {
		field string
		d     time.Duration
	}{
		{"typing speed", c.TypingSpeed},
		{"deleting speed", c.DeletingSpeed},
		{"pause duration", c.PauseDuration},
		{"initial delay", c.InitialDelay},
		{"cursor blink interval", c.CursorBlinkInterval},
	}
	for _, d := range durations {
		if d.d < 0 {
			return &ConfigError{Field: d.field, Reason: fmt.Sprintf("negative duration %s", d.d)}
		}
	}
	if v := c.VariableSpeed; v != nil {
		if v.Min < 0 || v.Max < 0 {
			return &ConfigError{Field: "variable speed", Reason: "negative bound"}
		}
		if v.Min > v.Max {
			return &ConfigError{Field: "variable speed", Reason: fmt.Sprintf("min %s exceeds max %s", v.Min, v.Max)}
		}
	}
	return nil
}

// RestingText is what a display without animation should show: the first
// phrase of a loop, or the phrase a one-shot sequence ends on.
func (c Config) RestingText() string {
	if len(c.Phrases) == 0 {
		return ""
	}
	if c.Loop {
		return c.Phrases[0]
	}
	return c.Phrases[len(c.Phrases)-1]
}

func (c Config) normalized() Config {
	if len(c.Phrases) == 0 {
		c.Phrases = []string{""}
	} else {
		c.Phrases = slices.Clone(c.Phrases)
	}
	if c.CursorCharacter == "" {
		c.CursorCharacter = DefaultCursor
	}
	if c.VariableSpeed != nil {
		v := *c.VariableSpeed
		c.VariableSpeed = &v
	}
	return c
}

// sameSequence reports whether switching from c to o keeps the running
// state meaningful.
func (c Config) sameSequence(o Config) bool {
	return c.Loop == o.Loop && slices.Equal(c.Phrases, o.Phrases)
}
