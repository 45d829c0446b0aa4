// Package typing implements the typewriter effect used across the site: a
// state machine that reveals a phrase one character at a time, holds it,
// erases it and moves on to the next phrase.
//
// All transitions are driven by a single timer chain on an injected Clock.
// Every scheduled tick carries the generation it was created in; Stop, Start
// and Reconfigure bump the generation so a tick that was already in flight
// finds itself stale and leaves the state alone. Callbacks are re-checked
// against the generation before each call, and every Frame carries the
// generation it was produced in.
package typing

import (
	"math/rand"
	"sync"
	"time"
)

// Frame is what a renderer paints.
type Frame struct {
	Text          string `json:"text"`
	PhraseIndex   int    `json:"phrase_index"`
	Mode          Mode   `json:"mode"`
	Cursor        string `json:"cursor,omitempty"`
	CursorVisible bool   `json:"cursor_visible"`
	Generation    uint64 `json:"generation"`
}

// Option customizes a Sequencer.
type Option func(*Sequencer)

// WithRandom replaces the source used for variable typing speed. f must
// return values in [0, 1).
func WithRandom(f func() float64) Option {
	return func(s *Sequencer) {
		s.random = f
	}
}

// Sequencer drives one animated text display.
type Sequencer struct {
	clock  Clock
	random func() float64

	// deliver is held while one tick runs its callbacks, so callbacks of
	// different generations never overlap.
	deliver sync.Mutex

	mu      sync.Mutex
	cfg     Config
	phrases [][]rune
	index   int
	visible int
	mode    Mode
	epoch   time.Time
	running bool
	gen     uint64
	timer   Timer
}

// step is the outcome of one tick, applied after the state lock is released.
type step struct {
	advanced int // index of the next phrase, -1 when no advance happened
	complete bool
	next     time.Duration
	stop     bool
}

// New validates cfg and returns an idle sequencer. Nothing is scheduled
// until Start is called.
func New(cfg Config, clock Clock, opts ...Option) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = NewRealClock()
	}
	s := &Sequencer{
		clock:  clock,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setConfigLocked(cfg.normalized())
	s.epoch = clock.Now()
	return s, nil
}

// Start (re)starts the sequence from the first phrase after InitialDelay.
func (s *Sequencer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.restartLocked()
}

// Stop cancels the pending tick. The last frame stays readable through
// Snapshot; no further change happens until Start.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cancelLocked()
}

// Reconfigure swaps the configuration. A change of phrases or of the loop
// flag resets the sequence to Idle, and restarts it if it was running; any
// other change only affects the ticks scheduled from now on.
func (s *Sequencer) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.normalized()

	s.mu.Lock()
	defer s.mu.Unlock()
	restart := !s.cfg.sameSequence(cfg)
	s.setConfigLocked(cfg)
	switch {
	case restart && s.running:
		s.restartLocked()
	case restart:
		s.cancelLocked()
		s.resetLocked()
	}
	return nil
}

// Snapshot returns the current frame.
func (s *Sequencer) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked(s.clock.Now())
}

// Generation identifies the current run. It changes on Start, Stop and on
// a Reconfigure that restarts the sequence.
func (s *Sequencer) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Wait blocks until callbacks that are already running have returned.
// Together with Stop or Reconfigure it guarantees that nothing from the
// previous run is delivered afterwards. It must not be called from a
// callback.
func (s *Sequencer) Wait() {
	s.deliver.Lock()
	s.deliver.Unlock()
}

// Mode returns the current state.
func (s *Sequencer) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Sequencer) setConfigLocked(cfg Config) {
	s.cfg = cfg
	s.phrases = make([][]rune, len(cfg.Phrases))
	for i, p := range cfg.Phrases {
		s.phrases[i] = []rune(p)
	}
}

func (s *Sequencer) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sequencer) resetLocked() {
	s.index = 0
	s.visible = 0
	s.mode = Idle
	s.epoch = s.clock.Now()
}

func (s *Sequencer) restartLocked() {
	s.cancelLocked()
	s.resetLocked()
	s.scheduleLocked(s.cfg.InitialDelay)
}

func (s *Sequencer) scheduleLocked(d time.Duration) {
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() { s.tick(gen) })
}

func (s *Sequencer) tick(gen uint64) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	st := s.advanceLocked()
	cfg := s.cfg
	frame := s.frameLocked(s.clock.Now())
	s.mu.Unlock()

	if cfg.OnChange != nil && s.current(gen) {
		cfg.OnChange(frame)
	}
	if st.advanced >= 0 && cfg.OnSequenceAdvance != nil && s.current(gen) {
		cfg.OnSequenceAdvance(st.advanced)
	}
	if st.complete && cfg.OnAllComplete != nil && s.current(gen) {
		cfg.OnAllComplete()
	}
	if st.stop {
		return
	}

	// Callbacks may have stopped or restarted the sequencer.
	s.mu.Lock()
	if gen == s.gen && s.timer == nil {
		s.scheduleLocked(st.next)
	}
	s.mu.Unlock()
}

func (s *Sequencer) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

func (s *Sequencer) advanceLocked() step {
	switch s.mode {
	case Idle:
		s.mode = Typing
		return s.afterTypeLocked(-1)
	case Typing:
		s.visible++
		return s.afterTypeLocked(-1)
	case Pausing:
		s.mode = Deleting
		return s.afterDeleteLocked()
	case Deleting:
		s.visible--
		return s.afterDeleteLocked()
	}
	return step{advanced: -1, stop: true}
}

// afterTypeLocked decides what follows a typing tick. An empty phrase is
// complete on the tick typing starts.
func (s *Sequencer) afterTypeLocked(advanced int) step {
	st := step{advanced: advanced}
	if s.visible < len(s.phrases[s.index]) {
		st.next = s.typingDelayLocked()
		return st
	}
	if !s.cfg.Loop && s.index == len(s.phrases)-1 {
		s.mode = Done
		st.complete = true
		st.stop = true
		return st
	}
	s.mode = Pausing
	st.next = s.cfg.PauseDuration
	return st
}

func (s *Sequencer) afterDeleteLocked() step {
	if s.visible > 0 {
		return step{advanced: -1, next: s.cfg.DeletingSpeed}
	}
	s.index = (s.index + 1) % len(s.phrases)
	s.mode = Typing
	return s.afterTypeLocked(s.index)
}

func (s *Sequencer) typingDelayLocked() time.Duration {
	v := s.cfg.VariableSpeed
	if v == nil {
		return s.cfg.TypingSpeed
	}
	return v.Min + time.Duration(s.random()*float64(v.Max-v.Min))
}

func (s *Sequencer) frameLocked(now time.Time) Frame {
	f := Frame{
		Text:        string(s.phrases[s.index][:s.visible]),
		PhraseIndex: s.index,
		Mode:        s.mode,
		Generation:  s.gen,
	}
	if s.cfg.ShowCursor {
		f.Cursor = s.cfg.CursorCharacter
		f.CursorVisible = s.cursorVisibleLocked(now)
	}
	return f
}

func (s *Sequencer) cursorVisibleLocked(now time.Time) bool {
	if s.cfg.HideCursorWhileTyping && (s.mode == Typing || s.mode == Deleting) {
		return false
	}
	blink := s.cfg.CursorBlinkInterval
	if blink <= 0 {
		return true
	}
	return (now.Sub(s.epoch)/blink)%2 == 0
}
