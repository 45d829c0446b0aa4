package server

import (
	"context"
	"net/http"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Stream event names.
const (
	eventFrame   = "frame"
	eventAdvance = "advance"
	eventDone    = "done"
	eventGone    = "gone"
)

type streamEvent struct {
	name string
	data any
}

// typingStream carries the events of one configuration of a connection's
// sequencer. A reload that swaps the configuration cancels the old stream,
// so anything it still held or was about to send is dropped.
type typingStream struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	events chan streamEvent
}

func newTypingStream(parent context.Context) *typingStream {
	ctx, cancel := context.WithCancel(parent)
	return &typingStream{
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan streamEvent, 16),
	}
}

func (ts *typingStream) send(name string, data any) {
	select {
	case ts.events <- streamEvent{name: name, data: data}:
	case <-ts.ctx.Done():
	}
}

// hooks attaches the stream's callbacks to cfg.
func (ts *typingStream) hooks(cfg typing.Config) typing.Config {
	cfg.OnChange = func(f typing.Frame) {
		ts.send(eventFrame, f)
	}
	cfg.OnSequenceAdvance = func(next int) {
		ts.send(eventAdvance, gin.H{"phrase_index": next})
	}
	cfg.OnAllComplete = func() {
		ts.send(eventDone, gin.H{})
	}
	return cfg
}

// streamTyping plays a named typing sequence as Server-Sent Events. Every
// connection runs its own sequencer; a content reload reconfigures it in
// place.
func (s *Server) streamTyping(c *gin.Context) {
	name := c.Param("name")
	cfg, ok := s.store.Current().TypingConfig(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown typing sequence"})
		return
	}

	ctx := c.Request.Context()
	ts := newTypingStream(ctx)
	defer func() { ts.cancel() }()
	seq, err := typing.New(ts.hooks(cfg), s.clock)
	if err != nil {
		s.log.WithError(err).WithField("typing", name).Warn("Refusing to stream misconfigured typing sequence")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	streamID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"stream": streamID, "typing": name})

	updates, unsubscribe := s.store.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Stream-Id", streamID)
	c.Status(http.StatusOK)

	c.SSEvent(eventFrame, seq.Snapshot())
	c.Writer.Flush()

	seq.Start()
	defer seq.Stop()
	log.Debug("Typing stream opened")

	for {
		select {
		case <-ctx.Done():
			log.Debug("Typing stream closed by client")
			return

		case ev := <-ts.events:
			c.SSEvent(ev.name, ev.data)
			c.Writer.Flush()
			if ev.name == eventDone {
				return
			}

		case updated, ok := <-updates:
			if !ok {
				return
			}
			next, ok := s.reconfigure(seq, ts, updated, name, log)
			if !ok {
				c.SSEvent(eventGone, gin.H{})
				c.Writer.Flush()
				return
			}
			ts = next
		}
	}
}

// reconfigure applies reloaded content to a live stream and returns the
// stream to read from next. It reports false when the sequence no longer
// exists.
func (s *Server) reconfigure(seq *typing.Sequencer, ts *typingStream, updated *content.Content, name string, log logrus.FieldLogger) (*typingStream, bool) {
	cfg, ok := updated.TypingConfig(name)
	if !ok {
		log.Info("Typing sequence removed by content reload")
		return ts, false
	}
	next := newTypingStream(ts.parent)
	if err := seq.Reconfigure(next.hooks(cfg)); err != nil {
		next.cancel()
		log.WithError(err).Warn("Ignoring invalid typing configuration")
		return ts, true
	}
	ts.cancel()
	log.Debug("Typing stream reconfigured")
	return next, true
}

func (s *Server) typingConfig(c *gin.Context) {
	name := c.Param("name")
	spec, ok := s.store.Current().Typing[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown typing sequence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":   name,
		"config": spec,
	})
}
