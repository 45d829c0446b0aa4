package contact

import (
	"context"
	"time"

	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Receipt acknowledges a simulated submission.
type Receipt struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter pretends to send messages: it validates, waits, and succeeds.
type Submitter struct {
	delay time.Duration
	clock typing.Clock
	log   logrus.FieldLogger
}

// NewSubmitter creates a submitter that takes delay per message.
func NewSubmitter(delay time.Duration, clock typing.Clock, log logrus.FieldLogger) *Submitter {
	if clock == nil {
		clock = typing.NewRealClock()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Submitter{delay: delay, clock: clock, log: log}
}

// Submit validates f and then waits out the simulated send. It returns
// ValidationErrors without waiting when f is invalid, and ctx.Err() if ctx
// ends first.
func (s *Submitter) Submit(ctx context.Context, f Form) (Receipt, error) {
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	f = f.Normalize()

	sent := make(chan struct{})
	timer := s.clock.AfterFunc(s.delay, func() { close(sent) })
	select {
	case <-sent:
	case <-ctx.Done():
		timer.Stop()
		s.log.WithField("name", f.Name).Info("Contact submission abandoned")
		return Receipt{}, ctx.Err()
	}

	r := Receipt{
		ID:          uuid.NewString(),
		Name:        f.Name,
		SubmittedAt: s.clock.Now(),
	}
	s.log.WithFields(logrus.Fields{
		"id":      r.ID,
		"subject": f.Subject,
	}).Info("Contact submission accepted")
	return r, nil
}
