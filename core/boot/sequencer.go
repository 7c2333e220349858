package boot

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
)

// State of the startup sequence. One-shot: Idle -> Verifying -> Ready|Aborted.
type State int32

const (
	Idle State = iota
	Verifying
	Ready
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Verifying:
		return "verifying"
	case Ready:
		return "ready"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

var ErrAlreadyStarted = errors.New("boot: sequencer already started")

// Sequencer gates listener binding on data-store verification. The listen
// function is never called unless verify returned nil; there is no retry.
type Sequencer struct {
	state  int32
	verify func(context.Context) error
	listen func() error
}

func New(verify func(context.Context) error, listen func() error) *Sequencer {
	return &Sequencer{verify: verify, listen: listen}
}

func (s *Sequencer) State() State {
	return State(atomic.LoadInt32(&s.state))
}

// Run performs one verification attempt and, on success, binds the listener.
// Returns the verification error on failure (state Aborted). The listener
// call blocks for the life of the server; its error is returned when it
// stops.
func (s *Sequencer) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.state, int32(Idle), int32(Verifying)) {
		return ErrAlreadyStarted
	}
	if err := s.verify(ctx); err != nil {
		atomic.StoreInt32(&s.state, int32(Aborted))
		return err
	}
	atomic.StoreInt32(&s.state, int32(Ready))
	log.Println("Database connection successful.")
	return s.listen()
}
