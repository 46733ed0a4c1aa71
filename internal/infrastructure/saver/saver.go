// Package saver serializes background config writes: at most one write is in
// flight, and a queued-but-unstarted request is superseded by the next
// submission.
package saver

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

// ErrSuperseded is returned from Ticket.Wait when a newer save request
// replaced this one before it started.
var ErrSuperseded = errors.New("save request superseded")

// WriteFunc performs the actual (atomic) write of a document snapshot.
type WriteFunc func(*entities.Document) error

// Saver runs writes on a background goroutine that drains requests one at a
// time, so writes are serialized without further coordination. An in-flight
// write always runs to completion: cancelling a started atomic write would
// defeat its purpose. Callers control only how long they wait, via the
// context they pass to Ticket.Wait.
type Saver struct {
	write   WriteFunc
	mu      sync.Mutex
	pending *request
	running bool
}

type request struct {
	id   uuid.UUID
	doc  *entities.Document
	done chan error
}

// Ticket tracks one submitted save request.
type Ticket struct {
	ID   uuid.UUID
	done <-chan error
}

// Wait blocks until the request completes, is superseded, or the context is
// cancelled. Cancellation abandons the wait, not the write.
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New creates a saver around a write function.
func New(write WriteFunc) *Saver {
	return &Saver{write: write}
}

// Submit queues a save of an immutable snapshot of doc. If a request is
// already queued (not yet started) it completes with ErrSuperseded and the
// new one takes its place.
func (s *Saver) Submit(doc *entities.Document) *Ticket {
	req := &request{
		id:   uuid.New(),
		doc:  doc.Clone(),
		done: make(chan error, 1),
	}

	s.mu.Lock()
	if s.pending != nil {
		s.pending.done <- ErrSuperseded
	}
	s.pending = req
	if !s.running {
		s.running = true
		go s.run()
	}
	s.mu.Unlock()

	return &Ticket{ID: req.id, done: req.done}
}

// run drains queued requests until none remain.
func (s *Saver) run() {
	for {
		s.mu.Lock()
		req := s.pending
		s.pending = nil
		if req == nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		req.done <- s.write(req.doc)
	}
}
