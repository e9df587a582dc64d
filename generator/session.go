// go-qrcode
// Copyright 2014 Tom Harwood

package generator

import (
	"context"
	"sync"

	"github.com/weilsonwonder/go-qrstyle/render"
)

// Observer is told about every committed generation. Exactly one of res and
// err is set.
type Observer func(res *Result, err error)

// Session keeps a surface showing the newest settings.
//
// Each Update cancels the generation in flight and starts a new one. Only
// the most recent generation may commit: an older one that finishes late is
// discarded, so the surface and observers always reflect the last Update.
type Session struct {
	gen     *Generator
	surface render.Surface

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	latest     *Result
	lastErr    error
	observers  []Observer
	closed     bool

	wg sync.WaitGroup
}

// NewSession returns a session presenting to surface.
func NewSession(gen *Generator, surface render.Surface) *Session {
	return &Session{gen: gen, surface: surface}
}

// OnChange registers an observer. Observers are called with the session
// lock held and must not call back into the session.
func (s *Session) OnChange(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, o)
}

// Update starts generating settings, superseding any generation in flight.
// It does not block. Updates after Close are ignored.
func (s *Session) Update(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	generation := s.generation

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		res, err := s.gen.Generate(ctx, settings)
		s.commit(generation, res, err)
	}()
}

func (s *Session) commit(generation uint64, res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		metricSuperseded.Inc()
		return
	}

	if s.closed {
		return
	}

	if err != nil {
		s.lastErr = err
	} else {
		s.latest, s.lastErr = res, nil
		s.surface.Present(res.Image)
	}

	for _, o := range s.observers {
		o(res, err)
	}
}

// Latest returns the last committed result and the error of the newest
// generation, if it failed.
func (s *Session) Latest() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latest, s.lastErr
}

// Wait blocks until every started generation has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the generation in flight and waits for it.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
