// Package coretest provides a recording core.SignalConnection for tests.
package coretest

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Lobby/internal/core"
)

var ErrFull = errors.New("sink full")

// Received is one decoded frame.
type Received struct {
	Type core.EventType  `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Sink records every frame sent to it.
type Sink struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) TrySend(f core.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return ErrFull
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *Sink) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SetFull makes every following TrySend fail.
func (s *Sink) SetFull(full bool) {
	s.mu.Lock()
	s.full = full
	s.mu.Unlock()
}

func (s *Sink) Reset() {
	s.mu.Lock()
	s.frames = nil
	s.mu.Unlock()
}

func (s *Sink) Events() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Received, 0, len(s.frames))
	for _, f := range s.frames {
		var r Received
		if err := json.Unmarshal(f, &r); err != nil {
			panic(err)
		}
		out = append(out, r)
	}
	return out
}

func (s *Sink) Types() []core.EventType {
	events := s.Events()
	out := make([]core.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

// OfType returns the payloads of every event of type t, oldest first.
func (s *Sink) OfType(t core.EventType) []json.RawMessage {
	var out []json.RawMessage
	for _, e := range s.Events() {
		if e.Type == t {
			out = append(out, e.Data)
		}
	}
	return out
}

func (s *Sink) Count(t core.EventType) int { return len(s.OfType(t)) }

// Last decodes the newest event of type t into v and reports whether there was one.
func (s *Sink) Last(t core.EventType, v any) bool {
	all := s.OfType(t)
	if len(all) == 0 {
		return false
	}
	if err := json.Unmarshal(all[len(all)-1], v); err != nil {
		panic(err)
	}
	return true
}
