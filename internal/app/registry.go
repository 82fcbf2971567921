package app

import (
	"context"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Username string
	RoomID   domain.RoomID
	Signal   core.SignalConnection
	Cancel   context.CancelFunc
}

// Registry is the connection directory: every live link, its display name and current room.
// It is not safe for concurrent use; orch.Orchestrator serializes all access.
type Registry struct {
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[domain.ConnID]*connEntry),
	}
}

// Bind records a freshly connected link with no name and no room.
func (r *Registry) Bind(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) {
	r.conns[id] = &connEntry{Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("bound signal")
}

// Unbind forgets the link. It reports false if the link was already gone.
func (r *Registry) Unbind(id domain.ConnID) bool {
	if _, ok := r.conns[id]; !ok {
		return false
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbind session")
	return true
}

func (r *Registry) Has(id domain.ConnID) bool {
	_, ok := r.conns[id]
	return ok
}

func (r *Registry) Len() int { return len(r.conns) }

func (r *Registry) Signal(id domain.ConnID) (core.SignalConnection, bool) {
	if e, ok := r.conns[id]; ok && e.Signal != nil {
		return e.Signal, true
	}
	return nil, false
}

// RoomOf returns the current room and display name of a room-bound link.
func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomID, string, bool) {
	entry, ok := r.conns[id]
	if !ok || entry.RoomID == "" {
		return "", "", false
	}
	return entry.RoomID, entry.Username, true
}

func (r *Registry) UpdateRoom(id domain.ConnID, room domain.RoomID, username string) bool {
	entry, ok := r.conns[id]
	if !ok {
		return false
	}
	entry.RoomID = room
	entry.Username = username
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("room", string(room)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(id domain.ConnID) {
	entry, ok := r.conns[id]
	if !ok {
		return
	}
	entry.RoomID = ""
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("removed room association")
}

// All returns every live link.
func (r *Registry) All() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(r.conns))
	for id := range r.conns {
		out = append(out, id)
	}
	return out
}

// Bound returns every link that currently belongs to a room.
func (r *Registry) Bound() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(r.conns))
	for id, e := range r.conns {
		if e.RoomID != "" {
			out = append(out, id)
		}
	}
	return out
}

// ClearSessions drops every name and room association. Transport links survive.
func (r *Registry) ClearSessions() {
	for _, e := range r.conns {
		e.RoomID = ""
		e.Username = ""
	}
	log.Info().Str("module", "app.registry").Int("conns", len(r.conns)).Msg("cleared sessions")
}

// Cancel tears down the transport context of a link; its read pump then disconnects it.
func (r *Registry) Cancel(id domain.ConnID) bool {
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("canceled session")
	return true
}
