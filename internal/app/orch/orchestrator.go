package orch

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the session coordinator. One mutex guards both the
// Registry and the RoomStore; every operation runs to completion under it,
// including enqueueing its broadcasts, so per-room delivery order follows
// processing order.
type Orchestrator struct {
	mu       sync.Mutex
	Registry *app.Registry
	Rooms    *app.RoomStore
	Dispatch *app.Dispatcher

	AdminSecret string
	Now         func() time.Time
}

func New(reg *app.Registry, rooms *app.RoomStore, policy app.Policy, adminSecret string) *Orchestrator {
	return &Orchestrator{
		Registry:    reg,
		Rooms:       rooms,
		Dispatch:    app.NewDispatcher(reg, rooms, policy),
		AdminSecret: adminSecret,
		Now:         time.Now,
	}
}

// Connect registers a new transport link and sends it the room listing.
func (o *Orchestrator) Connect(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.Bind(id, sig, cancel)
	o.Dispatch.ToConn(id, o.serversList())
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("connected")
}

// Disconnect leaves the current room and forgets the link. Safe to call repeatedly.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.leaveLocked(id, "")
	if o.Registry.Unbind(id) {
		log.Info().Str("module", "orch").Str("conn", string(id)).Msg("disconnected")
	}
}

// RelayMessage stamps text and sends it to the whole room, sender included.
// Connections outside any room are ignored.
func (o *Orchestrator) RelayMessage(id domain.ConnID, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	roomID, username, ok := o.Registry.RoomOf(id)
	if !ok {
		return
	}
	o.Dispatch.ToRoom(roomID, "", core.NewEvent(core.EventMessage, core.ChatMessage{
		Username:  username,
		Text:      text,
		Timestamp: o.Now(),
	}))
}

// RelayTyping forwards a presence signal to everyone else in the room. Nothing is stored.
func (o *Orchestrator) RelayTyping(id domain.ConnID, isTyping bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	roomID, username, ok := o.Registry.RoomOf(id)
	if !ok {
		return
	}
	o.Dispatch.ToRoom(roomID, id, core.NewEvent(core.EventTyping, core.TypingSignal{
		Username: username,
		IsTyping: isTyping,
	}))
}

func (o *Orchestrator) WhoAmI(id domain.ConnID) core.WhoAmI {
	o.mu.Lock()
	defer o.mu.Unlock()
	roomID, username, ok := o.Registry.RoomOf(id)
	if !ok {
		return core.WhoAmI{}
	}
	resp := core.WhoAmI{Username: username, RoomID: roomID}
	if room, ok := o.Rooms.Get(roomID); ok {
		resp.RoomName = room.Room().Name
	}
	return resp
}

// Online returns every registered connection, in no particular order.
func (o *Orchestrator) Online() []domain.ConnID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Registry.All()
}

func (o *Orchestrator) Signal(id domain.ConnID) (core.SignalConnection, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Registry.Signal(id)
}

func (o *Orchestrator) ListRooms() []core.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.List()
}

func (o *Orchestrator) serversList() core.Event {
	return core.NewEvent(core.EventServersList, o.Rooms.List())
}
