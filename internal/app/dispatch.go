package app

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// PublishResult counts delivered frames and the links that could not take one.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnID
}

// Dispatcher delivers events to one connection, a room or everybody.
// Room membership is resolved from the RoomStore on every call and never cached.
// Sends only enqueue into each connection's buffer, so callers may hold their lock.
type Dispatcher struct {
	registry *Registry
	rooms    *RoomStore
	policy   Policy
}

func NewDispatcher(registry *Registry, rooms *RoomStore, policy Policy) *Dispatcher {
	return &Dispatcher{registry: registry, rooms: rooms, policy: policy}
}

func (d *Dispatcher) ToConn(id domain.ConnID, ev core.Event) PublishResult {
	return d.publish([]domain.ConnID{id}, "", ev)
}

// ToRoom sends ev to every current member of room except the given connection.
// Pass an empty except to include everybody.
func (d *Dispatcher) ToRoom(room domain.RoomID, except domain.ConnID, ev core.Event) PublishResult {
	r, ok := d.rooms.Get(room)
	if !ok {
		return PublishResult{}
	}
	return d.publish(r.Members(), except, ev)
}

func (d *Dispatcher) ToAll(ev core.Event) PublishResult {
	return d.publish(d.registry.All(), "", ev)
}

func (d *Dispatcher) publish(targets []domain.ConnID, except domain.ConnID, ev core.Event) PublishResult {
	res := PublishResult{}
	if len(targets) == 0 {
		return res
	}
	frame, err := ev.Encode()
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatch").Str("event", string(ev.Type)).Msg("encode event")
		return res
	}
	for _, id := range targets {
		if id == except {
			continue
		}
		sig, ok := d.registry.Signal(id)
		if !ok {
			continue
		}
		if err := sig.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, id)
			d.onBackPressure(id, ev.Type, err)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.dispatch").Str("event", string(ev.Type)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (d *Dispatcher) onBackPressure(id domain.ConnID, ev core.EventType, err error) {
	if d.policy == nil {
		return
	}
	switch d.policy.OnBackPressure(id, ev) {
	case KickMember:
		log.Warn().Err(err).Str("module", "app.dispatch").Str("conn", string(id)).Str("event", string(ev)).Msg("kicking slow connection")
		d.registry.Cancel(id)
	case DropFrame, NoAction:
	}
}
