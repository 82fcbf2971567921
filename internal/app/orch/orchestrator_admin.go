package orch

import (
	"crypto/subtle"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	ResetReason  = "All servers have been reset by admin"
	ResetNotice  = "All servers have been reset. Please rejoin a server."
	EndReason    = "Chat has been ended by admin"
	EndNotice    = "Chat session has been ended by admin."
	ResetSuccess = "All servers have been reset"
	EndSuccess   = "Chat ended for all users"
)

func (o *Orchestrator) authorize(secret string) error {
	if o.AdminSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(o.AdminSecret)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

// GlobalReset force-disconnects every room-bound connection, drops all
// sessions and every room, and recreates the default room.
func (o *Orchestrator) GlobalReset(secret string) error {
	if err := o.authorize(secret); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	bound := o.Registry.Bound()
	for _, id := range bound {
		o.Dispatch.ToConn(id, core.NewEvent(core.EventForceDisconnect, ResetReason))
	}
	o.Registry.ClearSessions()
	o.Rooms.Reset()

	o.Dispatch.ToAll(o.serversList())
	o.Dispatch.ToAll(core.NewEvent(core.EventSystemMessage, ResetNotice))
	log.Info().Str("module", "orch").Int("kicked", len(bound)).Msg("admin reset all rooms")
	return nil
}

// EndAllSessions force-disconnects every room-bound connection and empties
// every room. Rooms themselves are kept, including empty custom rooms.
func (o *Orchestrator) EndAllSessions(secret string) error {
	if err := o.authorize(secret); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	bound := o.Registry.Bound()
	for _, id := range bound {
		o.Dispatch.ToConn(id, core.NewEvent(core.EventForceDisconnect, EndReason))
	}
	for _, room := range o.Rooms.All() {
		o.Dispatch.ToRoom(room.Room().ID, "", core.NewEvent(core.EventUserList, []string{}))
		room.ClearMembers()
	}
	o.Registry.ClearSessions()

	o.Dispatch.ToAll(o.serversList())
	o.Dispatch.ToAll(core.NewEvent(core.EventSystemMessage, EndNotice))
	log.Info().Str("module", "orch").Int("kicked", len(bound)).Msg("admin ended chat for all")
	return nil
}
