package orch

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom adds an empty room and announces the new listing to everybody.
// Names are not checked for uniqueness.
func (o *Orchestrator) CreateRoom(id domain.ConnID, name domain.RoomName, password string) domain.RoomID {
	o.mu.Lock()
	defer o.mu.Unlock()
	room := o.Rooms.Create(name, password)
	roomID := room.Room().ID
	o.Dispatch.ToAll(o.serversList())
	o.Dispatch.ToConn(id, core.NewEvent(core.EventServerCreated, core.ServerCreated{RoomID: roomID, Name: name}))
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("room created")
	return roomID
}

// JoinRoom moves the connection into roomID under username, leaving its
// previous room first. Fails without side effects on a missing room or a
// wrong password.
func (o *Orchestrator) JoinRoom(id domain.ConnID, roomID domain.RoomID, username, password string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.Registry.Has(id) {
		return domain.ErrNotConnected
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !room.Room().Admits(password) {
		return domain.ErrBadPassword
	}

	o.leaveLocked(id, roomID)

	room.AddMember(id, username)
	o.Registry.UpdateRoom(id, roomID, username)

	o.Dispatch.ToRoom(roomID, id, core.NewEvent(core.EventUserJoined, username))
	users := room.Usernames()
	o.Dispatch.ToConn(id, core.NewEvent(core.EventServerJoined, core.ServerJoined{
		RoomID: roomID,
		Name:   room.Room().Name,
		Users:  users,
	}))
	o.Dispatch.ToRoom(roomID, "", core.NewEvent(core.EventUserList, users))
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Str("username", username).Msg("joined room")
	return nil
}

// LeaveRoom is a no-op for connections outside any room.
func (o *Orchestrator) LeaveRoom(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.leaveLocked(id, "")
}

// leaveLocked removes id from its room and deletes the room if it is now
// empty, is not the default room and is not keep. keep lets a rejoin of the
// same room survive its own implicit leave.
func (o *Orchestrator) leaveLocked(id domain.ConnID, keep domain.RoomID) {
	roomID, username, ok := o.Registry.RoomOf(id)
	if !ok {
		return
	}
	o.Registry.RemoveRoom(id)

	room, ok := o.Rooms.Get(roomID)
	if !ok {
		log.Warn().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("stale room association dropped")
		return
	}
	if _, ok := room.RemoveMember(id); !ok {
		return
	}

	o.Dispatch.ToRoom(roomID, "", core.NewEvent(core.EventUserLeft, username))
	o.Dispatch.ToRoom(roomID, "", core.NewEvent(core.EventUserList, room.Usernames()))
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Str("username", username).Msg("left room")

	if room.MemberCount() == 0 && roomID != keep && o.Rooms.Delete(roomID) {
		o.Dispatch.ToAll(o.serversList())
		log.Info().Str("module", "orch").Str("room", string(roomID)).Msg("empty room removed")
	}
}
