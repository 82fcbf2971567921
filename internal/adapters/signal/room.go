package signal

import (
	"errors"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCreateServer(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !ctl.decode(conn, data, &p) {
		return
	}
	if !ctl.Limiter.Allow(id) {
		ctl.sendError(conn, core.EventError, "rate_limited")
		return
	}
	if err := domain.ValidateRoomName(p.Name); err != nil {
		ctl.sendError(conn, core.EventError, err.Error())
		return
	}
	roomID := ctl.Orch.CreateRoom(id, domain.RoomName(p.Name), p.Password)
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(roomID)).Msg("create")
}

func (ctl *SignalWSController) handleJoinServer(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p struct {
		RoomID   string `json:"roomId"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !ctl.decode(conn, data, &p) {
		return
	}
	ctl.join(id, conn, domain.RoomID(p.RoomID), p.Username, p.Password)
}

// handleLegacyJoin puts the connection into the default room.
func (ctl *SignalWSController) handleLegacyJoin(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p struct {
		Username string `json:"username"`
	}
	if !ctl.decode(conn, data, &p) {
		return
	}
	ctl.join(id, conn, ctl.Orch.Rooms.DefaultID(), p.Username, "")
}

func (ctl *SignalWSController) join(
	id domain.ConnID,
	conn core.SignalConnection,
	roomID domain.RoomID,
	username, password string,
) {
	user, err := domain.NewUser(id, username)
	if err != nil {
		ctl.sendError(conn, core.EventJoinError, err.Error())
		return
	}
	err = ctl.Orch.JoinRoom(id, roomID, user.Username, password)
	switch {
	case err == nil:
		log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(roomID)).Msg("join")
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrBadPassword):
		log.Info().Err(err).Str("module", "signal").Str("conn", string(id)).Str("room", string(roomID)).Msg("join refused")
		ctl.sendError(conn, core.EventJoinError, err.Error())
	default:
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join failed")
		ctl.sendError(conn, core.EventJoinError, err.Error())
	}
}

// handleLeaveServer leaves the current room; the connection itself stays open.
func (ctl *SignalWSController) handleLeaveServer(
	id domain.ConnID,
	conn core.SignalConnection,
) {
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("leave")
	ctl.Orch.LeaveRoom(id)
	ctl.sendEvent(conn, core.NewEvent(core.EventServerLeft, nil))
}
