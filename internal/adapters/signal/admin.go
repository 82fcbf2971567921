package signal

import (
	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

type adminPayload struct {
	Secret string `json:"secret"`
}

func (ctl *SignalWSController) handleResetAllServers(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p adminPayload
	if !ctl.decode(conn, data, &p) {
		return
	}
	if err := ctl.Orch.GlobalReset(p.Secret); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("admin reset refused")
		ctl.sendError(conn, core.EventAdminError, err.Error())
		return
	}
	ctl.sendEvent(conn, core.NewEvent(core.EventAdminSuccess, orch.ResetSuccess))
}

func (ctl *SignalWSController) handleEndChatForAll(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p adminPayload
	if !ctl.decode(conn, data, &p) {
		return
	}
	if err := ctl.Orch.EndAllSessions(p.Secret); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("admin end chat refused")
		ctl.sendError(conn, core.EventAdminError, err.Error())
		return
	}
	ctl.sendEvent(conn, core.NewEvent(core.EventAdminSuccess, orch.EndSuccess))
}
