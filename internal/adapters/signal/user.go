package signal

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

func (ctl *SignalWSController) handleWhoAmI(
	id domain.ConnID,
	conn core.SignalConnection,
) {
	ctl.sendEvent(conn, core.NewEvent(core.EventWhoAmI, ctl.Orch.WhoAmI(id)))
}
