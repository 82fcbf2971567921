package signal

import "github.com/dkeye/Lobby/internal/core"

func (ctl *SignalWSController) handlePing(
	conn core.SignalConnection,
) {
	ctl.sendEvent(conn, core.NewEvent(core.EventPong, nil))
}
