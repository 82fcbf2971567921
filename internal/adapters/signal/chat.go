package signal

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

func (ctl *SignalWSController) handleMessage(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p struct {
		Text string `json:"text"`
	}
	if !ctl.decode(conn, data, &p) {
		return
	}
	if !ctl.Limiter.Allow(id) {
		ctl.sendError(conn, core.EventError, "rate_limited")
		return
	}
	ctl.Orch.RelayMessage(id, p.Text)
}

func (ctl *SignalWSController) handleTyping(
	id domain.ConnID,
	conn core.SignalConnection,
	data []byte,
) {
	var p struct {
		IsTyping bool `json:"isTyping"`
	}
	if !ctl.decode(conn, data, &p) {
		return
	}
	// typing bursts are silently dropped
	if !ctl.Limiter.Allow(id) {
		return
	}
	ctl.Orch.RelayTyping(id, p.IsTyping)
}
