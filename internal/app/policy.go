package app

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(id domain.ConnID, ev core.EventType) BackpressureAction
}

// SimplePolicy drops lost typing signals and kicks connections that miss anything else.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.ConnID, ev core.EventType) BackpressureAction {
	if ev == core.EventTyping {
		return DropFrame
	}
	return KickMember
}
