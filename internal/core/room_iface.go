package core

import (
	"github.com/dkeye/Lobby/internal/domain"
)

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
// Implementations are not safe for concurrent use; the session coordinator serializes access.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	// Usernames is the display name of every member, in no particular order.
	Usernames() []string
	// Members is the connection id of every member, in no particular order.
	Members() []domain.ConnID
	Has(id domain.ConnID) bool

	AddMember(id domain.ConnID, username string)
	RemoveMember(id domain.ConnID) (string, bool)
	ClearMembers()
	Info() RoomInfo
}

type RoomInfo struct {
	ID          domain.RoomID   `json:"id"`
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"memberCount"`
	HasPassword bool            `json:"hasPassword"`
}
