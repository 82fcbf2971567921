package domain

import "errors"

const MaxRoomNameLen = 36

var (
	ErrRoomNotFound    = errors.New("server not found")
	ErrBadPassword     = errors.New("incorrect password")
	ErrUnauthorized    = errors.New("invalid admin password")
	ErrNotConnected    = errors.New("connection not registered")
	ErrRoomNameEmpty   = errors.New("room name empty")
	ErrRoomNameTooLong = errors.New("room name too long")
)

type (
	RoomName string
	RoomID   string
)

// Room is the immutable part of a room record. An empty Password means open.
type Room struct {
	ID       RoomID
	Name     RoomName
	Password string
}

func (r *Room) HasPassword() bool { return r.Password != "" }

// Admits reports whether password opens the room. Open rooms admit anything.
func (r *Room) Admits(password string) bool {
	return r.Password == "" || r.Password == password
}

func ValidateRoomName(name string) error {
	if len(name) == 0 {
		return ErrRoomNameEmpty
	}
	if len(name) > MaxRoomNameLen {
		return ErrRoomNameTooLong
	}
	return nil
}
