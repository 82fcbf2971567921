package app

import (
	"cmp"
	"slices"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog/log"
)

const (
	roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	roomIDLength   = 13
)

// NewRoomIDGenerator returns a random base36 id source.
func NewRoomIDGenerator() func() string {
	gen, err := nanoid.CustomASCII(roomIDAlphabet, roomIDLength)
	if err != nil {
		panic(err)
	}
	return gen
}

// RoomStore maps room ids to rooms. The default room always exists.
// It is not safe for concurrent use; orch.Orchestrator serializes all access.
type RoomStore struct {
	rooms       map[domain.RoomID]core.RoomService
	defaultID   domain.RoomID
	defaultName domain.RoomName
	newID       func() string
}

func NewRoomStore(defaultID domain.RoomID, defaultName domain.RoomName, newID func() string) *RoomStore {
	if newID == nil {
		newID = NewRoomIDGenerator()
	}
	s := &RoomStore{
		rooms:       make(map[domain.RoomID]core.RoomService),
		defaultID:   defaultID,
		defaultName: defaultName,
		newID:       newID,
	}
	s.Reset()
	return s
}

func (s *RoomStore) DefaultID() domain.RoomID { return s.defaultID }

func (s *RoomStore) IsDefault(id domain.RoomID) bool { return id == s.defaultID }

// Create inserts an empty room under a fresh id.
func (s *RoomStore) Create(name domain.RoomName, password string) core.RoomService {
	id := domain.RoomID(s.newID())
	for s.taken(id) {
		id = domain.RoomID(s.newID())
	}
	room := core.NewRoomService(&domain.Room{ID: id, Name: name, Password: password})
	s.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("name", string(name)).Bool("password", password != "").Msg("room created")
	return room
}

func (s *RoomStore) taken(id domain.RoomID) bool {
	_, ok := s.rooms[id]
	return ok || id == ""
}

func (s *RoomStore) Get(id domain.RoomID) (core.RoomService, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// Delete removes a room. The default room is never removed.
func (s *RoomStore) Delete(id domain.RoomID) bool {
	if s.IsDefault(id) {
		return false
	}
	if _, ok := s.rooms[id]; !ok {
		return false
	}
	delete(s.rooms, id)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room removed")
	return true
}

func (s *RoomStore) Len() int { return len(s.rooms) }

// All returns every room, default first.
func (s *RoomStore) All() []core.RoomService {
	out := make([]core.RoomService, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b core.RoomService) int {
		return s.compare(a.Room(), b.Room())
	})
	return out
}

// List is the room listing sent to clients.
func (s *RoomStore) List() []core.RoomInfo {
	rooms := s.All()
	out := make([]core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	return out
}

// Reset drops every room and recreates an empty default room.
func (s *RoomStore) Reset() {
	clear(s.rooms)
	s.rooms[s.defaultID] = core.NewRoomService(&domain.Room{ID: s.defaultID, Name: s.defaultName})
}

func (s *RoomStore) compare(a, b *domain.Room) int {
	switch {
	case a.ID == b.ID:
		return 0
	case s.IsDefault(a.ID):
		return -1
	case s.IsDefault(b.ID):
		return 1
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
