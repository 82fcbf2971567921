package core

import (
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is an in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room    *domain.Room
	members map[domain.ConnID]string
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:    room,
		members: make(map[domain.ConnID]string),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int { return len(r.members) }

func (r *roomImpl) Has(id domain.ConnID) bool {
	_, ok := r.members[id]
	return ok
}

func (r *roomImpl) AddMember(id domain.ConnID, username string) {
	r.members[id] = username
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(id)).Str("username", username).Msg("member added")
}

func (r *roomImpl) RemoveMember(id domain.ConnID) (string, bool) {
	username, ok := r.members[id]
	if !ok {
		return "", false
	}
	delete(r.members, id)
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(id)).Msg("member removed")
	return username, true
}

func (r *roomImpl) ClearMembers() {
	clear(r.members)
}

func (r *roomImpl) Usernames() []string {
	out := make([]string, 0, len(r.members))
	for _, name := range r.members {
		out = append(out, name)
	}
	return out
}

func (r *roomImpl) Members() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(r.members))
	for id := range r.members {
		out = append(out, id)
	}
	return out
}

func (r *roomImpl) Info() RoomInfo {
	return RoomInfo{
		ID:          r.room.ID,
		Name:        r.room.Name,
		MemberCount: len(r.members),
		HasPassword: r.room.HasPassword(),
	}
}
