package core

import (
	"encoding/json"
	"time"

	"github.com/dkeye/Lobby/internal/domain"
)

// EventType names an outbound event.
type EventType string

const (
	EventServersList     EventType = "serversList"
	EventServerCreated   EventType = "serverCreated"
	EventServerJoined    EventType = "serverJoined"
	EventServerLeft      EventType = "serverLeft"
	EventJoinError       EventType = "joinError"
	EventUserJoined      EventType = "userJoined"
	EventUserLeft        EventType = "userLeft"
	EventUserList        EventType = "userList"
	EventMessage         EventType = "message"
	EventTyping          EventType = "typing"
	EventForceDisconnect EventType = "forceDisconnect"
	EventSystemMessage   EventType = "systemMessage"
	EventAdminSuccess    EventType = "adminSuccess"
	EventAdminError      EventType = "adminError"
	EventError           EventType = "error"
	EventWhoAmI          EventType = "whoami"
	EventPong            EventType = "pong"
)

// Event is one outbound frame before encoding.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

func NewEvent(t EventType, data any) Event {
	return Event{Type: t, Data: data}
}

// Encode renders the event as a text frame.
func (e Event) Encode() (Frame, error) {
	return json.Marshal(e)
}

type ServerCreated struct {
	RoomID domain.RoomID   `json:"roomId"`
	Name   domain.RoomName `json:"name"`
}

type ServerJoined struct {
	RoomID domain.RoomID   `json:"roomId"`
	Name   domain.RoomName `json:"name"`
	Users  []string        `json:"users"`
}

type ChatMessage struct {
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type TypingSignal struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

type WhoAmI struct {
	Username string          `json:"username,omitempty"`
	RoomID   domain.RoomID   `json:"roomId,omitempty"`
	RoomName domain.RoomName `json:"roomName,omitempty"`
}
