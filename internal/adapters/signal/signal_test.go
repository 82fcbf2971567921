package signal

import (
	"strings"
	"testing"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/core/coretest"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, limiter *RateLimiter) *SignalWSController {
	t.Helper()
	o := orch.New(app.NewRegistry(), app.NewRoomStore("general", "General Chat", nil), app.SimplePolicy{}, "admin123")
	return NewSignalWSController(o, limiter, Settings{})
}

func connect(ctl *SignalWSController, id domain.ConnID) *coretest.Sink {
	sink := coretest.NewSink()
	ctl.Orch.Connect(id, sink, nil)
	sink.Reset()
	return sink
}

func lastString(t *testing.T, s *coretest.Sink, et core.EventType) string {
	t.Helper()
	var msg string
	require.True(t, s.Last(et, &msg), "no %s event", et)
	return msg
}

func TestSettingsDefaults(t *testing.T) {
	got := Settings{PingPeriod: 9}.withDefaults()
	assert.Equal(t, DefaultSettings.ReadLimit, got.ReadLimit)
	assert.EqualValues(t, 9, got.PingPeriod)
	assert.EqualValues(t, 10, got.pongWait())
	assert.Equal(t, DefaultSettings.SendBuffer, got.SendBuffer)
}

func TestBadPayload(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")

	ctl.handleSignal("c1", s, []byte(`not json`))
	ctl.handleSignal("c1", s, []byte(`{"type":"message","text":7}`))

	assert.Equal(t, 2, s.Count(core.EventError))
	assert.Equal(t, "bad_payload", lastString(t, s, core.EventError))
}

func TestUnknownTypeIsIgnored(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")
	ctl.handleSignal("c1", s, []byte(`{"type":"dance"}`))
	assert.Empty(t, s.Events())
}

func TestCreateServerValidatesName(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")

	ctl.handleSignal("c1", s, []byte(`{"type":"createServer","name":""}`))
	assert.Equal(t, domain.ErrRoomNameEmpty.Error(), lastString(t, s, core.EventError))

	long := strings.Repeat("x", domain.MaxRoomNameLen+1)
	ctl.handleSignal("c1", s, []byte(`{"type":"createServer","name":"`+long+`"}`))
	assert.Equal(t, domain.ErrRoomNameTooLong.Error(), lastString(t, s, core.EventError))

	assert.Len(t, ctl.Orch.ListRooms(), 1)
}

func TestCreateAndJoinServer(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")

	ctl.handleSignal("c1", s, []byte(`{"type":"createServer","name":"Team","password":"abc"}`))
	var created core.ServerCreated
	require.True(t, s.Last(core.EventServerCreated, &created))
	assert.Equal(t, domain.RoomName("Team"), created.Name)

	ctl.handleSignal("c1", s, []byte(`{"type":"joinServer","roomId":"`+string(created.RoomID)+`","username":"Ann","password":"nope"}`))
	assert.Equal(t, domain.ErrBadPassword.Error(), lastString(t, s, core.EventJoinError))

	ctl.handleSignal("c1", s, []byte(`{"type":"joinServer","roomId":"missing","username":"Ann"}`))
	assert.Equal(t, domain.ErrRoomNotFound.Error(), lastString(t, s, core.EventJoinError))

	ctl.handleSignal("c1", s, []byte(`{"type":"joinServer","roomId":"`+string(created.RoomID)+`","username":"","password":"abc"}`))
	assert.Equal(t, domain.ErrUsernameEmpty.Error(), lastString(t, s, core.EventJoinError))

	ctl.handleSignal("c1", s, []byte(`{"type":"joinServer","roomId":"`+string(created.RoomID)+`","username":"Ann","password":"abc"}`))
	var joined core.ServerJoined
	require.True(t, s.Last(core.EventServerJoined, &joined))
	assert.Equal(t, created.RoomID, joined.RoomID)
	assert.Equal(t, []string{"Ann"}, joined.Users)
	assert.Equal(t, 3, s.Count(core.EventJoinError))
}

func TestLegacyJoinUsesDefaultRoom(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")

	ctl.handleSignal("c1", s, []byte(`{"type":"join","username":"Ann"}`))
	ctl.handleSignal("c1", s, []byte(`{"type":"whoami"}`))

	var who core.WhoAmI
	require.True(t, s.Last(core.EventWhoAmI, &who))
	assert.Equal(t, core.WhoAmI{Username: "Ann", RoomID: "general", RoomName: "General Chat"}, who)
}

func TestLeaveServerAcknowledges(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")
	ctl.handleSignal("c1", s, []byte(`{"type":"join","username":"Ann"}`))
	ctl.handleSignal("c1", s, []byte(`{"type":"leaveServer"}`))

	assert.Equal(t, 1, s.Count(core.EventServerLeft))
	assert.Equal(t, core.WhoAmI{}, ctl.Orch.WhoAmI("c1"))
}

func TestMessageAndTyping(t *testing.T) {
	ctl := newController(t, nil)
	a := connect(ctl, "a")
	b := connect(ctl, "b")
	ctl.handleSignal("a", a, []byte(`{"type":"join","username":"Ann"}`))
	ctl.handleSignal("b", b, []byte(`{"type":"join","username":"Bo"}`))
	a.Reset()
	b.Reset()

	ctl.handleSignal("a", a, []byte(`{"type":"message","text":"hi"}`))
	ctl.handleSignal("a", a, []byte(`{"type":"typing","isTyping":true}`))

	var msg core.ChatMessage
	require.True(t, b.Last(core.EventMessage, &msg))
	assert.Equal(t, "Ann", msg.Username)
	assert.Equal(t, "hi", msg.Text)
	assert.Equal(t, 1, a.Count(core.EventMessage))
	assert.Equal(t, 1, b.Count(core.EventTyping))
	assert.Equal(t, 0, a.Count(core.EventTyping))
}

func TestMessageRateLimited(t *testing.T) {
	ctl := newController(t, NewRateLimiter(0.001, 2))
	a := connect(ctl, "a")
	ctl.handleSignal("a", a, []byte(`{"type":"join","username":"Ann"}`))
	a.Reset()

	for range 3 {
		ctl.handleSignal("a", a, []byte(`{"type":"message","text":"spam"}`))
	}
	ctl.handleSignal("a", a, []byte(`{"type":"typing","isTyping":true}`))

	assert.Equal(t, 2, a.Count(core.EventMessage))
	assert.Equal(t, 1, a.Count(core.EventError))
	assert.Equal(t, "rate_limited", lastString(t, a, core.EventError))
}

func TestAdminCommands(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")

	ctl.handleSignal("c1", s, []byte(`{"type":"resetAllServers","secret":"wrong"}`))
	assert.Equal(t, domain.ErrUnauthorized.Error(), lastString(t, s, core.EventAdminError))

	ctl.handleSignal("c1", s, []byte(`{"type":"endChatForAll"}`))
	assert.Equal(t, 2, s.Count(core.EventAdminError))

	ctl.handleSignal("c1", s, []byte(`{"type":"resetAllServers","secret":"admin123"}`))
	assert.Equal(t, orch.ResetSuccess, lastString(t, s, core.EventAdminSuccess))

	ctl.handleSignal("c1", s, []byte(`{"type":"endChatForAll","secret":"admin123"}`))
	assert.Equal(t, orch.EndSuccess, lastString(t, s, core.EventAdminSuccess))
}

func TestPing(t *testing.T) {
	ctl := newController(t, nil)
	s := connect(ctl, "c1")
	ctl.handleSignal("c1", s, []byte(`{"type":"ping"}`))
	assert.Equal(t, []core.EventType{core.EventPong}, s.Types())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	rl.Forget("a")
	assert.True(t, rl.Allow("a"))

	unlimited := NewRateLimiter(0, 0)
	for range 100 {
		require.True(t, unlimited.Allow("a"))
	}

	var none *RateLimiter
	assert.True(t, none.Allow("a"))
	none.Forget("a")
}
