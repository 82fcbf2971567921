package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// Settings tune the WebSocket pumps.
type Settings struct {
	ReadLimit    int64
	PingPeriod   time.Duration
	WriteTimeout time.Duration
	SendBuffer   int
}

var DefaultSettings = Settings{
	ReadLimit:    32 << 10,
	PingPeriod:   54 * time.Second,
	WriteTimeout: 5 * time.Second,
	SendBuffer:   64,
}

func (s Settings) withDefaults() Settings {
	if s.ReadLimit <= 0 {
		s.ReadLimit = DefaultSettings.ReadLimit
	}
	if s.PingPeriod <= 0 {
		s.PingPeriod = DefaultSettings.PingPeriod
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = DefaultSettings.WriteTimeout
	}
	if s.SendBuffer <= 0 {
		s.SendBuffer = DefaultSettings.SendBuffer
	}
	return s
}

func (s Settings) pongWait() time.Duration {
	return s.PingPeriod * 10 / 9
}

type SignalWSController struct {
	Orch     *orch.Orchestrator
	Limiter  *RateLimiter
	Settings Settings
}

func NewSignalWSController(o *orch.Orchestrator, limiter *RateLimiter, settings Settings) *SignalWSController {
	return &SignalWSController{
		Orch:     o,
		Limiter:  limiter,
		Settings: settings.withDefaults(),
	}
}

// WsSignalConn implements core.SignalConnection over a gorilla socket.
type WsSignalConn struct {
	conn   *websocket.Conn
	send   chan core.Frame
	done   <-chan struct{}
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

// Done is closed once the link's transport context is canceled.
func (c *WsSignalConn) Done() <-chan struct{} { return c.done }

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	id := domain.ConnID(uuid.NewString())
	logger := log.With().Str("module", "signal").Str("conn", string(id)).Str("client", c.GetString("client_token")).Logger()
	logger.Info().Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	conn := &WsSignalConn{
		conn:   ws,
		send:   make(chan core.Frame, ctl.Settings.SendBuffer),
		done:   ctx.Done(),
		cancel: cancel,
	}
	ctl.Orch.Connect(id, conn, cancel)

	go ctl.writePump(ctx, id, conn)
	go ctl.readPump(ctx, id, conn)
}
