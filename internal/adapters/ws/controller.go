package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/hub"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Hub        *hub.Hub
	Repo       *app.Repository
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewController(h *hub.Hub, repo *app.Repository, readLimit int64, pingPeriod time.Duration) *Controller {
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &Controller{Hub: h, Repo: repo, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

type wsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
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

// Handle upgrades the request and runs the connection until it drops.
// The connection belongs to no group until its register message
// arrives; on disconnect it is removed from the hub.
func (ctl *Controller) Handle(ctx context.Context, c *gin.Context) {
	id := uuid.NewString()
	log.Info().Str("module", "ws").Str("conn_id", id).Msg("new WS connection")

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		sock.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsConn{
		conn: sock,
		send: make(chan []byte, 32),
	}
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, cancel, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
