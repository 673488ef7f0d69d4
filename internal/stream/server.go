// Package stream serves live simulations over websockets. Each connection
// gets its own sim.Context, owned by a single session goroutine; the read
// loop only forwards decoded messages to it.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/san-kum/rampsim/internal/sim"
	"github.com/san-kum/rampsim/internal/terrain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgKey     = "key"
	MsgTerrain = "terrain"
	MsgReset   = "reset"
	MsgFrame   = "frame"
	MsgError   = "error"

	DefaultInterval = time.Second / 60
)

var ErrBadMessage = errors.New("stream: bad message")

// Inbound is a client message. Key names follow control.ParseKey.
type Inbound struct {
	Type   string   `json:"type"`
	Key    string   `json:"key,omitempty"`
	Down   bool     `json:"down,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type Outbound struct {
	Type  string     `json:"type"`
	Frame *sim.Frame `json:"frame,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Factory builds a fresh simulation for a new session.
type Factory func() (*sim.Context, error)

type Server struct {
	open     Factory
	log      *zap.Logger
	upgrader websocket.Upgrader
	// Interval is the frame period pushed to clients.
	Interval time.Duration
	sessions atomic.Int64
}

func NewServer(open Factory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		open: open,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		Interval: DefaultInterval,
	}
}

// Sessions reports the number of open connections.
func (s *Server) Sessions() int { return int(s.sessions.Load()) }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("stream listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stream: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := s.log.With(zap.String("session", id), zap.String("remote", conn.RemoteAddr().String()))

	c, err := s.open()
	if err != nil {
		log.Error("open simulation", zap.Error(err))
		conn.WriteJSON(Outbound{Type: MsgError, Error: err.Error()})
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	log.Info("session opened")

	inbox := make(chan Inbound, 16)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return readLoop(ctx, conn, inbox) })
	g.Go(func() error {
		err := s.session(ctx, conn, c, inbox)
		conn.Close()
		return err
	})
	if err := g.Wait(); err != nil && !isClose(err) {
		log.Warn("session ended", zap.Error(err))
		return
	}
	log.Info("session closed")
}

func readLoop(ctx context.Context, conn *websocket.Conn, inbox chan<- Inbound) error {
	defer close(inbox)
	for {
		var msg Inbound
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		select {
		case inbox <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// session steps the simulation on every tick and applies inbound messages
// between frames.
func (s *Server) session(ctx context.Context, conn *websocket.Conn, c *sim.Context, inbox <-chan Inbound) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	var timer sim.FrameTimer
	timer.Tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-inbox:
			if !ok {
				return nil
			}
			if err := Apply(c, msg); err != nil {
				if werr := conn.WriteJSON(Outbound{Type: MsgError, Error: err.Error()}); werr != nil {
					return werr
				}
			}
		case now := <-ticker.C:
			f := c.Frame(timer.Tick(now))
			if err := conn.WriteJSON(Outbound{Type: MsgFrame, Frame: &f}); err != nil {
				return err
			}
		}
	}
}

// Apply routes one client message to the simulation.
func Apply(c *sim.Context, msg Inbound) error {
	switch msg.Type {
	case MsgKey:
		return c.HandleKeyName(msg.Key, msg.Down)
	case MsgReset:
		return c.ResetVehicle()
	case MsgTerrain:
		if len(msg.Fields) != terrain.FieldCount {
			return fmt.Errorf("%w: terrain wants %d fields, got %d", ErrBadMessage, terrain.FieldCount, len(msg.Fields))
		}
		var fields [terrain.FieldCount]string
		copy(fields[:], msg.Fields)
		return c.EditTerrain(fields)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
}

func isClose(err error) bool {
	return errors.Is(err, context.Canceled) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
		errors.Is(err, net.ErrClosed)
}
