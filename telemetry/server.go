package telemetry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"Citybus/sim"
)

const (
	VIEWER_TIMEOUT   = 15 * time.Second
	REAP_INTERVAL    = 5 * time.Second
	STATE_INTERVAL   = 50 * time.Millisecond
	WRITE_DEADLINE   = 100 * time.Millisecond
	READ_DEADLINE    = 5 * time.Second
	PING_INTERVAL    = 5 * time.Second
	MAX_RECENT_EVENT = 8
	VIEWER_QUEUE     = 64
)

// Viewer is one spectator connection. Lines queued on out are written by the
// viewer's own goroutine so Publish never waits on the network.
type Viewer struct {
	Conn     net.Conn
	ID       string
	LastSeen time.Time

	out chan string
}

// Server broadcasts simulation state to spectators. Publish is called from
// the frame loop; everything else runs on the server's own goroutines.
type Server struct {
	SessionID string

	listener  net.Listener
	viewers   map[net.Conn]*Viewer
	lastState string
	lastSent  time.Time
	mutex     sync.Mutex
	running   bool
	cancel    context.CancelFunc
	group     *errgroup.Group
}

func NewServer() *Server {
	return &Server{SessionID: uuid.NewString()}
}

// Start listens on port (0 picks a free one) and serves viewers until Stop.
func (s *Server) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s.mutex.Lock()
	s.listener = ln
	s.viewers = make(map[net.Conn]*Viewer)
	s.running = true
	s.cancel = cancel
	s.group = group
	s.mutex.Unlock()

	group.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})
	group.Go(func() error {
		s.reapRoutine(ctx)
		return nil
	})
	group.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Debug("accept failed", "err", err)
				continue
			}
			viewer := s.register(conn)
			if viewer == nil {
				conn.Close()
				return nil
			}
			group.Go(func() error {
				writeLoop(viewer)
				return nil
			})
			group.Go(func() error {
				s.handleViewer(ctx, conn)
				return nil
			})
		}
	})

	slog.Info("telemetry server listening", "addr", ln.Addr().String(), "session", s.SessionID)
	return nil
}

func (s *Server) Addr() net.Addr {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Stop() error {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	for _, viewer := range s.viewers {
		s.drop(viewer)
	}
	group := s.group
	s.mutex.Unlock()

	return group.Wait()
}

func (s *Server) register(conn net.Conn) *Viewer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.running {
		return nil
	}
	viewer := &Viewer{Conn: conn, LastSeen: time.Now(), out: make(chan string, VIEWER_QUEUE)}
	s.viewers[conn] = viewer
	return viewer
}

// drop expects s.mutex to be held. Only viewers still in the map are closed,
// so out is closed exactly once.
func (s *Server) drop(viewer *Viewer) {
	if _, exists := s.viewers[viewer.Conn]; !exists {
		return
	}
	delete(s.viewers, viewer.Conn)
	close(viewer.out)
	viewer.Conn.Close()
}

func writeLoop(viewer *Viewer) {
	failed := false
	for msg := range viewer.out {
		if failed {
			continue
		}
		viewer.Conn.SetWriteDeadline(time.Now().Add(WRITE_DEADLINE))
		if _, err := viewer.Conn.Write([]byte(msg + "\n")); err != nil {
			slog.Debug("write to viewer failed", "viewer", viewer.ID, "err", err)
			viewer.Conn.Close()
			failed = true
		}
	}
}

// Viewers returns the number of joined spectators.
func (s *Server) Viewers() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	joined := 0
	for _, viewer := range s.viewers {
		if viewer.ID != "" {
			joined++
		}
	}
	return joined
}

// Publish sends events immediately and the state line at most every
// STATE_INTERVAL, unless events force it out.
func (s *Server) Publish(now time.Time, snap sim.Snapshot, events []sim.Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.running {
		return
	}

	state := EncodeState(snap)
	s.lastState = state

	for _, e := range events {
		if line, ok := EncodeEvent(e); ok {
			s.broadcastToAll(line)
		}
	}
	if len(events) == 0 && now.Sub(s.lastSent) < STATE_INTERVAL {
		return
	}
	s.lastSent = now
	s.broadcastToAll(state)
}

func (s *Server) reapRoutine(ctx context.Context) {
	ticker := time.NewTicker(REAP_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s.mutex.Lock()
		now := time.Now()
		for _, viewer := range s.viewers {
			if now.Sub(viewer.LastSeen) > VIEWER_TIMEOUT {
				slog.Debug("dropping idle viewer", "viewer", viewer.ID, "remote_addr", viewer.Conn.RemoteAddr())
				s.drop(viewer)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *Server) handleViewer(ctx context.Context, conn net.Conn) {
	defer func() {
		s.mutex.Lock()
		if viewer, exists := s.viewers[conn]; exists {
			if viewer.ID != "" {
				slog.Info("viewer left", "viewer", viewer.ID)
			}
			s.drop(viewer)
		}
		s.mutex.Unlock()
	}()

	reader := bufio.NewReader(conn)
	for ctx.Err() == nil {
		conn.SetReadDeadline(time.Now().Add(READ_DEADLINE))
		lineBytes, err := reader.ReadBytes('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return
		}
		msg := strings.TrimSpace(string(lineBytes))
		if msg == "" {
			continue
		}
		s.handleMessage(msg, conn)
	}
}

func (s *Server) handleMessage(msg string, conn net.Conn) {
	parts := strings.Split(msg, ":")

	s.mutex.Lock()
	defer s.mutex.Unlock()

	viewer, exists := s.viewers[conn]
	if !exists {
		return
	}
	viewer.LastSeen = time.Now()

	switch parts[0] {
	case CmdPing:
		return
	case CmdJoin:
		if len(parts) != 2 || parts[1] == "" {
			slog.Debug("bad join", "msg", msg)
			return
		}
		viewer.ID = parts[1]
		slog.Info("viewer joined", "viewer", viewer.ID, "remote_addr", conn.RemoteAddr())
		s.writeTo(viewer, CmdHello+":"+s.SessionID)
		if s.lastState != "" {
			s.writeTo(viewer, s.lastState)
		}
	default:
		slog.Debug("unexpected viewer message", "msg", msg)
	}
}

// broadcastToAll expects s.mutex to be held.
func (s *Server) broadcastToAll(msg string) {
	for _, viewer := range s.viewers {
		if viewer.ID != "" {
			s.writeTo(viewer, msg)
		}
	}
}

// writeTo expects s.mutex to be held. A viewer whose queue is full is
// dropped rather than waited on.
func (s *Server) writeTo(viewer *Viewer, msg string) {
	if _, exists := s.viewers[viewer.Conn]; !exists {
		return
	}
	select {
	case viewer.out <- msg:
	default:
		slog.Debug("viewer too slow, dropping", "viewer", viewer.ID)
		s.drop(viewer)
	}
}
