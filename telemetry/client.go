package telemetry

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"Citybus/route"
	"Citybus/sim"
)

// Client follows a remote simulation. The reader goroutine fills the latest
// snapshot and a short event history; the frame loop reads them.
type Client struct {
	ID string

	conn      net.Conn
	route     *route.Route
	mutex     sync.Mutex
	connected atomic.Bool
	session   string
	state     sim.Snapshot
	haveState bool
	recent    []sim.Event
	done      chan struct{}
}

func NewClient(r *route.Route) *Client {
	return &Client{ID: uuid.NewString(), route: r}
}

func (c *Client) Connect(address string) error {
	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", address, err)
	}
	c.conn = conn
	c.done = make(chan struct{})
	c.connected.Store(true)

	if _, err := conn.Write([]byte(CmdJoin + ":" + c.ID + "\n")); err != nil {
		c.Disconnect()
		return fmt.Errorf("join %s: %w", address, err)
	}

	go c.listen()
	go c.pingRoutine()
	return nil
}

func (c *Client) Connected() bool {
	return c.connected.Load()
}

func (c *Client) Disconnect() {
	if c.connected.CompareAndSwap(true, false) {
		close(c.done)
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// Session is the ID the server announced, empty until HELLO arrives.
func (c *Client) Session() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.session
}

// Snapshot returns the latest state and whether any has arrived yet.
func (c *Client) Snapshot() (sim.Snapshot, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state, c.haveState
}

// Recent returns up to MAX_RECENT_EVENT events, oldest first.
func (c *Client) Recent() []sim.Event {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]sim.Event, len(c.recent))
	copy(out, c.recent)
	return out
}

func (c *Client) pingRoutine() {
	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
		}
		if _, err := c.conn.Write([]byte(CmdPing + "\n")); err != nil {
			slog.Debug("ping failed", "err", err)
			c.Disconnect()
			return
		}
	}
}

func (c *Client) listen() {
	defer c.Disconnect()

	reader := bufio.NewReader(c.conn)
	for c.Connected() {
		c.conn.SetReadDeadline(time.Now().Add(time.Second))
		lineBytes, err := reader.ReadBytes('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if c.Connected() {
				slog.Info("telemetry connection closed", "err", err)
			}
			return
		}

		msg := strings.TrimSpace(string(lineBytes))
		if msg == "" {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg string) {
	cmd, rest, _ := strings.Cut(msg, ":")

	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch cmd {
	case CmdHello:
		c.session = rest
		slog.Info("watching session", "session", rest)
	case CmdState:
		snap, err := DecodeState(msg, c.route)
		if err != nil {
			slog.Debug("bad state line", "err", err)
			return
		}
		c.state = snap
		c.haveState = true
	case CmdEvent:
		e, err := DecodeEvent(msg)
		if err != nil {
			slog.Debug("bad event line", "err", err)
			return
		}
		c.recent = append(c.recent, e)
		if len(c.recent) > MAX_RECENT_EVENT {
			c.recent = c.recent[len(c.recent)-MAX_RECENT_EVENT:]
		}
	case CmdPing:
	default:
		slog.Debug("unexpected server message", "msg", msg)
	}
}
