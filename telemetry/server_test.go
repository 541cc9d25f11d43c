package telemetry

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Citybus/route"
	"Citybus/sim"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv := NewServer()
	require.NoError(t, srv.Start(0))
	t.Cleanup(func() { srv.Stop() })

	port := srv.Addr().(*net.TCPAddr).Port
	return srv, fmt.Sprintf("127.0.0.1:%d", port)
}

func TestServer_JoinReceivesHelloAndLastState(t *testing.T) {
	srv, addr := startServer(t)

	r := route.Default()
	s := sim.NewSimulator(r, 1)
	st := sim.NewState(r)
	st.Passengers = 3
	srv.Publish(time.Now(), s.Snapshot(&st), nil)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("JOIN:viewer-1\n"))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	reader := bufio.NewReader(conn)

	hello, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HELLO:"+srv.SessionID, strings.TrimSpace(hello))

	state, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, EncodeState(s.Snapshot(&st)), strings.TrimSpace(state))

	assert.Eventually(t, func() bool { return srv.Viewers() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_IgnoresViewersThatHaveNotJoined(t *testing.T) {
	srv, addr := startServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	srv.Publish(time.Now(), sim.Snapshot{}, []sim.Event{sim.Arrived{Station: 1}})
	assert.Equal(t, 0, srv.Viewers())

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	buf := make([]byte, 64)
	_, err = conn.Read(buf)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestServer_StopIsIdempotent(t *testing.T) {
	srv := NewServer()
	require.NoError(t, srv.Start(0))
	assert.NoError(t, srv.Stop())
	assert.NoError(t, srv.Stop())

	srv.Publish(time.Now(), sim.Snapshot{}, []sim.Event{sim.Arrived{Station: 1}})
}

func TestServer_SlowViewerIsDroppedWithoutBlocking(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()

	srv := NewServer()
	viewer := &Viewer{Conn: local, ID: "slow", LastSeen: time.Now(), out: make(chan string, 1)}
	srv.viewers = map[net.Conn]*Viewer{local: viewer}
	srv.running = true

	start := time.Now()
	for i := 0; i < 10; i++ {
		srv.Publish(start.Add(time.Duration(i)*time.Second), sim.Snapshot{}, []sim.Event{sim.Arrived{Station: 1}})
	}
	assert.Less(t, time.Since(start), WRITE_DEADLINE)
	assert.Equal(t, 0, srv.Viewers())

	_, open := <-viewer.out
	assert.True(t, open, "the queued line is still drained by the writer")
	_, open = <-viewer.out
	assert.False(t, open)
}

func TestClient_FollowsServer(t *testing.T) {
	srv, addr := startServer(t)

	r := route.Default()
	s := sim.NewSimulator(r, 1)
	st := sim.NewState(r)

	client := NewClient(r)
	require.NoError(t, client.Connect(addr))
	defer client.Disconnect()

	assert.Eventually(t, func() bool {
		srv.Publish(time.Now().Add(time.Hour), s.Snapshot(&st), nil)
		_, ok := client.Snapshot()
		return ok
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, srv.SessionID, client.Session())

	in := sim.Intents{Board: true}
	events := s.Step(&st, &in, 0.1)
	require.NotEmpty(t, events)
	srv.Publish(time.Now(), s.Snapshot(&st), events)

	assert.Eventually(t, func() bool {
		snap, _ := client.Snapshot()
		return snap.Passengers == 1 && len(client.Recent()) == 1
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, []sim.Event{sim.Boarded{Station: 0, Passengers: 1}}, client.Recent())

	snap, _ := client.Snapshot()
	assert.True(t, snap.DoorsOpen)
	assert.Equal(t, r.Station(0).Position, snap.Bus)
}

func TestClient_RecentIsBounded(t *testing.T) {
	client := NewClient(route.Default())
	for i := 0; i < MAX_RECENT_EVENT+5; i++ {
		client.handleMessage(fmt.Sprintf("EVENT:ARRIVE:%d", i%route.NUM_STATIONS))
	}
	recent := client.Recent()
	require.Len(t, recent, MAX_RECENT_EVENT)
	assert.Equal(t, sim.Arrived{Station: (MAX_RECENT_EVENT + 4) % route.NUM_STATIONS}, recent[len(recent)-1])
}

func TestClient_ConnectFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	client := NewClient(route.Default())
	assert.Error(t, client.Connect(addr))
	assert.False(t, client.Connected())
}
