package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Citybus/route"
	"Citybus/sim"
)

func TestEncodeState(t *testing.T) {
	snap := sim.Snapshot{
		CurrentStation:       3,
		NextStation:          4,
		Progress:             0.25,
		DoorsOpen:            false,
		Bus:                  route.NewPoint(0.5, -0.125),
		Passengers:           12,
		TotalFines:           103,
		InspectorAboard:      true,
		InspectorExitStation: 4,
	}
	assert.Equal(t, "STATE:3:4:0.2500:0:0.5000:-0.1250:12:103:1:4", EncodeState(snap))
}

func TestDecodeState(t *testing.T) {
	r := route.Default()
	snap, err := DecodeState("STATE:9:0:1.0000:1:-0.7000:0.2000:0:7:0:-1\n", r)
	require.NoError(t, err)

	assert.Equal(t, 9, snap.CurrentStation)
	assert.Equal(t, 0, snap.NextStation)
	assert.Equal(t, float32(1), snap.Progress)
	assert.True(t, snap.DoorsOpen)
	assert.InDelta(t, -0.7, snap.Bus.X, 1e-6)
	assert.InDelta(t, 0.2, snap.Bus.Y, 1e-6)
	assert.Equal(t, 0, snap.Passengers)
	assert.Equal(t, 7, snap.TotalFines)
	assert.False(t, snap.InspectorAboard)
	assert.Equal(t, sim.NO_STATION, snap.InspectorExitStation)
	require.Len(t, snap.Stations, route.NUM_STATIONS)
	assert.Equal(t, r.Station(2).Position, snap.Stations[2])
}

func TestDecodeState_RoundTripsSimulation(t *testing.T) {
	r := route.Default()
	s := sim.NewSimulator(r, 1)
	st := sim.NewState(r)
	st.Passengers = 8
	st.TotalFines = 42

	want := s.Snapshot(&st)
	got, err := DecodeState(EncodeState(want), r)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeState_Malformed(t *testing.T) {
	r := route.Default()
	tests := []string{
		"",
		"STATE:1:2",
		"BUS:1:2:3:4:5:6:7:8:9:10",
		"STATE:x:2:0.5:1:0:0:1:1:0:-1",
		"STATE:1:2:fast:1:0:0:1:1:0:-1",
	}
	for _, line := range tests {
		_, err := DecodeState(line, r)
		assert.ErrorIs(t, err, ErrMalformed, "line %q", line)
	}
}

func TestEncodeEvent(t *testing.T) {
	tests := []struct {
		given    sim.Event
		expected string
	}{
		{given: sim.Boarded{Station: 2, Passengers: 5}, expected: "EVENT:BOARDED:2:5"},
		{given: sim.Deboarded{Station: 2, Passengers: 4}, expected: "EVENT:DEBOARDED:2:4"},
		{given: sim.InspectorBoarded{Station: 0, ExitStation: 1, Passengers: 6}, expected: "EVENT:INSPECTOR_IN:0:1:6"},
		{given: sim.InspectorExited{Station: 1, Fines: 3, TotalFines: 10, Passengers: 5}, expected: "EVENT:INSPECTOR_OUT:1:3:10:5"},
		{given: sim.Departed{From: 9, To: 0}, expected: "EVENT:DEPART:9:0"},
		{given: sim.Arrived{Station: 0}, expected: "EVENT:ARRIVE:0"},
	}

	for _, test := range tests {
		line, ok := EncodeEvent(test.given)
		require.True(t, ok)
		assert.Equal(t, test.expected, line)

		back, err := DecodeEvent(line)
		require.NoError(t, err)
		assert.Equal(t, test.given, back)
	}
}

func TestDecodeEvent_Malformed(t *testing.T) {
	tests := []string{
		"EVENT",
		"EVENT:BOARDED",
		"EVENT:BOARDED:1",
		"EVENT:ARRIVE:1:2",
		"EVENT:TELEPORT:1",
		"EVENT:ARRIVE:one",
		"STATE:ARRIVE:1",
	}
	for _, line := range tests {
		_, err := DecodeEvent(line)
		assert.ErrorIs(t, err, ErrMalformed, "line %q", line)
	}
}
