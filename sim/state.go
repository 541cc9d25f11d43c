package sim

import "Citybus/route"

const (
	TARGET_FPS        = 75.0
	BUS_SPEED         = 0.15
	STATION_WAIT_TIME = 10.0
	MAX_PASSENGERS    = 50
	NO_STATION        = -1

	// SETTLE_TOLERANCE absorbs float32 drift when dwell time and progress
	// accumulate many small steps. It is well under one tick of either.
	SETTLE_TOLERANCE = 1e-3
)

// State is the whole mutable simulation. The frame driver owns one value and
// passes it to Simulator.Step every tick.
type State struct {
	CurrentStation       int
	NextStation          int
	Progress             float32
	AtStation            bool
	DwellTimer           float32
	Passengers           int
	InspectorAboard      bool
	InspectorExitStation int
	TotalFines           int
}

// NewState parks the bus at the first station of r with nobody aboard.
func NewState(r *route.Route) State {
	return State{
		CurrentStation:       0,
		NextStation:          r.Next(0),
		AtStation:            true,
		InspectorExitStation: NO_STATION,
	}
}

// RidingPassengers counts passengers without the inspector's seat.
func (s *State) RidingPassengers() int {
	if s.InspectorAboard {
		return s.Passengers - 1
	}
	return s.Passengers
}
