package sim

import (
	"math/rand"

	"Citybus/route"
)

// Simulator advances a State along a Route.
type Simulator struct {
	Route *route.Route
	RNG   *rand.Rand
}

// NewSimulator constructs a simulator whose fine draws come from seed.
func NewSimulator(r *route.Route, seed int64) *Simulator {
	return &Simulator{
		Route: r,
		RNG:   rand.New(rand.NewSource(seed)),
	}
}

// Step advances st by dt seconds, applies pending intents and clears them.
// Events come back in the order they happened.
func (s *Simulator) Step(st *State, in *Intents, dt float32) []Event {
	var events []Event
	if st.AtStation {
		events = s.dwell(st, in, dt, events)
	} else {
		events = s.drive(st, dt, events)
	}
	in.Clear()
	return events
}

func (s *Simulator) dwell(st *State, in *Intents, dt float32, events []Event) []Event {
	st.DwellTimer += dt

	if in.Board && st.Passengers < MAX_PASSENGERS {
		st.Passengers++
		events = append(events, Boarded{Station: st.CurrentStation, Passengers: st.Passengers})
	}
	if in.Deboard && st.RidingPassengers() > 0 {
		st.Passengers--
		events = append(events, Deboarded{Station: st.CurrentStation, Passengers: st.Passengers})
	}
	if in.Inspector && !st.InspectorAboard && st.Passengers < MAX_PASSENGERS {
		st.InspectorAboard = true
		st.Passengers++
		st.InspectorExitStation = s.Route.Next(st.CurrentStation)
		events = append(events, InspectorBoarded{
			Station:     st.CurrentStation,
			ExitStation: st.InspectorExitStation,
			Passengers:  st.Passengers,
		})
	}

	if st.DwellTimer+SETTLE_TOLERANCE >= STATION_WAIT_TIME {
		st.AtStation = false
		st.DwellTimer = 0
		st.Progress = 0
		events = append(events, Departed{From: st.CurrentStation, To: st.NextStation})
	}
	return events
}

func (s *Simulator) drive(st *State, dt float32, events []Event) []Event {
	st.Progress += BUS_SPEED * dt
	if st.Progress+SETTLE_TOLERANCE < 1 {
		return events
	}

	st.Progress = 1
	st.AtStation = true
	st.DwellTimer = 0
	st.CurrentStation = st.NextStation
	st.NextStation = s.Route.Next(st.CurrentStation)
	events = append(events, Arrived{Station: st.CurrentStation})

	if st.InspectorAboard && st.CurrentStation == st.InspectorExitStation {
		st.Passengers--
		fines := s.drawFines(st.Passengers)
		st.TotalFines += fines
		st.InspectorAboard = false
		st.InspectorExitStation = NO_STATION
		events = append(events, InspectorExited{
			Station:    st.CurrentStation,
			Fines:      fines,
			TotalFines: st.TotalFines,
			Passengers: st.Passengers,
		})
	}
	return events
}

// drawFines picks how many of the remaining passengers ride without a ticket.
func (s *Simulator) drawFines(remaining int) int {
	if remaining <= 0 {
		return 0
	}
	return s.RNG.Intn(remaining + 1)
}

// BusPosition is the station position while dwelling, otherwise the point on
// the current segment at the current progress.
func (s *Simulator) BusPosition(st *State) route.Point {
	if st.AtStation {
		return s.Route.Station(st.CurrentStation).Position
	}
	return s.Route.PointAt(st.CurrentStation, st.Progress)
}
