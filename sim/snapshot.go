package sim

import "Citybus/route"

// Snapshot is what a renderer needs for one frame.
type Snapshot struct {
	Stations             []route.Point
	Bus                  route.Point
	DoorsOpen            bool
	CurrentStation       int
	NextStation          int
	Progress             float32
	Passengers           int
	TotalFines           int
	InspectorAboard      bool
	InspectorExitStation int
}

func (s *Simulator) Snapshot(st *State) Snapshot {
	stations := s.Route.Stations()
	positions := make([]route.Point, len(stations))
	for i, station := range stations {
		positions[i] = station.Position
	}
	return Snapshot{
		Stations:             positions,
		Bus:                  s.BusPosition(st),
		DoorsOpen:            st.AtStation,
		CurrentStation:       st.CurrentStation,
		NextStation:          st.NextStation,
		Progress:             st.Progress,
		Passengers:           st.Passengers,
		TotalFines:           st.TotalFines,
		InspectorAboard:      st.InspectorAboard,
		InspectorExitStation: st.InspectorExitStation,
	}
}

// Digits splits n into the two decimal digits a two-digit counter shows.
// Values of 100 and above wrap.
func Digits(n int) (tens, ones int) {
	if n < 0 {
		n = -n
	}
	n %= 100
	return n / 10, n % 10
}
