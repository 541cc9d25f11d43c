package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Citybus/route"
	"Citybus/sim"
)

// Lines on the wire are "CMD:field:field\n".
const (
	CmdHello = "HELLO"
	CmdJoin  = "JOIN"
	CmdPing  = "PING"
	CmdState = "STATE"
	CmdEvent = "EVENT"

	EventBoarded      = "BOARDED"
	EventDeboarded    = "DEBOARDED"
	EventInspectorIn  = "INSPECTOR_IN"
	EventInspectorOut = "INSPECTOR_OUT"
	EventDeparted     = "DEPART"
	EventArrived      = "ARRIVE"
)

const (
	stateFieldCount      = 11
	minEventFieldCount   = 3
	progressFormatDigits = 4
)

var ErrMalformed = errors.New("malformed message")

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', progressFormatDigits, 32)
}

// EncodeState renders the dynamic part of a snapshot. Station positions are
// not sent; both ends use the same fixed route.
func EncodeState(s sim.Snapshot) string {
	return strings.Join([]string{
		CmdState,
		strconv.Itoa(s.CurrentStation),
		strconv.Itoa(s.NextStation),
		formatFloat(s.Progress),
		boolField(s.DoorsOpen),
		formatFloat(s.Bus.X),
		formatFloat(s.Bus.Y),
		strconv.Itoa(s.Passengers),
		strconv.Itoa(s.TotalFines),
		boolField(s.InspectorAboard),
		strconv.Itoa(s.InspectorExitStation),
	}, ":")
}

// DecodeState parses a STATE line and fills in stations from r.
func DecodeState(line string, r *route.Route) (sim.Snapshot, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) != stateFieldCount || parts[0] != CmdState {
		return sim.Snapshot{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}

	ints := make([]int, 0, 5)
	for _, i := range []int{1, 2, 7, 8, 10} {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return sim.Snapshot{}, fmt.Errorf("%w: field %d: %v", ErrMalformed, i, err)
		}
		ints = append(ints, v)
	}
	floats := make([]float32, 0, 3)
	for _, i := range []int{3, 5, 6} {
		v, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return sim.Snapshot{}, fmt.Errorf("%w: field %d: %v", ErrMalformed, i, err)
		}
		floats = append(floats, float32(v))
	}

	stations := r.Stations()
	positions := make([]route.Point, len(stations))
	for i, st := range stations {
		positions[i] = st.Position
	}

	return sim.Snapshot{
		Stations:             positions,
		CurrentStation:       ints[0],
		NextStation:          ints[1],
		Progress:             floats[0],
		DoorsOpen:            parts[4] == "1",
		Bus:                  route.NewPoint(floats[1], floats[2]),
		Passengers:           ints[2],
		TotalFines:           ints[3],
		InspectorAboard:      parts[9] == "1",
		InspectorExitStation: ints[4],
	}, nil
}

func EncodeEvent(e sim.Event) (string, bool) {
	var fields []string
	switch ev := e.(type) {
	case sim.Boarded:
		fields = []string{EventBoarded, strconv.Itoa(ev.Station), strconv.Itoa(ev.Passengers)}
	case sim.Deboarded:
		fields = []string{EventDeboarded, strconv.Itoa(ev.Station), strconv.Itoa(ev.Passengers)}
	case sim.InspectorBoarded:
		fields = []string{EventInspectorIn, strconv.Itoa(ev.Station), strconv.Itoa(ev.ExitStation), strconv.Itoa(ev.Passengers)}
	case sim.InspectorExited:
		fields = []string{EventInspectorOut, strconv.Itoa(ev.Station), strconv.Itoa(ev.Fines), strconv.Itoa(ev.TotalFines), strconv.Itoa(ev.Passengers)}
	case sim.Departed:
		fields = []string{EventDeparted, strconv.Itoa(ev.From), strconv.Itoa(ev.To)}
	case sim.Arrived:
		fields = []string{EventArrived, strconv.Itoa(ev.Station)}
	default:
		return "", false
	}
	return CmdEvent + ":" + strings.Join(fields, ":"), true
}

func DecodeEvent(line string) (sim.Event, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < minEventFieldCount || parts[0] != CmdEvent {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	kind := parts[1]
	nums := make([]int, 0, len(parts)-2)
	for _, p := range parts[2:] {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, line, err)
		}
		nums = append(nums, v)
	}

	want := map[string]int{
		EventBoarded:      2,
		EventDeboarded:    2,
		EventInspectorIn:  3,
		EventInspectorOut: 4,
		EventDeparted:     2,
		EventArrived:      1,
	}
	n, known := want[kind]
	if !known {
		return nil, fmt.Errorf("%w: unknown event %q", ErrMalformed, kind)
	}
	if len(nums) != n {
		return nil, fmt.Errorf("%w: %s wants %d fields, got %d", ErrMalformed, kind, n, len(nums))
	}

	switch kind {
	case EventBoarded:
		return sim.Boarded{Station: nums[0], Passengers: nums[1]}, nil
	case EventDeboarded:
		return sim.Deboarded{Station: nums[0], Passengers: nums[1]}, nil
	case EventInspectorIn:
		return sim.InspectorBoarded{Station: nums[0], ExitStation: nums[1], Passengers: nums[2]}, nil
	case EventInspectorOut:
		return sim.InspectorExited{Station: nums[0], Fines: nums[1], TotalFines: nums[2], Passengers: nums[3]}, nil
	case EventDeparted:
		return sim.Departed{From: nums[0], To: nums[1]}, nil
	default:
		return sim.Arrived{Station: nums[0]}, nil
	}
}
