package sim

import "log/slog"

// Event is a marker for everything Step reports back to the driver.
type Event interface{ isEvent() }

type Boarded struct {
	Station    int
	Passengers int
}

func (Boarded) isEvent() {}

type Deboarded struct {
	Station    int
	Passengers int
}

func (Deboarded) isEvent() {}

type InspectorBoarded struct {
	Station     int
	ExitStation int
	Passengers  int
}

func (InspectorBoarded) isEvent() {}

type Departed struct {
	From int
	To   int
}

func (Departed) isEvent() {}

type Arrived struct {
	Station int
}

func (Arrived) isEvent() {}

// InspectorExited carries the fines written at the inspector's stop.
type InspectorExited struct {
	Station    int
	Fines      int
	TotalFines int
	Passengers int
}

func (InspectorExited) isEvent() {}

// LogEvent writes e to logger at info level.
func LogEvent(logger *slog.Logger, e Event) {
	switch ev := e.(type) {
	case Boarded:
		logger.Info("passenger boarded", "station", ev.Station, "passengers", ev.Passengers)
	case Deboarded:
		logger.Info("passenger left", "station", ev.Station, "passengers", ev.Passengers)
	case InspectorBoarded:
		logger.Info("inspector boarded", "station", ev.Station, "exit_station", ev.ExitStation, "passengers", ev.Passengers)
	case Departed:
		logger.Info("bus departing", "from", ev.From, "to", ev.To)
	case Arrived:
		logger.Info("bus arrived", "station", ev.Station)
	case InspectorExited:
		logger.Info("inspector left", "station", ev.Station, "fines", ev.Fines, "total_fines", ev.TotalFines, "passengers", ev.Passengers)
	default:
		logger.Warn("unknown simulation event", "event", e)
	}
}
