package sim

// Intents latches one-shot input requests between ticks. Repeated presses
// before the next tick collapse into one.
type Intents struct {
	Board     bool
	Deboard   bool
	Inspector bool
	Exit      bool
}

// Clear drops the simulation latches. Exit stays set once requested.
func (in *Intents) Clear() {
	in.Board = false
	in.Deboard = false
	in.Inspector = false
}
