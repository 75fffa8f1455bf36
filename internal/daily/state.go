package daily

// State is the daily refresh state for one calendar date.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
)

// validTransitions defines allowed state transitions within one date.
// A new date resets the state to pending.
var validTransitions = map[State][]State{
	StatePending: {StateRunning},
	StateRunning: {StateDone},
	StateDone:    {}, // terminal until the date changes
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s State) CanTransitionTo(target State) bool {
	for _, v := range validTransitions[s] {
		if v == target {
			return true
		}
	}
	return false
}
