package pipeline

import "fmt"

// State identifies a phase of one conversion run. Runs move through the
// states in declaration order and finish at StateDone.
type State uint8

const (
	StateExtracting State = iota
	StateRendering
	StateRepacking
	StateConverting
	StateCleaningUp
	StateDone
)

var stateNames = [...]string{
	StateExtracting: "extracting",
	StateRendering:  "rendering",
	StateRepacking:  "repacking",
	StateConverting: "converting",
	StateCleaningUp: "cleaning_up",
	StateDone:       "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Transition validates a move from s to next. Runs are strictly linear, so
// the only legal move is to the immediately following state.
func (s State) Transition(next State) error {
	if next != s+1 || next > StateDone {
		return fmt.Errorf("pipeline: illegal state transition %s -> %s", s, next)
	}
	return nil
}
