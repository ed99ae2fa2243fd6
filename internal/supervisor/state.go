package supervisor

import (
	"fmt"
	"slices"

	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

// State is the lifecycle phase of a daemon Handle.
type State int

const (
	NotStarted State = iota
	Starting
	Ready
	StartFailed
	Crashed
	Stopping
	Stopped
)

var stateNames = [...]string{
	NotStarted:  "not started",
	Starting:    "starting",
	Ready:       "ready",
	StartFailed: "start failed",
	Crashed:     "crashed",
	Stopping:    "stopping",
	Stopped:     "stopped",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no process can be running in this state.
func (s State) Terminal() bool {
	return s == StartFailed || s == Stopped
}

var transitions = map[State][]State{
	NotStarted: {Starting},
	Starting:   {Ready, StartFailed},
	Ready:      {Stopping, Crashed},
	Crashed:    {Stopping},
	Stopping:   {Stopped},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, from, to)
	}

	return nil
}
