package session

import "errors"

var (
	// ErrBusy means another request of the same kind is still in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrEmptyMessage is returned for messages that are blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("session controller closed")
)

// State is the input lifecycle of the controller. Input is disabled in
// every state but Idle.
type State int

const (
	Idle State = iota
	Submitting
	Clearing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Clearing:
		return "clearing"
	default:
		return "unknown"
	}
}
