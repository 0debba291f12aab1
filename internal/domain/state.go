package domain

import "fmt"

// TrackingState is the state of the shift state machine.
// The numeric values are persisted and must never be renumbered.
type TrackingState uint8

const (
	StateTracking TrackingState = 1
	StateStopped  TrackingState = 2
	StatePaused   TrackingState = 3
)

// String returns the lowercase state name
func (s TrackingState) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the known states
func (s TrackingState) Valid() bool {
	switch s {
	case StateTracking, StateStopped, StatePaused:
		return true
	}
	return false
}

// ParseTrackingState converts a persisted tag into a TrackingState
func ParseTrackingState(tag uint8) (TrackingState, error) {
	s := TrackingState(tag)
	if !s.Valid() {
		return 0, fmt.Errorf("unknown tracking state tag %d", tag)
	}
	return s, nil
}
