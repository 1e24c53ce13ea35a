package route

import (
	"fmt"
	"strings"
)

// TransportMode selects which estimate is requested for a pair.
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeTransit TransportMode = "transit"
	ModeCar     TransportMode = "car"
)

// DefaultMode is the mode a new planner starts in.
const DefaultMode = ModeWalk

// IsValid returns true for walk, transit and car.
func (m TransportMode) IsValid() bool {
	switch m {
	case ModeWalk, ModeTransit, ModeCar:
		return true
	}
	return false
}

// Fetchable reports whether the remote lookup supports this mode.
// Transit has no lookup.
func (m TransportMode) Fetchable() bool {
	return m == ModeWalk || m == ModeCar
}

// String returns the wire name of the mode.
func (m TransportMode) String() string {
	return string(m)
}

// ParseTransportMode converts a string to a TransportMode, returning an error if invalid.
func ParseTransportMode(s string) (TransportMode, error) {
	mode := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid transport mode: %q", s)
	}
	return mode, nil
}
