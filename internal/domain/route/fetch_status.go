package route

import (
	"fmt"

	"github.com/spotlog/service-planner/internal/platform/domain"
)

// FetchStatus is the state of the route lookup for the current pair.
type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusSuccess FetchStatus = "success"
	StatusFailed  FetchStatus = "failed"
)

// validTransitions defines the lookup state machine. Loading may be
// re-entered from any state, including Loading itself when a newer request
// supersedes one in flight. Idle is reachable again when the mode or pair no
// longer allows a lookup.
var validTransitions = map[FetchStatus][]FetchStatus{
	StatusIdle:    {StatusLoading, StatusIdle},
	StatusLoading: {StatusLoading, StatusSuccess, StatusFailed, StatusIdle},
	StatusSuccess: {StatusLoading, StatusIdle},
	StatusFailed:  {StatusLoading, StatusIdle},
}

// IsValid returns true if the status is a recognized fetch status.
func (s FetchStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s FetchStatus) CanTransitionTo(target FetchStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the transition is allowed, or an
// InvalidStateError otherwise.
func (s FetchStatus) TransitionTo(target FetchStatus) (FetchStatus, error) {
	if !s.CanTransitionTo(target) {
		return s, domain.NewInvalidStateError(s.String(), target.String())
	}
	return target, nil
}

// String returns the string representation of the status.
func (s FetchStatus) String() string {
	return string(s)
}

// ParseFetchStatus converts a string to a FetchStatus, returning an error if invalid.
func ParseFetchStatus(s string) (FetchStatus, error) {
	status := FetchStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid fetch status: %s", s)
	}
	return status, nil
}
