package route

import "strings"

// Kind tags which variant of Result is populated.
type Kind string

const (
	KindWalk    Kind = "walk"
	KindCar     Kind = "car"
	KindTransit Kind = "transit"
)

// WalkEstimate is the walking variant of a lookup result.
type WalkEstimate struct {
	DurationMinutes string
	DistanceText    string
	StepCountText   string
}

// CarEstimate is the driving variant of a lookup result.
type CarEstimate struct {
	DurationMinutes string
	DistanceText    string
	FareText        string
}

// Result is a tagged union over the per-mode lookup responses.
// Exactly one of Walk or Car is set for those kinds; transit carries nothing.
type Result struct {
	Kind Kind
	Walk *WalkEstimate
	Car  *CarEstimate
}

// NewWalkResult builds a walk result.
func NewWalkResult(w WalkEstimate) Result {
	return Result{Kind: KindWalk, Walk: &w}
}

// NewCarResult builds a car result.
func NewCarResult(c CarEstimate) Result {
	return Result{Kind: KindCar, Car: &c}
}

// Placeholder values shown when no estimate is available.
const (
	PlaceholderDuration = "12"
	PlaceholderDistance = "1.1km"
	PlaceholderSteps    = "3,600걸음"
	PlaceholderFare     = "-"
)

// Display holds the three fields the route box renders.
type Display struct {
	DurationMinutes string `json:"duration_minutes"`
	DistanceText    string `json:"distance_text"`
	DetailText      string `json:"detail_text,omitempty"`
	Placeholder     bool   `json:"placeholder"`
}

// Present renders result for mode. A nil result, a result of another kind,
// or empty fields fall back to the placeholders.
func Present(mode TransportMode, result *Result) Display {
	switch mode {
	case ModeWalk:
		if result != nil && result.Kind == KindWalk && result.Walk != nil {
			w := result.Walk
			return Display{
				DurationMinutes: orDefault(trimMinutes(w.DurationMinutes), PlaceholderDuration),
				DistanceText:    orDefault(w.DistanceText, PlaceholderDistance),
				DetailText:      orDefault(w.StepCountText, PlaceholderSteps),
			}
		}
		return Display{PlaceholderDuration, PlaceholderDistance, PlaceholderSteps, true}
	case ModeCar:
		if result != nil && result.Kind == KindCar && result.Car != nil {
			c := result.Car
			return Display{
				DurationMinutes: orDefault(trimMinutes(c.DurationMinutes), PlaceholderDuration),
				DistanceText:    orDefault(c.DistanceText, PlaceholderDistance),
				DetailText:      orDefault(c.FareText, PlaceholderFare),
			}
		}
		return Display{PlaceholderDuration, PlaceholderDistance, PlaceholderFare, true}
	default:
		return Display{DurationMinutes: PlaceholderDuration, DistanceText: PlaceholderDistance, Placeholder: true}
	}
}

// trimMinutes drops the trailing minute unit ("15분" -> "15").
func trimMinutes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "분")
	return strings.TrimSpace(s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
