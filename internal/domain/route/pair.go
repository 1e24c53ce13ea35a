package route

import (
	"fmt"

	"github.com/spotlog/service-planner/internal/domain/place"
)

// Pair is an adjacent origin/destination couple among enabled places.
// Indices are 1-based ranks and DestinationIndex == OriginIndex+1.
type Pair struct {
	Origin           place.Place
	Destination      place.Place
	OriginIndex      int
	DestinationIndex int
}

// Key identifies the pair by its endpoints and position.
func (p Pair) Key() string {
	return fmt.Sprintf("%d:%s>%d:%s", p.OriginIndex, p.Origin.Key(), p.DestinationIndex, p.Destination.Key())
}

// DerivePairs filters out disabled places and pairs each enabled place with
// the next one. Fewer than two enabled places yields no pairs.
func DerivePairs(places []place.Place) []Pair {
	enabled := make([]place.Place, 0, len(places))
	for _, p := range places {
		if p.IsEnabled() {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) < 2 {
		return []Pair{}
	}

	pairs := make([]Pair, 0, len(enabled)-1)
	for i := 0; i < len(enabled)-1; i++ {
		pairs = append(pairs, Pair{
			Origin:           enabled[i],
			Destination:      enabled[i+1],
			OriginIndex:      i + 1,
			DestinationIndex: i + 2,
		})
	}
	return pairs
}

var indexColors = [...]string{
	"#e06d6d", "#e09b6d", "#d9e06d", "#aee06d", "#6de09a",
	"#6ddfe0", "#6d95e0", "#9a6de0", "#e06ddf", "#e06d95",
}

// fallbackIndexColor is used for indices below 1.
const fallbackIndexColor = "#25213B"

// IndexColor returns the badge colour for a 1-based index, cycling every ten.
func IndexColor(index int) string {
	if index < 1 {
		return fallbackIndexColor
	}
	return indexColors[(index-1)%len(indexColors)]
}
