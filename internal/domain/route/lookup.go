package route

import "context"

// Names used for walk requests when a place has no name field.
const (
	DefaultStartName = "출발지"
	DefaultEndName   = "도착지"
)

// LookupParams are the query parameters of one route lookup.
type LookupParams struct {
	OriginX      float64
	OriginY      float64
	DestinationX float64
	DestinationY float64
	Transport    TransportMode
	StartName    string
	EndName      string
}

// Lookup is the remote route-lookup service.
type Lookup interface {
	Lookup(ctx context.Context, params LookupParams) (Result, error)
}

// BuildLookupParams prepares the request for pair in mode. It returns false
// when either endpoint is missing a coordinate component; that is a guard,
// not an error.
func BuildLookupParams(pair Pair, mode TransportMode) (LookupParams, bool) {
	o, d := pair.Origin, pair.Destination
	if !o.HasCoordinates() || !d.HasCoordinates() {
		return LookupParams{}, false
	}

	params := LookupParams{
		OriginX:      o.Location.Longitude,
		OriginY:      o.Location.Latitude,
		DestinationX: d.Location.Longitude,
		DestinationY: d.Location.Latitude,
		Transport:    mode,
	}
	if mode == ModeWalk {
		params.StartName = orDefault(o.DisplayName(), DefaultStartName)
		params.EndName = orDefault(d.DisplayName(), DefaultEndName)
	}
	return params, true
}
