package application

import (
	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/domain/route"
)

// Messages shown when the route view has fewer than two enabled places.
const (
	InsufficientPlacesMessage = "활성화된 장소가 부족합니다"
	InsufficientPlacesHint    = "최소 2개 이상의 장소를 활성화해주세요"
)

// SavePlaceRequest is the body of a save-place call.
type SavePlaceRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
}

// SetEnabledRequest is the body of a toggle call.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// MovePlaceRequest is the body of a reorder call. Indices address the stored order.
type MovePlaceRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// SelectModeRequest is the body of a mode change.
type SelectModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// PlaceDTO is the response representation of one saved place.
type PlaceDTO struct {
	Key          string      `json:"key"`
	DisplayName  string      `json:"display_name"`
	Enabled      bool        `json:"enabled"`
	DisplayIndex int         `json:"display_index,omitempty"`
	ArrayIndex   int         `json:"array_index"`
	Color        string      `json:"color,omitempty"`
	Place        place.Place `json:"place"`
}

// PlaceListDTO is the saved-place list, enabled places first.
type PlaceListDTO struct {
	Places       []PlaceDTO `json:"places"`
	Total        int        `json:"total"`
	EnabledCount int        `json:"enabled_count"`
}

// SyncResultDTO reports the outcome of a remote sync.
type SyncResultDTO struct {
	Fetched int `json:"fetched"`
	Added   int `json:"added"`
	Total   int `json:"total"`
}

// PairDTO is the response representation of a route pair.
type PairDTO struct {
	OriginKey        string `json:"origin_key"`
	OriginName       string `json:"origin_name"`
	OriginIndex      int    `json:"origin_index"`
	OriginColor      string `json:"origin_color"`
	DestinationKey   string `json:"destination_key"`
	DestinationName  string `json:"destination_name"`
	DestinationIndex int    `json:"destination_index"`
	DestinationColor string `json:"destination_color"`
}

// RouteViewDTO is everything the route box renders.
type RouteViewDTO struct {
	Mode        string         `json:"mode"`
	Status      string         `json:"status"`
	Cursor      int            `json:"cursor"`
	Pairs       []PairDTO      `json:"pairs"`
	Current     *PairDTO       `json:"current,omitempty"`
	HasPrevious bool           `json:"has_previous"`
	HasNext     bool           `json:"has_next"`
	Display     *route.Display `json:"display,omitempty"`
	// ResultMode is the mode of the held estimate, empty when none is held.
	ResultMode string `json:"result_mode,omitempty"`
	// ResultCurrent reports whether the held estimate belongs to the
	// current pair and mode. It is false while an older estimate is kept.
	ResultCurrent bool   `json:"result_current"`
	Message       string `json:"message,omitempty"`
	Hint          string `json:"hint,omitempty"`
}

func toPlaceDTO(e place.Entry) PlaceDTO {
	dto := PlaceDTO{
		Key:          e.Place.Key(),
		DisplayName:  e.Place.DisplayName(),
		Enabled:      e.Place.IsEnabled(),
		DisplayIndex: e.DisplayIndex,
		ArrayIndex:   e.ArrayIndex,
		Place:        e.Place,
	}
	if e.DisplayIndex > 0 {
		dto.Color = route.IndexColor(e.DisplayIndex)
	}
	return dto
}

func toPlaceListDTO(places []place.Place) PlaceListDTO {
	entries := place.Entries(places)
	out := PlaceListDTO{
		Places: make([]PlaceDTO, len(entries)),
		Total:  len(entries),
	}
	for i, e := range entries {
		out.Places[i] = toPlaceDTO(e)
		if e.DisplayIndex > 0 {
			out.EnabledCount++
		}
	}
	return out
}

func toPairDTO(p route.Pair) PairDTO {
	return PairDTO{
		OriginKey:        p.Origin.Key(),
		OriginName:       p.Origin.DisplayName(),
		OriginIndex:      p.OriginIndex,
		OriginColor:      route.IndexColor(p.OriginIndex),
		DestinationKey:   p.Destination.Key(),
		DestinationName:  p.Destination.DisplayName(),
		DestinationIndex: p.DestinationIndex,
		DestinationColor: route.IndexColor(p.DestinationIndex),
	}
}
