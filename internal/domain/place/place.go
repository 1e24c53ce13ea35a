package place

import "encoding/json"

// Coordinates is a WGS84 position. A zero component means "not resolved".
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a saved place in canonical form. Every source shape is mapped
// onto it by Normalize, so nothing downstream inspects raw payloads.
type Place struct {
	ID            string
	PlaceName     string
	Name          string
	Title         string
	GooglePlaceID string
	Location      Coordinates
	Enabled       *bool
	Address       string
	Photos        []string
	RunningTime   []string
}

// Key returns the identity key: the first non-empty of ID, PlaceName, Name.
func (p Place) Key() string {
	switch {
	case p.ID != "":
		return p.ID
	case p.PlaceName != "":
		return p.PlaceName
	default:
		return p.Name
	}
}

// DisplayName returns the first non-empty of Name, PlaceName, Title, or "".
func (p Place) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.PlaceName != "":
		return p.PlaceName
	default:
		return p.Title
	}
}

// IsEnabled reports whether the place takes part in route derivation.
// A missing flag means enabled.
func (p Place) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// WithEnabled returns a copy with the flag set explicitly.
func (p Place) WithEnabled(enabled bool) Place {
	p.Enabled = &enabled
	return p
}

// HasLongitude reports whether a longitude was resolved.
func (p Place) HasLongitude() bool { return p.Location.Longitude != 0 }

// HasLatitude reports whether a latitude was resolved.
func (p Place) HasLatitude() bool { return p.Location.Latitude != 0 }

// HasCoordinates reports whether both components were resolved.
func (p Place) HasCoordinates() bool { return p.HasLongitude() && p.HasLatitude() }

type placeJSON struct {
	ID            string       `json:"id,omitempty"`
	PlaceName     string       `json:"place_name,omitempty"`
	Name          string       `json:"name,omitempty"`
	Title         string       `json:"title,omitempty"`
	GooglePlaceID string       `json:"google_place_id,omitempty"`
	Location      *Coordinates `json:"location,omitempty"`
	IsEnabled     *bool        `json:"isEnabled,omitempty"`
	Address       string       `json:"address,omitempty"`
	Photos        []string     `json:"place_photos,omitempty"`
	RunningTime   []string     `json:"running_time,omitempty"`
}

// MarshalJSON writes the canonical shape.
func (p Place) MarshalJSON() ([]byte, error) {
	out := placeJSON{
		ID:            p.ID,
		PlaceName:     p.PlaceName,
		Name:          p.Name,
		Title:         p.Title,
		GooglePlaceID: p.GooglePlaceID,
		IsEnabled:     p.Enabled,
		Address:       p.Address,
		Photos:        p.Photos,
		RunningTime:   p.RunningTime,
	}
	if p.Location != (Coordinates{}) {
		loc := p.Location
		out.Location = &loc
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any known source shape and normalizes it.
func (p *Place) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Normalize(raw)
	return nil
}
