package place

import (
	"encoding/json"
	"strconv"
	"strings"
)

var (
	longitudeKeys = []string{"longitude", "x", "lng", "long"}
	latitudeKeys  = []string{"latitude", "y", "lat"}
)

// Normalize maps a raw place record onto the canonical Place.
//
// Longitude resolves from the first present of location.longitude,
// longitude, x, lng, long; latitude from location.latitude, latitude, y, lat.
// Zero, empty and unparsable values count as absent.
func Normalize(raw map[string]interface{}) Place {
	p := Place{
		ID:            stringField(raw["id"]),
		PlaceName:     stringField(raw["place_name"]),
		Name:          stringField(raw["name"]),
		Title:         stringField(raw["title"]),
		GooglePlaceID: firstString(raw, "google_place_id", "place_id"),
		Address:       firstString(raw, "address", "formatted_address"),
		Photos:        stringList(raw["place_photos"]),
		RunningTime:   stringList(raw["running_time"]),
	}

	if loc, ok := raw["location"].(map[string]interface{}); ok {
		p.Location.Longitude, _ = numberField(loc["longitude"])
		p.Location.Latitude, _ = numberField(loc["latitude"])
	}
	if p.Location.Longitude == 0 {
		p.Location.Longitude = firstNumber(raw, longitudeKeys...)
	}
	if p.Location.Latitude == 0 {
		p.Location.Latitude = firstNumber(raw, latitudeKeys...)
	}

	for _, key := range []string{"isEnabled", "is_enabled"} {
		if b, ok := raw[key].(bool); ok {
			p.Enabled = &b
			break
		}
	}

	return p
}

func firstString(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := stringField(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(raw map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := numberField(raw[k]); ok {
			return f
		}
	}
	return 0
}

func stringField(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func numberField(v interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || f == 0 {
		return 0, false
	}
	return f, true
}

// stringList keeps string items and the url of object items.
func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]interface{}:
			if s := firstString(t, "url", "photo_url"); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
