package place

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceKey(t *testing.T) {
	assert.Equal(t, "p1", Place{ID: "p1", PlaceName: "Cafe", Name: "n"}.Key())
	assert.Equal(t, "Cafe", Place{PlaceName: "Cafe", Name: "n"}.Key())
	assert.Equal(t, "n", Place{Name: "n"}.Key())
	assert.Equal(t, "", Place{Title: "only title"}.Key())
}

func TestPlaceDisplayName(t *testing.T) {
	assert.Equal(t, "n", Place{Name: "n", PlaceName: "pn", Title: "t"}.DisplayName())
	assert.Equal(t, "pn", Place{PlaceName: "pn", Title: "t"}.DisplayName())
	assert.Equal(t, "t", Place{Title: "t"}.DisplayName())
}

func TestPlaceIsEnabled(t *testing.T) {
	assert.True(t, Place{}.IsEnabled(), "missing flag means enabled")
	assert.False(t, Place{}.WithEnabled(false).IsEnabled())
	assert.True(t, Place{}.WithEnabled(true).IsEnabled())
}

func TestNormalizeCoordinateFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLon float64
		wantLat float64
	}{
		{"nested location wins", `{"location":{"longitude":127.1,"latitude":37.5},"longitude":1,"latitude":2}`, 127.1, 37.5},
		{"flat fields", `{"longitude":127.2,"latitude":37.6}`, 127.2, 37.6},
		{"x and y", `{"x":"127.3","y":"37.7"}`, 127.3, 37.7},
		{"lng and lat", `{"lng":127.4,"lat":37.8}`, 127.4, 37.8},
		{"long", `{"long":127.5,"lat":37.9}`, 127.5, 37.9},
		{"zero location falls through", `{"location":{"longitude":0,"latitude":0},"lng":127.6,"lat":37.1}`, 127.6, 37.1},
		{"missing latitude", `{"lng":127.6}`, 127.6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Place
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			assert.Equal(t, tt.wantLon, p.Location.Longitude)
			assert.Equal(t, tt.wantLat, p.Location.Latitude)
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	raw := `{
		"id": 42,
		"place_name": "Seoul Forest",
		"place_id": "ChIJ123",
		"address": "Seongdong-gu",
		"place_photos": ["a.jpg", {"url": "b.jpg"}],
		"running_time": ["Mon 09:00-18:00"],
		"isEnabled": false
	}`

	var p Place
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Seoul Forest", p.PlaceName)
	assert.Equal(t, "ChIJ123", p.GooglePlaceID)
	assert.Equal(t, "Seongdong-gu", p.Address)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Photos)
	assert.Equal(t, []string{"Mon 09:00-18:00"}, p.RunningTime)
	require.NotNil(t, p.Enabled)
	assert.False(t, *p.Enabled)
}

func TestPlaceJSONCanonicalShape(t *testing.T) {
	p := Place{
		ID:       "p1",
		Name:     "Cafe",
		Location: Coordinates{Latitude: 37.5, Longitude: 127.0},
	}.WithEnabled(false)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Cafe","location":{"latitude":37.5,"longitude":127.0},"isEnabled":false}`, string(b))

	var back Place
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}
