package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/platform/domain"
)

const (
	savePlacePath      = "/places/save_place"
	getSavedPlacesPath = "/places/get_saved_places"
)

// collectionKeys are tried in order when locating the saved-place collection.
var collectionKeys = []string{"places", "data", "saved_places"}

// PlaceClient talks to the remote place service.
type PlaceClient struct {
	baseClient
	logger *zap.Logger
}

// NewPlaceClient creates a PlaceClient. A nil session uses http.DefaultClient.
func NewPlaceClient(baseURL string, session *http.Client, logger *zap.Logger) *PlaceClient {
	return &PlaceClient{
		baseClient: newBaseClient(baseURL, session),
		logger:     logger,
	}
}

type savePlaceResponse struct {
	Data json.RawMessage `json:"data"`
}

// SavePlace registers googlePlaceID with the place service and returns the
// stored record. An empty id is rejected before any request is made.
func (c *PlaceClient) SavePlace(ctx context.Context, googlePlaceID string) (place.Place, error) {
	id := strings.TrimSpace(googlePlaceID)
	if id == "" {
		return place.Place{}, domain.NewValidationError("place_id is required")
	}

	var resp savePlaceResponse
	if err := c.getJSON(ctx, savePlacePath, url.Values{"place_id": {id}}, &resp); err != nil {
		c.logger.Error("save place failed",
			zap.String("place_id", id),
			zap.String("base_url", c.baseURL),
			zap.Error(err),
		)
		return place.Place{}, fmt.Errorf("save place %q: %w", id, err)
	}

	var p place.Place
	if len(resp.Data) > 0 && !bytes.Equal(bytes.TrimSpace(resp.Data), []byte("null")) {
		if err := json.Unmarshal(resp.Data, &p); err != nil {
			return place.Place{}, fmt.Errorf("save place %q: decode data: %w", id, err)
		}
	}
	if p.GooglePlaceID == "" {
		p.GooglePlaceID = id
	}
	if p.Key() == "" {
		p.ID = id
	}

	c.logger.Info("place saved",
		zap.String("place_id", id),
		zap.String("place_name", p.PlaceName),
		zap.Int("photos", len(p.Photos)),
		zap.Int("running_time", len(p.RunningTime)),
	)
	return p, nil
}

// GetSavedPlaces fetches every saved place. The collection may arrive as an
// array or as a keyed mapping; mappings are flattened in key order and a
// missing collection yields an empty slice.
func (c *PlaceClient) GetSavedPlaces(ctx context.Context) ([]place.Place, error) {
	var body json.RawMessage
	if err := c.getJSON(ctx, getSavedPlacesPath, nil, &body); err != nil {
		c.logger.Error("get saved places failed",
			zap.String("base_url", c.baseURL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get saved places: %w", err)
	}

	places, err := decodeSavedPlaces(body)
	if err != nil {
		return nil, fmt.Errorf("get saved places: %w", err)
	}

	c.logger.Debug("saved places fetched", zap.Int("count", len(places)))
	return places, nil
}

func decodeSavedPlaces(body json.RawMessage) ([]place.Place, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []place.Place{}, nil
	}

	switch body[0] {
	case '[':
		return decodeCollection(body)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		for _, k := range collectionKeys {
			if v, ok := envelope[k]; ok && !isNull(v) {
				return decodeCollection(v)
			}
		}
		return decodeRootMapping(body)
	}
	return []place.Place{}, nil
}

// decodeRootMapping treats the body itself as a keyed mapping of places.
// Only object-valued entries count, so status envelopes decode as empty.
func decodeRootMapping(raw json.RawMessage) ([]place.Place, error) {
	values, err := orderedValues(raw)
	if err != nil {
		return nil, err
	}
	items := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		if v = bytes.TrimSpace(v); len(v) > 0 && v[0] == '{' {
			items = append(items, v)
		}
	}
	return decodeItems(items)
}

// decodeCollection accepts an array or a keyed mapping of place records.
func decodeCollection(raw json.RawMessage) ([]place.Place, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return []place.Place{}, nil
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode place array: %w", err)
		}
	case '{':
		values, err := orderedValues(raw)
		if err != nil {
			return nil, err
		}
		items = values
	default:
		return []place.Place{}, nil
	}
	return decodeItems(items)
}

func decodeItems(items []json.RawMessage) ([]place.Place, error) {
	out := make([]place.Place, 0, len(items))
	for i, item := range items {
		if isNull(item) {
			continue
		}
		var p place.Place
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, fmt.Errorf("decode place #%d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// orderedValues returns the values of a JSON object in property order:
// integer keys ascending first, then the remaining keys as they appear.
func orderedValues(raw json.RawMessage) ([]json.RawMessage, error) {
	type entry struct {
		key   string
		index int64
		isInt bool
		value json.RawMessage
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode place mapping: %w", err)
	}

	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode place mapping key: %w", err)
		}
		key, _ := tok.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode place mapping value %q: %w", key, err)
		}

		e := entry{key: key, value: v}
		if n, err := strconv.ParseInt(key, 10, 64); err == nil && n >= 0 && strconv.FormatInt(n, 10) == key {
			e.index, e.isInt = n, true
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.isInt != b.isInt {
			return a.isInt
		}
		if a.isInt {
			return a.index < b.index
		}
		return false
	})

	out := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
