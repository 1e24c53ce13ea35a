package application

import (
	"context"
	"sync"

	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/domain/route"
	"github.com/spotlog/service-planner/internal/platform/kafka"
)

type fakeStore struct {
	mu      sync.Mutex
	initial []place.Place
	loadErr error
	saveErr error
	saves   [][]place.Place
}

func (f *fakeStore) Load(ctx context.Context) ([]place.Place, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return clonePlaces(f.initial), nil
}

func (f *fakeStore) Save(ctx context.Context, places []place.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, clonePlaces(places))
	return f.saveErr
}

func (f *fakeStore) lastSave() []place.Place {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

type fakeRemote struct {
	saved     map[string]place.Place
	saveErr   error
	list      []place.Place
	listErr   error
	saveCalls []string
}

func (f *fakeRemote) SavePlace(ctx context.Context, googlePlaceID string) (place.Place, error) {
	f.saveCalls = append(f.saveCalls, googlePlaceID)
	if f.saveErr != nil {
		return place.Place{}, f.saveErr
	}
	return f.saved[googlePlaceID], nil
}

func (f *fakeRemote) GetSavedPlaces(ctx context.Context) ([]place.Place, error) {
	return f.list, f.listErr
}

type fakeLookup struct {
	mu      sync.Mutex
	calls   []route.LookupParams
	respond func(call int, params route.LookupParams) (route.Result, error)
	// hang blocks every call until its context ends.
	hang bool
}

func (f *fakeLookup) Lookup(ctx context.Context, params route.LookupParams) (route.Result, error) {
	f.mu.Lock()
	n := len(f.calls)
	f.calls = append(f.calls, params)
	respond := f.respond
	hang := f.hang
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
	}
	if err := ctx.Err(); err != nil {
		return route.Result{}, err
	}

	if respond == nil {
		return walkResult("15분"), nil
	}
	return respond(n, params)
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLookup) call(i int) route.LookupParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (f *fakePublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

func walkResult(duration string) route.Result {
	return route.NewWalkResult(route.WalkEstimate{
		DurationMinutes: duration,
		DistanceText:    "1.2km",
		StepCountText:   "1,680걸음",
	})
}

func newPlace(id, name string, lng, lat float64) place.Place {
	return place.Place{
		ID:       id,
		Name:     name,
		Location: place.Coordinates{Longitude: lng, Latitude: lat},
	}
}
