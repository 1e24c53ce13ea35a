package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/domain/route"
	"github.com/spotlog/service-planner/internal/platform/domain"
	"github.com/spotlog/service-planner/internal/platform/kafka"
	"github.com/spotlog/service-planner/internal/proto/events"
)

const (
	eventSource = "service-planner"

	defaultLookupTimeout = 15 * time.Second
)

// EventPublisher publishes planner events. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// PlannerService is the application service owning the saved place list,
// the selected transport mode, the carousel cursor and the route lookup
// state. All state is guarded by mu; remote lookups run without it.
type PlannerService struct {
	store     place.ListStore
	remote    place.RemoteService
	lookup    route.Lookup
	publisher EventPublisher
	logger    *zap.Logger

	lookupTimeout time.Duration

	mu         sync.Mutex
	places     []place.Place
	mode       route.TransportMode
	carousel   route.Carousel
	status     route.FetchStatus
	result     *route.Result
	generation uint64
	requestKey string
	resultKey  string
}

// fetchJob is a lookup issued under the lock and executed outside it.
type fetchJob struct {
	generation uint64
	key        string
	pairKey    string
	params     route.LookupParams
}

// NewPlannerService creates a new PlannerService. publisher may be nil.
func NewPlannerService(
	store place.ListStore,
	remote place.RemoteService,
	lookup route.Lookup,
	publisher EventPublisher,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		store:     store,
		remote:    remote,
		lookup:    lookup,
		publisher: publisher,
		logger:    logger,
		places:    []place.Place{},
		mode:      route.DefaultMode,
		status:    route.StatusIdle,

		lookupTimeout: defaultLookupTimeout,
	}
}

// SetLookupTimeout bounds each route lookup. Non-positive values are ignored.
func (s *PlannerService) SetLookupTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.lookupTimeout = d
	s.mu.Unlock()
}

// Load reads the persisted place list once and evaluates the first route.
// A store failure leaves the list empty.
func (s *PlannerService) Load(ctx context.Context) {
	places, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load saved places, starting with an empty list", zap.Error(err))
		places = []place.Place{}
	}

	s.mu.Lock()
	s.places = places
	job := s.planFetchLocked()
	s.mu.Unlock()

	s.logger.Info("saved places loaded", zap.Int("count", len(places)))
	s.runFetch(ctx, job)
}

// ListPlaces returns the saved places, enabled ones first.
func (s *PlannerService) ListPlaces() PlaceListDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toPlaceListDTO(s.places)
}

// SavePlace registers a Google place id with the remote place service and
// appends the returned record to the list.
func (s *PlannerService) SavePlace(ctx context.Context, googlePlaceID string) (*PlaceDTO, error) {
	id := strings.TrimSpace(googlePlaceID)
	if id == "" {
		return nil, domain.NewValidationError("place_id is required")
	}

	saved, err := s.remote.SavePlace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to save place %s: %w", id, err)
	}

	dto, _, err := s.AddPlace(ctx, saved)
	return dto, err
}

// AddPlace appends p, enabled, unless a place with the same key exists. An
// existing place is refreshed in position and keeps its enabled flag. The
// returned bool reports whether the list grew.
func (s *PlannerService) AddPlace(ctx context.Context, p place.Place) (*PlaceDTO, bool, error) {
	key := p.Key()
	if key == "" {
		return nil, false, domain.NewValidationError("place has no id, place_name or name")
	}

	s.mu.Lock()
	next := clonePlaces(s.places)
	added := false
	if idx := place.IndexOf(next, key); idx >= 0 {
		p.Enabled = next[idx].Enabled
		next[idx] = p
	} else {
		next = append(next, p.WithEnabled(true))
		added = true
	}
	s.places = next
	s.persistLocked(ctx)
	job := s.planFetchLocked()
	dto := s.placeDTOLocked(key)
	s.mu.Unlock()

	if added {
		s.publishEvent(ctx, events.PlaceAdded, key, events.PlaceAddedEvent{
			PlaceKey:      key,
			GooglePlaceID: p.GooglePlaceID,
			OccurredAt:    time.Now().UTC(),
		})
	}
	s.runFetch(ctx, job)
	return &dto, added, nil
}

// SyncPlaces fetches every remotely saved place and appends the ones whose
// key is not yet in the list.
func (s *PlannerService) SyncPlaces(ctx context.Context) (*SyncResultDTO, error) {
	remote, err := s.remote.GetSavedPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync saved places: %w", err)
	}

	s.mu.Lock()
	next := clonePlaces(s.places)
	seen := make(map[string]bool, len(next)+len(remote))
	for _, p := range next {
		seen[p.Key()] = true
	}
	var added []place.Place
	for _, p := range remote {
		key := p.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		p = p.WithEnabled(true)
		next = append(next, p)
		added = append(added, p)
	}

	var job *fetchJob
	if len(added) > 0 {
		s.places = next
		s.persistLocked(ctx)
		job = s.planFetchLocked()
	}
	total := len(s.places)
	s.mu.Unlock()

	for _, p := range added {
		s.publishEvent(ctx, events.PlaceAdded, p.Key(), events.PlaceAddedEvent{
			PlaceKey:      p.Key(),
			GooglePlaceID: p.GooglePlaceID,
			OccurredAt:    time.Now().UTC(),
		})
	}
	s.runFetch(ctx, job)

	s.logger.Info("saved places synced",
		zap.Int("fetched", len(remote)),
		zap.Int("added", len(added)),
	)
	return &SyncResultDTO{Fetched: len(remote), Added: len(added), Total: total}, nil
}

// SetEnabled toggles the place with the given key.
func (s *PlannerService) SetEnabled(ctx context.Context, key string, enabled bool) (*PlaceDTO, error) {
	s.mu.Lock()
	idx := place.IndexOf(s.places, key)
	if idx < 0 {
		s.mu.Unlock()
		return nil, domain.NewNotFoundError("place", key)
	}
	next := clonePlaces(s.places)
	next[idx] = next[idx].WithEnabled(enabled)
	s.places = next
	s.persistLocked(ctx)
	job := s.planFetchLocked()
	dto := s.placeDTOLocked(key)
	s.mu.Unlock()

	s.publishEvent(ctx, events.PlaceToggled, key, events.PlaceToggledEvent{
		PlaceKey:   key,
		Enabled:    enabled,
		OccurredAt: time.Now().UTC(),
	})
	s.runFetch(ctx, job)
	return &dto, nil
}

// Move relocates the place at stored index from to index to.
func (s *PlannerService) Move(ctx context.Context, from, to int) (*PlaceListDTO, error) {
	s.mu.Lock()
	next, err := place.Move(s.places, from, to)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to move place %d to %d: %w", from, to, err)
	}
	if from == to {
		list := toPlaceListDTO(s.places)
		s.mu.Unlock()
		return &list, nil
	}

	s.places = next
	s.persistLocked(ctx)
	job := s.planFetchLocked()
	order := make([]string, len(next))
	for i, p := range next {
		order[i] = p.Key()
	}
	list := toPlaceListDTO(next)
	s.mu.Unlock()

	s.publishEvent(ctx, events.PlacesReordered, "", events.PlacesReorderedEvent{
		From:       from,
		To:         to,
		Order:      order,
		OccurredAt: time.Now().UTC(),
	})
	s.runFetch(ctx, job)
	return &list, nil
}

func (s *PlannerService) placeDTOLocked(key string) PlaceDTO {
	for _, e := range place.Entries(s.places) {
		if e.Place.Key() == key {
			return toPlaceDTO(e)
		}
	}
	return PlaceDTO{Key: key}
}

// persistLocked writes the list. Failures are logged; the in-memory list
// stays authoritative.
func (s *PlannerService) persistLocked(ctx context.Context) {
	if err := s.store.Save(ctx, s.places); err != nil {
		s.logger.Error("failed to persist saved places",
			zap.Int("count", len(s.places)),
			zap.Error(err),
		)
	}
}

func (s *PlannerService) publishEvent(ctx context.Context, eventType, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	if err := s.publisher.PublishEvent(ctx, events.TopicPlannerEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicPlannerEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func clonePlaces(places []place.Place) []place.Place {
	out := make([]place.Place, len(places))
	copy(out, places)
	return out
}
