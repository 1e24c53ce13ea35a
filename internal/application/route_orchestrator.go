package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/domain/route"
	"github.com/spotlog/service-planner/internal/platform/domain"
	"github.com/spotlog/service-planner/internal/proto/events"
)

// View returns the current route view.
func (s *PlannerService) View() RouteViewDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// SelectMode changes the transport mode and re-evaluates the lookup.
func (s *PlannerService) SelectMode(ctx context.Context, raw string) (*RouteViewDTO, error) {
	mode, err := route.ParseTransportMode(raw)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	s.mu.Lock()
	previous := s.mode
	s.mode = mode
	job := s.planFetchLocked()
	s.mu.Unlock()

	if previous != mode {
		s.logger.Info("transport mode changed",
			zap.String("from", previous.String()),
			zap.String("to", mode.String()),
		)
		s.publishEvent(ctx, events.TransportModeChanged, mode.String(), events.TransportModeChangedEvent{
			Previous:   previous.String(),
			Current:    mode.String(),
			OccurredAt: time.Now().UTC(),
		})
	}
	s.runFetch(ctx, job)

	view := s.View()
	return &view, nil
}

// Next moves the carousel forward, saturating at the last pair.
func (s *PlannerService) Next(ctx context.Context) RouteViewDTO {
	return s.navigate(ctx, (*route.Carousel).Next)
}

// Previous moves the carousel back, saturating at the first pair.
func (s *PlannerService) Previous(ctx context.Context) RouteViewDTO {
	return s.navigate(ctx, (*route.Carousel).Previous)
}

func (s *PlannerService) navigate(ctx context.Context, step func(*route.Carousel)) RouteViewDTO {
	s.mu.Lock()
	step(&s.carousel)
	job := s.planFetchLocked()
	s.mu.Unlock()

	s.runFetch(ctx, job)
	return s.View()
}

// planFetchLocked re-derives the pairs, re-clamps the cursor and decides
// whether the current pair needs a lookup. A returned job must be passed to
// runFetch after the lock is released.
func (s *PlannerService) planFetchLocked() *fetchJob {
	pairs := route.DerivePairs(s.places)
	s.carousel.Resize(len(pairs))

	if !s.mode.Fetchable() || len(pairs) == 0 {
		// Invalidate anything in flight.
		s.generation++
		s.requestKey = ""
		s.result = nil
		s.resultKey = ""
		s.setStatusLocked(route.StatusIdle)
		return nil
	}

	pair := pairs[s.carousel.Index()]
	key := lookupKey(s.mode, pair)
	if key == s.requestKey {
		return nil
	}

	params, ok := route.BuildLookupParams(pair, s.mode)
	if !ok {
		s.logger.Debug("skipping route lookup, pair has incomplete coordinates",
			zap.String("pair", pair.Key()),
		)
		return nil
	}

	s.generation++
	s.requestKey = key
	s.setStatusLocked(route.StatusLoading)
	return &fetchJob{generation: s.generation, key: key, pairKey: pair.Key(), params: params}
}

// runFetch performs the lookup and applies its outcome only if no newer
// request was issued meanwhile. The lookup outlives the caller's
// cancellation since its outcome is shared by every client.
func (s *PlannerService) runFetch(ctx context.Context, job *fetchJob) {
	if job == nil {
		return
	}

	s.mu.Lock()
	timeout := s.lookupTimeout
	s.mu.Unlock()

	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	result, err := s.lookup.Lookup(lookupCtx, job.params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if job.generation != s.generation {
		s.logger.Debug("discarding superseded route lookup",
			zap.String("pair", job.pairKey),
			zap.Uint64("generation", job.generation),
			zap.Uint64("latest", s.generation),
		)
		return
	}

	if err != nil {
		s.logger.Warn("route lookup failed",
			zap.String("pair", job.pairKey),
			zap.String("transport", job.params.Transport.String()),
			zap.Error(err),
		)
		s.result = nil
		s.resultKey = ""
		s.setStatusLocked(route.StatusFailed)
		return
	}

	s.result = &result
	s.resultKey = job.key
	s.setStatusLocked(route.StatusSuccess)
}

func (s *PlannerService) setStatusLocked(next route.FetchStatus) {
	status, err := s.status.TransitionTo(next)
	if err != nil {
		s.logger.Warn("ignoring fetch status transition", zap.Error(err))
		return
	}
	s.status = status
}

func (s *PlannerService) viewLocked() RouteViewDTO {
	pairs := route.DerivePairs(s.places)
	view := RouteViewDTO{
		Mode:        s.mode.String(),
		Status:      s.status.String(),
		Cursor:      s.carousel.Index(),
		Pairs:       make([]PairDTO, len(pairs)),
		HasPrevious: s.carousel.HasPrevious(),
		HasNext:     s.carousel.HasNext(),
	}
	for i, p := range pairs {
		view.Pairs[i] = toPairDTO(p)
	}

	if len(pairs) == 0 {
		view.Message = InsufficientPlacesMessage
		view.Hint = InsufficientPlacesHint
		return view
	}

	current := view.Pairs[s.carousel.Index()]
	view.Current = &current
	display := route.Present(s.mode, s.result)
	view.Display = &display
	if s.result != nil {
		view.ResultMode = string(s.result.Kind)
		view.ResultCurrent = s.resultKey == lookupKey(s.mode, pairs[s.carousel.Index()])
	}
	return view
}

// lookupKey identifies a lookup by mode and pair.
func lookupKey(mode route.TransportMode, pair route.Pair) string {
	return mode.String() + "|" + pair.Key()
}
