package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/domain/route"
	"github.com/spotlog/service-planner/internal/platform/domain"
)

const routeInfoPath = "/routes"

// RouteClient talks to the remote route-lookup service.
type RouteClient struct {
	baseClient
	logger *zap.Logger
}

// NewRouteClient creates a RouteClient. A nil session uses http.DefaultClient.
func NewRouteClient(baseURL string, session *http.Client, logger *zap.Logger) *RouteClient {
	return &RouteClient{
		baseClient: newBaseClient(baseURL, session),
		logger:     logger,
	}
}

type walkResponse struct {
	Data *struct {
		WalkTime     flexString `json:"walk_time"`
		WalkDistance flexString `json:"walk_distance"`
		WalkStep     flexString `json:"walk_step"`
	} `json:"data"`
}

type carResponse struct {
	CarRoutes []struct {
		CarDuration flexString `json:"car_duration"`
		Distance    flexString `json:"distance"`
		TaxiFare    flexString `json:"taxi_fare"`
	} `json:"car_routes"`
}

// Lookup requests an estimate for params. Only walk and car are supported.
func (c *RouteClient) Lookup(ctx context.Context, params route.LookupParams) (route.Result, error) {
	if !params.Transport.Fetchable() {
		return route.Result{}, domain.NewValidationError(
			fmt.Sprintf("route lookup does not support transport %q", params.Transport))
	}

	query := url.Values{
		"origin_x":      {formatCoord(params.OriginX)},
		"origin_y":      {formatCoord(params.OriginY)},
		"destination_x": {formatCoord(params.DestinationX)},
		"destination_y": {formatCoord(params.DestinationY)},
		"transport":     {params.Transport.String()},
	}
	if params.Transport == route.ModeWalk {
		query.Set("startName", params.StartName)
		query.Set("endName", params.EndName)
	}

	var (
		result route.Result
		err    error
	)
	switch params.Transport {
	case route.ModeWalk:
		var resp walkResponse
		if err = c.getJSON(ctx, routeInfoPath, query, &resp); err == nil {
			var est route.WalkEstimate
			if resp.Data != nil {
				est = route.WalkEstimate{
					DurationMinutes: string(resp.Data.WalkTime),
					DistanceText:    string(resp.Data.WalkDistance),
					StepCountText:   string(resp.Data.WalkStep),
				}
			}
			result = route.NewWalkResult(est)
		}
	case route.ModeCar:
		var resp carResponse
		if err = c.getJSON(ctx, routeInfoPath, query, &resp); err == nil {
			var est route.CarEstimate
			if len(resp.CarRoutes) > 0 {
				first := resp.CarRoutes[0]
				est = route.CarEstimate{
					DurationMinutes: string(first.CarDuration),
					DistanceText:    string(first.Distance),
					FareText:        string(first.TaxiFare),
				}
			}
			result = route.NewCarResult(est)
		}
	}

	if err != nil {
		c.logger.Error("route lookup failed",
			zap.String("transport", params.Transport.String()),
			zap.Float64("origin_x", params.OriginX),
			zap.Float64("origin_y", params.OriginY),
			zap.Float64("destination_x", params.DestinationX),
			zap.Float64("destination_y", params.DestinationY),
			zap.Error(err),
		)
		return route.Result{}, fmt.Errorf("route lookup (%s): %w", params.Transport, err)
	}
	return result, nil
}
