package place

import "context"

// ListStore persists the ordered place list under a single key.
type ListStore interface {
	// Load returns the stored list, or an empty list when nothing was saved.
	Load(ctx context.Context) ([]Place, error)

	// Save replaces the stored list.
	Save(ctx context.Context, places []Place) error
}

// RemoteService is the remote place service.
type RemoteService interface {
	// SavePlace registers a Google place id and returns the stored record.
	SavePlace(ctx context.Context, googlePlaceID string) (Place, error)

	// GetSavedPlaces returns every place saved remotely.
	GetSavedPlaces(ctx context.Context) ([]Place, error)
}
