package schedule

import (
	"context"
	"time"
)

// Service orchestrates one request: resolve the active service pattern,
// join candidate trips, enrich them. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	store    Store
	resolver *Resolver
	enricher *Enricher
}

func NewService(st Store, resolver *Resolver, enricher *Enricher) *Service {
	return &Service{store: st, resolver: resolver, enricher: enricher}
}

// Resolver exposes the service's resolver so the daily static-refresh tick
// can drop its memo.
func (s *Service) Resolver() *Resolver { return s.resolver }

// GetSchedule returns the enriched candidate trips from origin to
// destination for now's service day, departing within win, ordered
// ascending by origin departure. A valid service day with zero candidates
// yields an empty slice, not an error.
func (s *Service) GetSchedule(ctx context.Context, originID, destinationID string, now time.Time, win Window) ([]Record, error) {
	serviceID, err := s.resolver.ActiveService(ctx, now)
	if err != nil {
		return nil, err
	}
	candidates, err := FilterTrips(ctx, s.store, serviceID, originID, destinationID, win)
	if err != nil {
		return nil, err
	}
	records, err := s.enricher.Enrich(ctx, originID, destinationID, candidates)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
