package schedule

import (
	"context"
	"log"
	"sync"

	"mnr/schedule-api/realtime"
	"mnr/schedule-api/store"
)

// SnapshotSource yields the current realtime snapshot, or nil when the feed
// has never been fetched. *realtime.Cache satisfies it.
type SnapshotSource interface {
	Current() *realtime.Snapshot
}

const defaultEnrichWorkers = 8

// Enricher turns filter candidates into full Records. Candidates are
// independent, so they are enriched concurrently with a bounded fan-out;
// the store should not be hammered when the candidate set is large.
type Enricher struct {
	store    Store
	rt       SnapshotSource
	workers  int
	degraded func(tripID string)
}

func NewEnricher(st Store, rt SnapshotSource, workers int) *Enricher {
	if workers <= 0 {
		workers = defaultEnrichWorkers
	}
	return &Enricher{store: st, rt: rt, workers: workers}
}

// OnDegraded registers a callback invoked once per degraded record.
func (e *Enricher) OnDegraded(fn func(tripID string)) {
	e.degraded = fn
}

// Enrich builds one Record per candidate, preserving the candidate order
// regardless of which enrichment finishes first. The only error returned is
// the context's; per-trip failures degrade that record instead.
func (e *Enricher) Enrich(ctx context.Context, originID, destinationID string, candidates []Candidate) ([]Record, error) {
	// One snapshot for the whole request keeps the overlay consistent
	// across candidates even if a refresh lands mid-request.
	snap := e.rt.Current()

	records := make([]Record, len(candidates))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, cand Candidate) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = e.enrichOne(ctx, originID, destinationID, cand, snap)
		}(i, cand)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (e *Enricher) enrichOne(ctx context.Context, originID, destinationID string, cand Candidate, snap *realtime.Snapshot) Record {
	rec := Record{
		TripID:             cand.Origin.TripID,
		OriginID:           originID,
		DestinationID:      destinationID,
		DepartureTime:      cand.Origin.DepartureTime,
		DepartureTimestamp: cand.Origin.DepartureTimestamp,
		StopSequence:       cand.DestinationSeq,
	}

	degrade := func(stage string, err error) {
		log.Printf("schedule: enrichment degraded trip_id=%s stage=%s: %v", rec.TripID, stage, err)
		rec.Degraded = true
		if e.degraded != nil {
			e.degraded(rec.TripID)
		}
	}

	// Destination arrival. A missing row nulls the arrival fields; only a
	// store error marks the record degraded. On a loop trip the row for the
	// visit chosen by the filter is used, so arrival and stop_sequence
	// describe the same visit.
	destTimes, err := e.store.GetStoptimes(ctx, store.StoptimeFilter{TripID: rec.TripID, StopID: destinationID})
	if err != nil {
		degrade("destination_arrival", err)
	} else if len(destTimes) > 0 {
		dt := destTimes[0]
		for _, row := range destTimes {
			if row.StopSequence == cand.DestinationSeq {
				dt = row
				break
			}
		}
		rec.ArrivalTime = dt.ArrivalTime
		rec.ArrivalTimestamp = dt.ArrivalTimestamp
		rec.TripDurationSeconds = absDiff(rec.DepartureTimestamp, rec.ArrivalTimestamp)
	}

	// Trip metadata, then route metadata applied last.
	trips, err := e.store.GetTrips(ctx, store.TripFilter{TripID: rec.TripID})
	if err != nil {
		degrade("trip", err)
	} else if len(trips) > 0 {
		t := trips[0]
		rec.TripHeadsign = t.TripHeadsign
		rec.TripShortName = t.TripShortName
		rec.WheelchairAccessible = t.WheelchairAccessible
		rec.PeakOffpeak = t.PeakOffpeak
		rec.RouteID = t.RouteID

		routes, err := e.store.GetRoutes(ctx, store.RouteFilter{RouteID: t.RouteID})
		if err != nil {
			degrade("route", err)
		} else if len(routes) > 0 {
			rec.RouteLongName = routes[0].RouteLongName
			rec.RouteColor = routes[0].RouteColor
			rec.RouteTextColor = routes[0].RouteTextColor
		}
	}

	// Full itinerary, ordered by stop sequence.
	seq, err := e.store.GetStoptimes(ctx, store.StoptimeFilter{TripID: rec.TripID})
	if err != nil {
		degrade("stop_sequence", err)
	} else {
		rec.FullStopSequence = make([]SequenceStop, 0, len(seq))
		for _, st := range seq {
			rec.FullStopSequence = append(rec.FullStopSequence, SequenceStop{
				DepartureTime:      st.DepartureTime,
				StopID:             st.StopID,
				StopSequence:       st.StopSequence,
				Track:              st.Track,
				DepartureTimestamp: st.DepartureTimestamp,
			})
		}
	}

	// Delay overlay; absence of realtime data is never an error.
	if rec.TripShortName != "" {
		rec.DelaySeconds = snap.DelayAt(rec.TripShortName, destinationID)
	}
	return rec
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
