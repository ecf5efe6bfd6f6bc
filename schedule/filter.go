package schedule

import (
	"context"
	"sort"

	"mnr/schedule-api/store"
)

// Candidate pairs a trip's stop-time at the origin with the trip's stop
// sequence at the destination. DestinationSeq is the first destination
// visit after the origin, so DestinationSeq > Origin.StopSequence always
// holds; trips that would run "backwards" are filtered out.
type Candidate struct {
	Origin         store.StopTime
	DestinationSeq int
}

// Window bounds the origin departures considered by the join, inclusive on
// both ends. Zero bounds are unbounded.
type Window struct {
	DepartureAfter int64
	DepartureUntil int64
}

// FilterTrips returns the ordered candidate trips that depart the origin
// within win and later reach the destination on the given service pattern.
// The order is ascending origin departure timestamp, ties broken by trip_id.
// Any store failure aborts the whole step; the directionality check needs
// both ends.
func FilterTrips(ctx context.Context, st Store, serviceID, originID, destinationID string, win Window) ([]Candidate, error) {
	trips, err := st.GetTrips(ctx, store.TripFilter{ServiceID: serviceID})
	if err != nil {
		return nil, &StoreUnavailableError{Op: "trips", Err: err}
	}
	active := make(map[string]struct{}, len(trips))
	for _, t := range trips {
		active[t.TripID] = struct{}{}
	}

	originTimes, err := st.GetStoptimes(ctx, store.StoptimeFilter{
		StopID:         originID,
		DepartureAfter: win.DepartureAfter,
		DepartureUntil: win.DepartureUntil,
	})
	if err != nil {
		return nil, &StoreUnavailableError{Op: "stop_times origin", Err: err}
	}

	destTimes, err := st.GetStoptimes(ctx, store.StoptimeFilter{StopID: destinationID})
	if err != nil {
		return nil, &StoreUnavailableError{Op: "stop_times destination", Err: err}
	}
	// A loop trip can visit the destination more than once; keep every
	// sequence, ascending (store order), so the first visit after the
	// origin can be chosen per origin row.
	destSeqs := make(map[string][]int, len(destTimes))
	for _, dt := range destTimes {
		destSeqs[dt.TripID] = append(destSeqs[dt.TripID], dt.StopSequence)
	}

	candidates := make([]Candidate, 0, len(originTimes))
	for _, ot := range originTimes {
		if _, ok := active[ot.TripID]; !ok {
			continue
		}
		seq := 0
		for _, s := range destSeqs[ot.TripID] {
			if s > ot.StopSequence {
				seq = s
				break
			}
		}
		if seq == 0 {
			continue
		}
		candidates = append(candidates, Candidate{Origin: ot, DestinationSeq: seq})
	}

	// Departure timestamp is the canonical sort key at the origin stop.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i].Origin, candidates[j].Origin
		if a.DepartureTimestamp != b.DepartureTimestamp {
			return a.DepartureTimestamp < b.DepartureTimestamp
		}
		return a.TripID < b.TripID
	})
	return candidates, nil
}
