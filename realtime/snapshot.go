package realtime

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// StopTimeUpdate is one per-stop delay from the feed.
type StopTimeUpdate struct {
	StopID       string `json:"stop_id"`
	DelaySeconds int    `json:"delay_seconds"`
}

// Entity is the realtime state of one train, keyed by the train number
// (the static schedule's trip_short_name).
type Entity struct {
	TripShortName   string           `json:"trip_short_name"`
	StopTimeUpdates []StopTimeUpdate `json:"stop_time_updates"`
}

// Snapshot is one complete parse of the feed. Snapshots are immutable after
// construction; the cache replaces them wholesale.
type Snapshot struct {
	Timestamp int64    `json:"timestamp"`
	Entities  []Entity `json:"entities"`

	byTrain map[string]int
}

// NewSnapshot builds a snapshot from already-parsed entities, indexing them
// by train. The first entity wins when a train appears twice.
func NewSnapshot(timestamp int64, entities []Entity) *Snapshot {
	snap := &Snapshot{Timestamp: timestamp, Entities: entities, byTrain: map[string]int{}}
	for i, ent := range entities {
		if _, seen := snap.byTrain[ent.TripShortName]; !seen {
			snap.byTrain[ent.TripShortName] = i
		}
	}
	return snap
}

// ParseSnapshot decodes a protobuf FeedMessage into a Snapshot, preserving
// the feed's entity and update order.
func ParseSnapshot(raw []byte) (*Snapshot, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, err
	}
	var ts int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		ts = int64(*fm.Header.Timestamp)
	}
	// Empty, not nil, so an empty feed still renders "entities": [].
	entities := []Entity{}
	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		ent := Entity{TripShortName: *tu.Trip.TripId}
		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			upd := StopTimeUpdate{StopID: *stu.StopId}
			switch {
			case stu.Arrival != nil && stu.Arrival.Delay != nil:
				upd.DelaySeconds = int(*stu.Arrival.Delay)
			case stu.Departure != nil && stu.Departure.Delay != nil:
				upd.DelaySeconds = int(*stu.Departure.Delay)
			}
			ent.StopTimeUpdates = append(ent.StopTimeUpdates, upd)
		}
		entities = append(entities, ent)
	}
	return NewSnapshot(ts, entities), nil
}

// DelayAt returns the delay for a train at a stop. Among the train's updates
// for that stop the last nonzero one wins; everything else resolves to 0.
func (s *Snapshot) DelayAt(tripShortName, stopID string) int {
	if s == nil {
		return 0
	}
	i, ok := s.byTrain[tripShortName]
	if !ok {
		return 0
	}
	delay := 0
	for _, upd := range s.Entities[i].StopTimeUpdates {
		if upd.StopID == stopID && upd.DelaySeconds != 0 {
			delay = upd.DelaySeconds
		}
	}
	return delay
}
