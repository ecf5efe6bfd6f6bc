package schedule

import (
	"context"
	"errors"
	"sort"

	"mnr/schedule-api/realtime"
	"mnr/schedule-api/store"
)

var errStoreDown = errors.New("connection refused")

// fakeStore serves canned rows with the same filter semantics as the real
// query layer.
type fakeStore struct {
	calendar  []store.CalendarDate
	trips     []store.Trip
	routes    []store.Route
	stopTimes []store.StopTime
	stops     []store.Stop

	failCalendar  bool
	failTrips     bool
	failRoutes    bool
	failStoptimes bool
	// fail only stop-time queries for one trip (per-trip degradation tests)
	failStoptimesForTrip string

	calendarCalls int
}

func (f *fakeStore) GetCalendarDates(_ context.Context, flt store.CalendarDateFilter) ([]store.CalendarDate, error) {
	f.calendarCalls++
	if f.failCalendar {
		return nil, errStoreDown
	}
	var out []store.CalendarDate
	for _, cd := range f.calendar {
		if flt.Date == "" || cd.Date == flt.Date {
			out = append(out, cd)
		}
	}
	return out, nil
}

func (f *fakeStore) GetTrips(_ context.Context, flt store.TripFilter) ([]store.Trip, error) {
	if f.failTrips {
		return nil, errStoreDown
	}
	var out []store.Trip
	for _, t := range f.trips {
		if flt.ServiceID != "" && t.ServiceID != flt.ServiceID {
			continue
		}
		if flt.TripID != "" && t.TripID != flt.TripID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) GetStoptimes(_ context.Context, flt store.StoptimeFilter) ([]store.StopTime, error) {
	if f.failStoptimes {
		return nil, errStoreDown
	}
	if f.failStoptimesForTrip != "" && flt.TripID == f.failStoptimesForTrip {
		return nil, errStoreDown
	}
	var out []store.StopTime
	for _, st := range f.stopTimes {
		if flt.StopID != "" && st.StopID != flt.StopID {
			continue
		}
		if flt.TripID != "" && st.TripID != flt.TripID {
			continue
		}
		if flt.DepartureAfter > 0 && st.DepartureTimestamp < flt.DepartureAfter {
			continue
		}
		if flt.DepartureUntil > 0 && st.DepartureTimestamp > flt.DepartureUntil {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TripID != out[j].TripID {
			return out[i].TripID < out[j].TripID
		}
		return out[i].StopSequence < out[j].StopSequence
	})
	return out, nil
}

func (f *fakeStore) GetRoutes(_ context.Context, flt store.RouteFilter) ([]store.Route, error) {
	if f.failRoutes {
		return nil, errStoreDown
	}
	var out []store.Route
	for _, r := range f.routes {
		if flt.RouteID == "" || r.RouteID == flt.RouteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStops(_ context.Context, flt store.StopFilter) ([]store.Stop, error) {
	var out []store.Stop
	for _, s := range f.stops {
		if flt.StopID == "" || s.StopID == flt.StopID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeSnapshots is a static SnapshotSource.
type fakeSnapshots struct {
	snap *realtime.Snapshot
}

func (f *fakeSnapshots) Current() *realtime.Snapshot { return f.snap }

// weekdayStore builds the fixture used across the engine tests: two WKDY
// trips from Harlem (A) to Stamford (B), one opposite-direction trip, and
// one trip from another service day.
func weekdayStore() *fakeStore {
	return &fakeStore{
		calendar: []store.CalendarDate{
			{Date: "20240304", ServiceID: "WKDY"},
			{Date: "20240309", ServiceID: "SAT"},
		},
		trips: []store.Trip{
			{TripID: "T1", ServiceID: "WKDY", RouteID: "NH", TripHeadsign: "Stamford", TripShortName: "5401", WheelchairAccessible: store.WheelchairAccessible, PeakOffpeak: 1},
			{TripID: "T2", ServiceID: "WKDY", RouteID: "NH", TripHeadsign: "Stamford", TripShortName: "5403"},
			{TripID: "T3", ServiceID: "WKDY", RouteID: "NH", TripHeadsign: "Grand Central", TripShortName: "5404"},
			{TripID: "T9", ServiceID: "SAT", RouteID: "NH", TripHeadsign: "Stamford", TripShortName: "6401"},
		},
		routes: []store.Route{
			{RouteID: "NH", RouteLongName: "New Haven Line", RouteColor: "EE0034", RouteTextColor: "FFFFFF"},
		},
		stopTimes: []store.StopTime{
			// T1: A(3) -> B(7)
			{TripID: "T1", StopID: "A", StopSequence: 3, DepartureTime: "08:20:00", DepartureTimestamp: 1000, ArrivalTime: "08:19:00", ArrivalTimestamp: 940},
			{TripID: "T1", StopID: "B", StopSequence: 7, ArrivalTime: "08:35:00", ArrivalTimestamp: 1900, DepartureTime: "08:36:00", DepartureTimestamp: 1960, Track: "2"},
			// T2: A(1) -> B(4), departs earlier
			{TripID: "T2", StopID: "A", StopSequence: 1, DepartureTime: "08:10:00", DepartureTimestamp: 500},
			{TripID: "T2", StopID: "B", StopSequence: 4, ArrivalTime: "08:25:00", ArrivalTimestamp: 1400},
			// T3 runs the other way: B(2) -> A(6)
			{TripID: "T3", StopID: "B", StopSequence: 2, DepartureTime: "08:00:00", DepartureTimestamp: 300},
			{TripID: "T3", StopID: "A", StopSequence: 6, ArrivalTime: "08:30:00", ArrivalTimestamp: 1700, DepartureTime: "08:31:00", DepartureTimestamp: 1760},
			// T9 belongs to SAT service
			{TripID: "T9", StopID: "A", StopSequence: 1, DepartureTime: "09:00:00", DepartureTimestamp: 3000},
			{TripID: "T9", StopID: "B", StopSequence: 5, ArrivalTime: "09:30:00", ArrivalTimestamp: 4800},
		},
		stops: []store.Stop{
			{StopID: "A", StopName: "Harlem-125 St"},
			{StopID: "B", StopName: "Stamford"},
		},
	}
}
