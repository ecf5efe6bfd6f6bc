package schedule

import (
	"context"

	"mnr/schedule-api/store"
)

// Store is the read surface of the static schedule store consumed by this
// package. *store.Client satisfies it; tests substitute a fake.
type Store interface {
	GetCalendarDates(ctx context.Context, f store.CalendarDateFilter) ([]store.CalendarDate, error)
	GetTrips(ctx context.Context, f store.TripFilter) ([]store.Trip, error)
	GetStoptimes(ctx context.Context, f store.StoptimeFilter) ([]store.StopTime, error)
	GetRoutes(ctx context.Context, f store.RouteFilter) ([]store.Route, error)
	GetStops(ctx context.Context, f store.StopFilter) ([]store.Stop, error)
}

// SequenceStop is one stop of a trip's full itinerary, as rendered to
// downstream consumers.
type SequenceStop struct {
	DepartureTime      string `json:"departure_time"`
	StopID             string `json:"stop_id"`
	StopSequence       int    `json:"stop_sequence"`
	Track              string `json:"track,omitempty"`
	DepartureTimestamp int64  `json:"departure_timestamp"`
}

// Record is one candidate trip from origin to destination, fully enriched.
// Records are built per request and never stored.
type Record struct {
	TripID               string         `json:"trip_id"`
	TripHeadsign         string         `json:"trip_headsign"`
	TripShortName        string         `json:"trip_short_name"`
	RouteID              string         `json:"route_id"`
	RouteLongName        string         `json:"route_long_name"`
	RouteColor           string         `json:"route_color"`
	RouteTextColor       string         `json:"route_text_color"`
	OriginID             string         `json:"origin_id"`
	DestinationID        string         `json:"destination_id"`
	DepartureTime        string         `json:"departure_time"`
	DepartureTimestamp   int64          `json:"departure_timestamp"`
	ArrivalTime          string         `json:"arrival_time,omitempty"`
	ArrivalTimestamp     int64          `json:"arrival_timestamp,omitempty"`
	TripDurationSeconds  int64          `json:"trip_duration_seconds"`
	StopSequence         int            `json:"stop_sequence"`
	WheelchairAccessible int            `json:"wheelchair_accessible"`
	PeakOffpeak          int            `json:"peak_offpeak"`
	DelaySeconds         int            `json:"delay_seconds"`
	FullStopSequence     []SequenceStop `json:"full_stop_sequence,omitempty"`

	// Degraded marks a record whose enrichment failed partway; the fields
	// above that could not be filled are left at their zero values.
	Degraded bool `json:"degraded,omitempty"`
}
