package store

// Wheelchair accessibility values carried on trips (GTFS tri-state).
const (
	WheelchairUnknown      = 0
	WheelchairAccessible   = 1
	WheelchairInaccessible = 2
)

// Stop is a station or platform from the static schedule.
type Stop struct {
	StopID   string `json:"stop_id"`
	StopName string `json:"stop_name"`
}

// CalendarDate maps a civil date (YYYYMMDD) to the service pattern active
// on that date.
type CalendarDate struct {
	Date      string `json:"date"`
	ServiceID string `json:"service_id"`
}

// Trip is a single scheduled run of a vehicle.
type Trip struct {
	TripID               string `json:"trip_id"`
	ServiceID            string `json:"service_id"`
	RouteID              string `json:"route_id"`
	TripHeadsign         string `json:"trip_headsign"`
	TripShortName        string `json:"trip_short_name"`
	WheelchairAccessible int    `json:"wheelchair_accessible"`
	PeakOffpeak          int    `json:"peak_offpeak"`
}

// Route is the line a trip runs on.
type Route struct {
	RouteID        string `json:"route_id"`
	RouteLongName  string `json:"route_long_name"`
	RouteColor     string `json:"route_color"`
	RouteTextColor string `json:"route_text_color"`
}

// StopTime is a trip's scheduled visit to one stop. Identity is
// (trip_id, stop_id); StopSequence increases along the trip's path.
type StopTime struct {
	TripID             string `json:"trip_id"`
	StopID             string `json:"stop_id"`
	StopSequence       int    `json:"stop_sequence"`
	ArrivalTime        string `json:"arrival_time"`
	DepartureTime      string `json:"departure_time"`
	ArrivalTimestamp   int64  `json:"arrival_timestamp"`
	DepartureTimestamp int64  `json:"departure_timestamp"`
	Track              string `json:"track,omitempty"`
}
