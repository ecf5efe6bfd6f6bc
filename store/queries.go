package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// StopFilter selects stops by id; zero value selects all stops.
type StopFilter struct {
	StopID string
}

// CalendarDateFilter selects calendar entries for one civil date (YYYYMMDD).
type CalendarDateFilter struct {
	Date string
}

// TripFilter selects trips by service pattern and/or trip id.
type TripFilter struct {
	ServiceID string
	TripID    string
}

// StoptimeFilter selects stop-times by stop, trip, and an optional
// departure-timestamp window (inclusive bounds, seconds).
type StoptimeFilter struct {
	StopID         string
	TripID         string
	DepartureAfter int64
	DepartureUntil int64
}

// RouteFilter selects routes by id.
type RouteFilter struct {
	RouteID string
}

type predicate struct {
	clauses []string
	args    []any
}

func (p *predicate) add(column string, value any) {
	p.args = append(p.args, value)
	p.clauses = append(p.clauses, column+" $"+strconv.Itoa(len(p.args)))
}

func (p *predicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// GetStops returns stops matching the filter.
func (c *Client) GetStops(ctx context.Context, f StopFilter) ([]Stop, error) {
	var p predicate
	if f.StopID != "" {
		p.add("stop_id =", f.StopID)
	}
	q := "SELECT stop_id, stop_name FROM stops" + p.where() + " ORDER BY stop_id"
	rows, err := c.db.QueryContext(ctx, q, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query stops: %w", err)
	}
	defer rows.Close()
	var out []Stop
	for rows.Next() {
		var s Stop
		if err := rows.Scan(&s.StopID, &s.StopName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetCalendarDates returns the service entries for a date, in table order.
func (c *Client) GetCalendarDates(ctx context.Context, f CalendarDateFilter) ([]CalendarDate, error) {
	var p predicate
	if f.Date != "" {
		p.add("date =", f.Date)
	}
	q := "SELECT date, service_id FROM calendar_dates" + p.where()
	rows, err := c.db.QueryContext(ctx, q, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query calendar_dates: %w", err)
	}
	defer rows.Close()
	var out []CalendarDate
	for rows.Next() {
		var cd CalendarDate
		if err := rows.Scan(&cd.Date, &cd.ServiceID); err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// GetTrips returns trips matching the filter.
func (c *Client) GetTrips(ctx context.Context, f TripFilter) ([]Trip, error) {
	var p predicate
	if f.ServiceID != "" {
		p.add("service_id =", f.ServiceID)
	}
	if f.TripID != "" {
		p.add("trip_id =", f.TripID)
	}
	q := `SELECT trip_id, service_id, route_id,
	COALESCE(trip_headsign, ''), COALESCE(trip_short_name, ''),
	COALESCE(wheelchair_accessible, 0), COALESCE(peak_offpeak, 0)
	FROM trips` + p.where()
	rows, err := c.db.QueryContext(ctx, q, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()
	var out []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.TripID, &t.ServiceID, &t.RouteID,
			&t.TripHeadsign, &t.TripShortName,
			&t.WheelchairAccessible, &t.PeakOffpeak); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetStoptimes returns stop-times matching the filter, ordered by stop
// sequence within each trip.
func (c *Client) GetStoptimes(ctx context.Context, f StoptimeFilter) ([]StopTime, error) {
	var p predicate
	if f.StopID != "" {
		p.add("stop_id =", f.StopID)
	}
	if f.TripID != "" {
		p.add("trip_id =", f.TripID)
	}
	if f.DepartureAfter > 0 {
		p.add("departure_timestamp >=", f.DepartureAfter)
	}
	if f.DepartureUntil > 0 {
		p.add("departure_timestamp <=", f.DepartureUntil)
	}
	q := `SELECT trip_id, stop_id, stop_sequence,
	COALESCE(arrival_time, ''), COALESCE(departure_time, ''),
	COALESCE(arrival_timestamp, 0), COALESCE(departure_timestamp, 0),
	COALESCE(track, '')
	FROM stop_times` + p.where() + " ORDER BY trip_id, stop_sequence"
	rows, err := c.db.QueryContext(ctx, q, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query stop_times: %w", err)
	}
	defer rows.Close()
	var out []StopTime
	for rows.Next() {
		var st StopTime
		if err := rows.Scan(&st.TripID, &st.StopID, &st.StopSequence,
			&st.ArrivalTime, &st.DepartureTime,
			&st.ArrivalTimestamp, &st.DepartureTimestamp, &st.Track); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetRoutes returns routes matching the filter.
func (c *Client) GetRoutes(ctx context.Context, f RouteFilter) ([]Route, error) {
	var p predicate
	if f.RouteID != "" {
		p.add("route_id =", f.RouteID)
	}
	q := `SELECT route_id, COALESCE(route_long_name, ''),
	COALESCE(route_color, ''), COALESCE(route_text_color, '')
	FROM routes` + p.where()
	rows, err := c.db.QueryContext(ctx, q, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()
	var out []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.RouteID, &r.RouteLongName, &r.RouteColor, &r.RouteTextColor); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
