package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mnr/schedule-api/metrics"
	"mnr/schedule-api/realtime"
	"mnr/schedule-api/schedule"
	"mnr/schedule-api/store"
)

// API wires the schedule service, store, and realtime cache into HTTP
// handlers.
type API struct {
	Schedule *schedule.Service
	Store    schedule.Store
	Realtime *realtime.Cache
	Metrics  *metrics.Collector

	// Now is the request clock; overridable in tests.
	Now func() time.Time
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *API) handleSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	originID := strings.TrimSpace(r.URL.Query().Get("origin_id"))
	destinationID := strings.TrimSpace(r.URL.Query().Get("destination_id"))
	if originID == "" || destinationID == "" {
		writeError(w, http.StatusBadRequest, KindBadRequest, "origin_id and destination_id are required")
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}

	records, err := a.Schedule.GetSchedule(r.Context(), originID, destinationID, a.now(), win)
	if err != nil {
		a.scheduleError(w, r, err)
		return
	}

	if a.Metrics != nil {
		a.Metrics.ScheduleRequests.WithLabelValues("ok").Inc()
		a.Metrics.RequestDuration.Observe(time.Since(start).Seconds())
		a.Metrics.CandidateCount.Observe(float64(len(records)))
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) scheduleError(w http.ResponseWriter, r *http.Request, err error) {
	var noService *schedule.NoActiveServiceError
	var storeDown *schedule.StoreUnavailableError
	switch {
	case errors.As(err, &noService):
		if a.Metrics != nil {
			a.Metrics.ScheduleRequests.WithLabelValues("no_service").Inc()
		}
		writeError(w, http.StatusNotFound, KindNoActiveService, noService.Error())
	case errors.As(err, &storeDown):
		if a.Metrics != nil {
			a.Metrics.ScheduleRequests.WithLabelValues("store_unavailable").Inc()
		}
		writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable, storeDown.Error())
	case errors.Is(err, context.Canceled):
		// Caller went away; nothing useful to write.
	default:
		if a.Metrics != nil {
			a.Metrics.ScheduleRequests.WithLabelValues("error").Inc()
		}
		writeError(w, http.StatusInternalServerError, KindInternal, err.Error())
	}
}

// parseWindow reads the optional departure_after/departure_until bounds
// (timestamp seconds, inclusive) off the query string.
func parseWindow(r *http.Request) (schedule.Window, error) {
	var win schedule.Window
	for _, b := range []struct {
		param string
		dst   *int64
	}{
		{"departure_after", &win.DepartureAfter},
		{"departure_until", &win.DepartureUntil},
	} {
		raw := strings.TrimSpace(r.URL.Query().Get(b.param))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return schedule.Window{}, fmt.Errorf("%s must be a non-negative integer", b.param)
		}
		*b.dst = v
	}
	return win, nil
}

// handleStops returns the stations of the static schedule, optionally
// narrowed to one stop_id.
func (a *API) handleStops(w http.ResponseWriter, r *http.Request) {
	stopID := strings.TrimSpace(r.URL.Query().Get("stop_id"))
	stops, err := a.Store.GetStops(r.Context(), store.StopFilter{StopID: stopID})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable, err.Error())
		return
	}
	if stops == nil {
		stops = []store.Stop{}
	}
	writeJSON(w, http.StatusOK, stops)
}

// handleRealtime returns the current snapshot, or null when the feed has
// never been fetched successfully.
func (a *API) handleRealtime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Realtime.Current())
}

type healthResponse struct {
	Status          string `json:"status"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if snap := a.Realtime.Current(); snap != nil {
		resp.LatestFeedEpoch = snap.Timestamp
	}
	writeJSON(w, http.StatusOK, resp)
}
