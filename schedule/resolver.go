package schedule

import (
	"context"
	"sync"
	"time"

	"mnr/schedule-api/store"
)

// Resolver maps an instant to the service pattern active on that civil date.
//
// Resolutions are memoized per date because every request hits this lookup
// and the calendar only changes when the store re-imports; DropMemo is
// called by the daily static-refresh tick after the import window.
type Resolver struct {
	store Store
	loc   *time.Location

	mu   sync.RWMutex
	memo map[string]string // YYYYMMDD -> service_id
}

func NewResolver(st Store, loc *time.Location) *Resolver {
	return &Resolver{store: st, loc: loc, memo: map[string]string{}}
}

// ActiveService returns the service_id active on now's civil date in the
// resolver's timezone. When several calendar entries exist for one date the
// first entry wins. Returns NoActiveServiceError when the date has none.
func (r *Resolver) ActiveService(ctx context.Context, now time.Time) (string, error) {
	date := now.In(r.loc).Format("20060102")

	r.mu.RLock()
	id, ok := r.memo[date]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	entries, err := r.store.GetCalendarDates(ctx, store.CalendarDateFilter{Date: date})
	if err != nil {
		return "", &StoreUnavailableError{Op: "calendar_dates", Err: err}
	}
	if len(entries) == 0 {
		return "", &NoActiveServiceError{Date: date}
	}
	id = entries[0].ServiceID

	r.mu.Lock()
	r.memo[date] = id
	r.mu.Unlock()
	return id, nil
}

// DropMemo forgets all memoized resolutions. Called after the store's daily
// import so the next request re-reads the fresh calendar.
func (r *Resolver) DropMemo() {
	r.mu.Lock()
	r.memo = map[string]string{}
	r.mu.Unlock()
}
