package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mnr/schedule-api/store"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestResolver_ActiveService(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	st := weekdayStore()
	r := NewResolver(st, loc)

	// Noon local on 2024-03-04.
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, loc)
	id, err := r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "WKDY", id)
}

func TestResolver_CivilDateUsesConfiguredTimezone(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	st := weekdayStore()
	r := NewResolver(st, loc)

	// 2024-03-05 02:00 UTC is still 2024-03-04 in New York.
	now := time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)
	id, err := r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "WKDY", id)
}

func TestResolver_NoActiveService(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	r := NewResolver(weekdayStore(), loc)

	now := time.Date(2024, 3, 6, 12, 0, 0, 0, loc)
	_, err := r.ActiveService(context.Background(), now)
	var noService *NoActiveServiceError
	require.ErrorAs(t, err, &noService)
	assert.Equal(t, "20240306", noService.Date)
}

func TestResolver_FirstEntryWins(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	st := weekdayStore()
	st.calendar = append(st.calendar, store.CalendarDate{Date: "20240304", ServiceID: "HOL"})
	r := NewResolver(st, loc)

	now := time.Date(2024, 3, 4, 12, 0, 0, 0, loc)
	id, err := r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "WKDY", id)
}

func TestResolver_MemoizesUntilDropped(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	st := weekdayStore()
	r := NewResolver(st, loc)
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, loc)

	_, err := r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	_, err = r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, st.calendarCalls)

	r.DropMemo()
	_, err = r.ActiveService(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, st.calendarCalls)
}

func TestResolver_StoreFailure(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	st := weekdayStore()
	st.failCalendar = true
	r := NewResolver(st, loc)

	_, err := r.ActiveService(context.Background(), time.Now())
	var storeDown *StoreUnavailableError
	require.ErrorAs(t, err, &storeDown)
}
