package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mnr/schedule-api/realtime"
)

func newTestService(t *testing.T, st Store, snap *realtime.Snapshot) *Service {
	t.Helper()
	loc := mustLoc(t, "America/New_York")
	return NewService(st, NewResolver(st, loc), NewEnricher(st, &fakeSnapshots{snap: snap}, 4))
}

func TestService_GetSchedule(t *testing.T) {
	svc := newTestService(t, weekdayStore(), nil)
	now := time.Date(2024, 3, 4, 7, 0, 0, 0, mustLoc(t, "America/New_York"))

	records, err := svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "T2", records[0].TripID)
	assert.Equal(t, "T1", records[1].TripID)
	assert.True(t, records[0].DepartureTimestamp <= records[1].DepartureTimestamp)
}

func TestService_IdempotentWithinPollInterval(t *testing.T) {
	st := weekdayStore()
	svc := newTestService(t, st, nil)
	now := time.Date(2024, 3, 4, 7, 0, 0, 0, mustLoc(t, "America/New_York"))

	first, err := svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	require.NoError(t, err)
	second, err := svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestService_NoActiveServiceDay(t *testing.T) {
	svc := newTestService(t, weekdayStore(), nil)
	now := time.Date(2024, 3, 6, 7, 0, 0, 0, mustLoc(t, "America/New_York"))

	_, err := svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	var noService *NoActiveServiceError
	assert.ErrorAs(t, err, &noService)
}

func TestService_EmptyCandidatesIsNotAnError(t *testing.T) {
	st := weekdayStore()
	svc := newTestService(t, st, nil)
	// Saturday service exists but only trip T9 serves A->B; filter for a
	// stop pair it does not serve.
	now := time.Date(2024, 3, 9, 7, 0, 0, 0, mustLoc(t, "America/New_York"))

	records, err := svc.GetSchedule(context.Background(), "A", "C", now, Window{})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestService_StoreDownDuringFilter(t *testing.T) {
	st := weekdayStore()
	svc := newTestService(t, st, nil)
	now := time.Date(2024, 3, 4, 7, 0, 0, 0, mustLoc(t, "America/New_York"))

	// Resolve once so the date is memoized, then break the store.
	_, err := svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	require.NoError(t, err)
	st.failStoptimes = true

	_, err = svc.GetSchedule(context.Background(), "A", "B", now, Window{})
	var storeDown *StoreUnavailableError
	assert.ErrorAs(t, err, &storeDown)
}

func TestNextOccurrence(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, loc)

	next := NextOccurrence(now, "13:30")
	assert.Equal(t, time.Date(2024, 3, 4, 13, 30, 0, 0, loc), next)

	next = NextOccurrence(now, "01:30")
	assert.Equal(t, time.Date(2024, 3, 5, 1, 30, 0, 0, loc), next)

	// Malformed schedule falls back to a day from now.
	next = NextOccurrence(now, "nonsense")
	assert.Equal(t, now.Add(24*time.Hour), next)
}
