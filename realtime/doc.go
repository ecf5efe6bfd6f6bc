// Package realtime polls the GTFS-Realtime TripUpdates feed and keeps the
// most recent snapshot in memory.
//
// The cache is single-writer: one goroutine refreshes on a fixed interval
// and replaces the snapshot wholesale, so concurrent readers always observe
// a complete snapshot or none at all. A failed fetch never disturbs the
// previous snapshot.
package realtime
