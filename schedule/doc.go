// Package schedule resolves "next train from A to B" requests against the
// static schedule store and overlays realtime delays.
//
// The pipeline is: resolve the active service pattern for the request's
// civil date, join stop-times across the origin and destination stops into
// an ordered candidate set, then enrich each candidate concurrently with
// trip/route metadata, the full stop sequence, and the live delay from the
// realtime cache. A failure enriching one candidate degrades that record
// only; it never fails the request.
package schedule
