// Package publisher emits realtime delay updates to NATS.
//
// Publishing is optional infrastructure for downstream consumers (departure
// boards, alerting); the schedule API itself never depends on it.
package publisher
