// Package api is the HTTP surface of the schedule service.
package api
