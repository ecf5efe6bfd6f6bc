package api

import (
	"encoding/json"
	"net/http"
)

// Error kinds surfaced to clients. Stable, machine-readable.
const (
	KindBadRequest       = "bad_request"
	KindNoActiveService  = "no_active_service"
	KindStoreUnavailable = "store_unavailable"
	KindInternal         = "internal"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorPayload{Error: errorBody{Kind: kind, Message: msg}})
}
