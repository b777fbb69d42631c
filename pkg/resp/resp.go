package resp

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSONResponse writes v as a JSON body with the given status.
func WriteJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// WriteErrorResponse writes a JSON error body with a stable code.
func WriteErrorResponse(w http.ResponseWriter, status int, msg, code string) {
	WriteJSONResponse(w, status, errorBody{Error: msg, Code: code})
}
