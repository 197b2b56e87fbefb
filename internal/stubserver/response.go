package stubserver

import (
	"encoding/json"
	"net/http"
)

// The stub mirrors the production backend's wire conventions: plain JSON
// bodies on success, {"detail": "..."} on failure. The client's error
// decoder depends on this shape.

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, map[string]string{"detail": detail})
}

func badRequest(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusBadRequest, detail)
}

func unauthorized(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusUnauthorized, detail)
}

func forbidden(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusForbidden, detail)
}

func notFound(w http.ResponseWriter, detail string) {
	writeDetail(w, http.StatusNotFound, detail)
}

func internalError(w http.ResponseWriter) {
	writeDetail(w, http.StatusInternalServerError, "internal server error")
}
