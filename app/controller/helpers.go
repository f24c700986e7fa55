package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"oakfield-backend/repository"
)

// defaultLimit caps list responses when no limit parameter is given
const defaultLimit = 100

// writeJSON encodes payload as the response body
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// repoError maps repository failures onto HTTP status codes.
// ErrNotFound becomes 404 and ErrConflict becomes 400, everything else is a 500.
func repoError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, repository.ErrConflict) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, fmt.Sprintf("%s: %v", op, err), http.StatusInternalServerError)
}

// parsePagination reads skip and limit query parameters
func parsePagination(r *http.Request) (int, int) {
	skip := 0
	limit := defaultLimit

	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	return skip, limit
}

// optionalQuery returns a pointer to a query parameter, or nil when absent
func optionalQuery(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}
