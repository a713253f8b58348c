package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError emits the JSON error envelope the rest of the API uses, so
// middleware rejections look the same to clients as handler rejections.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
