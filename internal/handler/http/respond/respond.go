// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"log/slog"
	"net/http"
	"strings"

	"encoding/json"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors are returned as "internal server error" with details
// logged for debugging. Validation-style errors are returned as-is.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	safeErrors := []string{
		"required",
		"invalid",
		"not found",
		"unknown category",
		"must be",
		"cannot be",
	}

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 5xx is always treated as internal.
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
	} else {
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
		JSON(w, code, map[string]string{"error": "internal server error"})
	}
}
