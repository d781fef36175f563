package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/seatsafety/report-analyzer/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application errors onto HTTP statuses and renders a small
// JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, common.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, common.ErrUnsupported):
			status = http.StatusUnprocessableEntity
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", common.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err)
	}
	writeJSON(w, status, map[string]string{"code": code, "error": err.Error()})
}

func badRequestf(format string, args ...any) error {
	return common.InvalidInputError(fmt.Sprintf(format, args...))
}
