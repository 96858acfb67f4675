package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ogurasousui/employee-directory/internal/core/failure"
)

const payloadTooLarge = "payload_too_large"

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(outcome failure.Outcome) int {
	switch outcome {
	case failure.OutcomeNotFound:
		return http.StatusNotFound
	case failure.OutcomeConflict:
		return http.StatusConflict
	case failure.OutcomeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure は失敗をカテゴリのみの応答に変換します。内部の詳細はログにだけ残します。
func writeFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.LogAttrs(r.Context(), slog.LevelInfo, "request body too large",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int64("limit", tooLarge.Limit),
		)
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: payloadTooLarge})
		return
	}

	outcome := failure.OutcomeOf(err)
	status := statusFor(outcome)

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("outcome", outcome.String()),
		slog.String("error", err.Error()),
	)

	writeJSON(w, status, errorResponse{Error: outcome.String()})
}
