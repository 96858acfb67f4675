package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ogurasousui/employee-directory/internal/core/failure"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody は単一の JSON 値としてボディを読み取ります。
// 空や不正な JSON、後続データは MissingParameter("body") です。上限超過は *http.MaxBytesError のまま返します。
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Errorf("decode body: %w", err)
	case errors.Is(err, io.EOF):
		return failure.MissingParameter("body")
	default:
		return fmt.Errorf("decode body: %w", &failure.Error{Kind: failure.KindMissingParameter, Key: "body", Err: err})
	}
}
