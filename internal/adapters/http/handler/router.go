package handler

import (
	"log/slog"
	"net/http"
	"time"
)

// NewRouter は社員・部署 API のルーティングを構築します。
func NewRouter(employees *EmployeeHTTPHandler, departments *DepartmentHTTPHandler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /employees", employees.ListEmployees)
	mux.HandleFunc("GET /employees/count", employees.CountEmployees)
	mux.HandleFunc("GET /employees/filter", employees.FindEmployeeByEmail)
	mux.HandleFunc("GET /employees/{employeeId}", employees.GetEmployee)
	mux.HandleFunc("POST /employees", employees.CreateEmployee)
	mux.HandleFunc("PUT /employees/{employeeId}", employees.UpdateEmployee)
	mux.HandleFunc("DELETE /employees/{employeeId}", employees.DeleteEmployee)

	mux.HandleFunc("GET /departments", departments.ListDepartments)
	mux.HandleFunc("GET /departments/{departmentName}", departments.GetDepartment)

	return withRequestLog(withRecovery(mux, logger), logger)
}

// statusRecorder は書き込まれたステータスと、ヘッダーが送出済みかどうかを記録します。
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

func withRequestLog(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorderFor(w)

		next.ServeHTTP(rec, r)

		logger.LogAttrs(r.Context(), slog.LevelDebug, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// withRecovery はパニックを 500 に変換します。応答が書き始められていた場合はログのみ残します。
func withRecovery(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorderFor(w)
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.ErrorContext(r.Context(), "panic while serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", p,
					"headers_written", rec.wroteHeader,
				)
				if rec.wroteHeader {
					return
				}
				writeJSON(rec, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
			}
		}()
		next.ServeHTTP(rec, r)
	})
}
