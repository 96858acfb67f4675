package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// EmployeeHTTPHandler は社員 API の HTTP 実装です。
type EmployeeHTTPHandler struct {
	svc    employee.UseCase
	logger *slog.Logger
}

// NewEmployeeHTTPHandler は EmployeeHTTPHandler を生成します。
func NewEmployeeHTTPHandler(svc employee.UseCase, logger *slog.Logger) *EmployeeHTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeHTTPHandler{svc: svc, logger: logger}
}

type employeeResponse struct {
	EmployeeID   string    `json:"employeeId"`
	GivenName    string    `json:"givenName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type outgoingEmployeeResponse struct {
	EmployeeID            string `json:"employeeId"`
	GivenName             string `json:"givenName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email"`
	DepartmentName        string `json:"departmentName"`
	DepartmentDescription string `json:"departmentDescription"`
	Company               string `json:"company"`
}

type employeeCommandRequest struct {
	GivenName  string `json:"givenName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ListEmployees は GET /employees を処理します。
func (h *EmployeeHTTPHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, toEmployeeResponse(emp))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetEmployee は GET /employees/{employeeId} を処理します。
func (h *EmployeeHTTPHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetEmployee(r.Context(), r.PathValue("employeeId"))
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(found))
}

// CountEmployees は GET /employees/count?lastName= を処理します。
func (h *EmployeeHTTPHandler) CountEmployees(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.CountEmployees(r.Context(), r.URL.Query().Get("lastName"))
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// FindEmployeeByEmail は GET /employees/filter?email= を処理します。
func (h *EmployeeHTTPHandler) FindEmployeeByEmail(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.FindEmployeeByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(found))
}

// CreateEmployee は POST /employees を処理します。
func (h *EmployeeHTTPHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeCommandRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	view, err := h.svc.CreateEmployee(r.Context(), employee.CreateEmployeeCommand{
		GivenName:  req.GivenName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/employees/"+view.EmployeeID)
	writeJSON(w, http.StatusCreated, toOutgoingEmployeeResponse(view))
}

// UpdateEmployee は PUT /employees/{employeeId} を処理します。
func (h *EmployeeHTTPHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeCommandRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	view, err := h.svc.UpdateEmployee(r.Context(), employee.UpdateEmployeeCommand{
		ID:         r.PathValue("employeeId"),
		GivenName:  req.GivenName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOutgoingEmployeeResponse(view))
}

// DeleteEmployee は DELETE /employees/{employeeId} を処理します。
func (h *EmployeeHTTPHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEmployee(r.Context(), r.PathValue("employeeId")); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeResponse(emp *employee.Employee) employeeResponse {
	return employeeResponse{
		EmployeeID:   emp.ID,
		GivenName:    emp.GivenName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
}

func toOutgoingEmployeeResponse(view *employee.OutgoingEmployee) outgoingEmployeeResponse {
	return outgoingEmployeeResponse{
		EmployeeID:            view.EmployeeID,
		GivenName:             view.GivenName,
		LastName:              view.LastName,
		Email:                 view.Email,
		DepartmentName:        view.DepartmentName,
		DepartmentDescription: view.DepartmentDescription,
		Company:               view.Company,
	}
}
