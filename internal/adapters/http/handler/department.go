package handler

import (
	"log/slog"
	"net/http"

	"github.com/ogurasousui/employee-directory/internal/core/department"
)

// DepartmentHTTPHandler は部署 API の HTTP 実装です。
type DepartmentHTTPHandler struct {
	svc    department.UseCase
	logger *slog.Logger
}

// NewDepartmentHTTPHandler は DepartmentHTTPHandler を生成します。
func NewDepartmentHTTPHandler(svc department.UseCase, logger *slog.Logger) *DepartmentHTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DepartmentHTTPHandler{svc: svc, logger: logger}
}

type departmentResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Company     string `json:"company"`
}

// ListDepartments は GET /departments を処理します。
func (h *DepartmentHTTPHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.svc.ListDepartments(r.Context())
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	resp := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, toDepartmentResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDepartment は GET /departments/{departmentName} を処理します。
func (h *DepartmentHTTPHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetDepartment(r.Context(), r.PathValue("departmentName"))
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepartmentResponse(found))
}

func toDepartmentResponse(d *department.Department) departmentResponse {
	return departmentResponse{
		Name:        d.Name,
		Description: d.Description,
		Company:     d.Company,
	}
}
