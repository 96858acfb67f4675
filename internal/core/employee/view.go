package employee

import "github.com/ogurasousui/employee-directory/internal/core/department"

// OutgoingEmployee は社員と所属部署をまとめた応答用の読み取り専用ビューです。
type OutgoingEmployee struct {
	EmployeeID            string
	GivenName             string
	LastName              string
	Email                 string
	DepartmentName        string
	DepartmentDescription string
	Company               string
}

// BuildView は解決済みの社員と部署からビューを組み立てます。
func BuildView(e *Employee, d *department.Department) OutgoingEmployee {
	return OutgoingEmployee{
		EmployeeID:            e.ID,
		GivenName:             e.GivenName,
		LastName:              e.LastName,
		Email:                 e.Email,
		DepartmentName:        d.Name,
		DepartmentDescription: d.Description,
		Company:               d.Company,
	}
}
