package employee

import (
	"strings"

	"github.com/ogurasousui/employee-directory/internal/core/failure"
)

// CreateEmployeeCommand は社員作成時の入力です。
type CreateEmployeeCommand struct {
	GivenName  string
	LastName   string
	Email      string
	Department string
}

// UpdateEmployeeCommand は社員更新時の入力です。ID はリクエストパスから渡されます。
type UpdateEmployeeCommand struct {
	ID         string
	GivenName  string
	LastName   string
	Email      string
	Department string
}

// ValidateCreate は必須項目を検証し、前後の空白を除いたコマンドを返します。
func ValidateCreate(cmd CreateEmployeeCommand) (CreateEmployeeCommand, error) {
	var err error
	out := CreateEmployeeCommand{}
	if out.GivenName, err = requireParameter("givenName", cmd.GivenName); err != nil {
		return CreateEmployeeCommand{}, err
	}
	if out.LastName, err = requireParameter("lastName", cmd.LastName); err != nil {
		return CreateEmployeeCommand{}, err
	}
	if out.Email, err = requireParameter("email", cmd.Email); err != nil {
		return CreateEmployeeCommand{}, err
	}
	if out.Department, err = requireParameter("department", cmd.Department); err != nil {
		return CreateEmployeeCommand{}, err
	}
	return out, nil
}

// ValidateUpdate は ValidateCreate に加えて対象 ID を検証します。
func ValidateUpdate(cmd UpdateEmployeeCommand) (UpdateEmployeeCommand, error) {
	id, err := requireParameter("employeeId", cmd.ID)
	if err != nil {
		return UpdateEmployeeCommand{}, err
	}

	fields, err := ValidateCreate(CreateEmployeeCommand{
		GivenName:  cmd.GivenName,
		LastName:   cmd.LastName,
		Email:      cmd.Email,
		Department: cmd.Department,
	})
	if err != nil {
		return UpdateEmployeeCommand{}, err
	}

	return UpdateEmployeeCommand{
		ID:         id,
		GivenName:  fields.GivenName,
		LastName:   fields.LastName,
		Email:      fields.Email,
		Department: fields.Department,
	}, nil
}

func requireParameter(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", failure.MissingParameter(name)
	}
	return trimmed, nil
}
