package employee

import "time"

// Employee は社員エンティティです。DepartmentID は部署名を参照します。
type Employee struct {
	ID           string
	GivenName    string
	LastName     string
	Email        string
	DepartmentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// apply は更新コマンドの値で自身のフィールドを置き換えます。
func (e *Employee) apply(cmd UpdateEmployeeCommand, now time.Time) {
	e.GivenName = cmd.GivenName
	e.LastName = cmd.LastName
	e.Email = cmd.Email
	e.DepartmentID = cmd.Department
	e.UpdatedAt = now
}
