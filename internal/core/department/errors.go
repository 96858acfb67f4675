package department

import "github.com/ogurasousui/employee-directory/internal/core/failure"

// EntityName は失敗に付与するエンティティ名です。
const EntityName = "department"

// ErrDepartmentNotFound は任意の部署の NotFound と errors.Is で一致します。
var ErrDepartmentNotFound = &failure.Error{Kind: failure.KindNotFound, Entity: EntityName}

// NotFound は name の部署が存在しないことを表します。
func NotFound(name string) error {
	return failure.NotFound(EntityName, name)
}
