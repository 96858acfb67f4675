package employee

import (
	"errors"

	"github.com/ogurasousui/employee-directory/internal/core/failure"
)

// EntityName は失敗に付与するエンティティ名です。
const EntityName = "employee"

var (
	// ErrEmployeeNotFound は任意の社員の NotFound と errors.Is で一致します。
	ErrEmployeeNotFound = &failure.Error{Kind: failure.KindNotFound, Entity: EntityName}
	// ErrEmailAlreadyExists はメールアドレスの一意制約違反です。
	ErrEmailAlreadyExists = failure.ConstraintViolation(errors.New("employee: email already exists"))
)

// NotFound は key で識別される社員が存在しないことを表します。
func NotFound(key string) error {
	return failure.NotFound(EntityName, key)
}
