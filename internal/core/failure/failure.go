package failure

import (
	"errors"
	"fmt"
)

// Kind はドメイン失敗の種別です。
type Kind int

const (
	KindUnclassified Kind = iota
	KindNotFound
	KindMissingParameter
	KindConstraintViolation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMissingParameter:
		return "missing_parameter"
	case KindConstraintViolation:
		return "constraint_violation"
	default:
		return "unclassified"
	}
}

// Error は種別付きのドメイン失敗です。
// Entity と Key は NotFound の対象、MissingParameter ではパラメータ名を Key に保持します。
type Error struct {
	Kind   Kind
	Entity string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found: %q", e.Entity, e.Key)
	case KindMissingParameter:
		return fmt.Sprintf("missing parameter: %s", e.Key)
	case KindConstraintViolation:
		if e.Err != nil {
			return fmt.Sprintf("constraint violation: %v", e.Err)
		}
		return "constraint violation"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unclassified failure"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は種別と対象エンティティが一致する場合に true を返します。
// ErrNotFound のような Entity / Key 未指定のテンプレートとも比較できます。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

var (
	// ErrNotFound は任意エンティティの NotFound と errors.Is で一致します。
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrMissingParameter は任意パラメータの MissingParameter と一致します。
	ErrMissingParameter = &Error{Kind: KindMissingParameter}
	// ErrConstraintViolation はストア由来の制約違反と一致します。
	ErrConstraintViolation = &Error{Kind: KindConstraintViolation}
)

// NotFound は entity の key が存在しないことを表します。
func NotFound(entity, key string) error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: key}
}

// MissingParameter は必須パラメータ name が欠けていることを表します。
func MissingParameter(name string) error {
	return &Error{Kind: KindMissingParameter, Key: name}
}

// ConstraintViolation はストアが拒否した書き込みを表します。
func ConstraintViolation(err error) error {
	return &Error{Kind: KindConstraintViolation, Err: err}
}

// Unclassified は上記いずれにも該当しない失敗を表します。
func Unclassified(err error) error {
	return &Error{Kind: KindUnclassified, Err: err}
}

// KindOf は err の連鎖から最初に見つかった種別を返します。種別を持たない場合は KindUnclassified です。
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnclassified
}
