package department

import (
	"context"
	"strings"

	"github.com/ogurasousui/employee-directory/internal/core/failure"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は部署ユースケースの公開インターフェースです。
type UseCase interface {
	ListDepartments(ctx context.Context) ([]*Department, error)
	GetDepartment(ctx context.Context, name string) (*Department, error)
}

// Service は部署に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// ListDepartments は全部署を返します。
func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	var result []*Department
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// GetDepartment は名前で部署を取得します。
func (s *Service) GetDepartment(ctx context.Context, name string) (*Department, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, failure.MissingParameter("name")
	}

	var result *Department
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByName(txCtx, trimmed)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}
