package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/employee-directory/internal/core/department"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator は新しい社員 ID を払い出します。
type IDGenerator func() string

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// DepartmentFinder は部署を名前で解決します。department.Repository が満たします。
type DepartmentFinder interface {
	FindByName(ctx context.Context, name string) (*department.Department, error)
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	CountEmployees(ctx context.Context, lastName string) (int64, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*Employee, error)
	CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (*OutgoingEmployee, error)
	UpdateEmployee(ctx context.Context, cmd UpdateEmployeeCommand) (*OutgoingEmployee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo        Repository
	departments DepartmentFinder
	clock       Clock
	tx          TransactionManager
	newID       IDGenerator
}

// Option は Service の依存を差し替えます。
type Option func(*Service)

// WithClock は時刻の供給元を差し替えます。
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator は ID の払い出し方法を差し替えます。
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService は Service を生成します。tx が nil の場合はトランザクションなしで動作します。
func NewService(repo Repository, departments DepartmentFinder, tx TransactionManager, opts ...Option) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:        repo,
		departments: departments,
		clock:       realClock{},
		tx:          tx,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListEmployees は全社員を返します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var result []*Employee
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

// GetEmployee は ID で社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	trimmed, err := requireParameter("employeeId", id)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, trimmed)
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

// CountEmployees は社員数を返します。lastName が空の場合は全件を数えます。
func (s *Service) CountEmployees(ctx context.Context, lastName string) (int64, error) {
	count := s.repo.Count
	if trimmed := strings.TrimSpace(lastName); trimmed != "" {
		count = func(ctx context.Context) (int64, error) {
			return s.repo.CountByLastName(ctx, trimmed)
		}
	}

	var total int64
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		n, err := count(txCtx)
		if err != nil {
			return err
		}
		total = n
		return nil
	}); err != nil {
		return 0, err
	}
	return total, nil
}

// FindEmployeeByEmail はメールアドレスで社員を取得します。
func (s *Service) FindEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	trimmed, err := requireParameter("email", email)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByEmail(txCtx, trimmed)
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

// CreateEmployee は社員を作成し、所属部署と合わせたビューを返します。
// 社員の書き込みと部署の解決は並行に行います。書き込み側は自身のトランザクションで完結し、
// 部署の解決だけが失敗した場合は書き込んだ社員を削除して何も残しません。
func (s *Service) CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (*OutgoingEmployee, error) {
	valid, err := ValidateCreate(cmd)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	emp := &Employee{
		ID:           s.newID(),
		GivenName:    valid.GivenName,
		LastName:     valid.LastName,
		Email:        valid.Email,
		DepartmentID: valid.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *Employee
	// どちらの分岐も他方を待つ間にコネクションを保持しない。
	_, dept, err := joinBoth(ctx,
		func(c context.Context) (*Employee, error) {
			var inserted *Employee
			if err := s.tx.WithinReadWrite(c, func(txCtx context.Context) error {
				result, err := s.repo.Create(txCtx, emp)
				if err != nil {
					return err
				}
				inserted = result
				return nil
			}); err != nil {
				return nil, err
			}
			created = inserted
			return inserted, nil
		},
		func(c context.Context) (*department.Department, error) {
			return s.departments.FindByName(c, valid.Department)
		},
	)
	if err != nil {
		if created != nil {
			if discardErr := s.discard(ctx, created.ID); discardErr != nil {
				return nil, errors.Join(err, discardErr)
			}
		}
		return nil, err
	}

	view := BuildView(created, dept)
	return &view, nil
}

// discard は部署の解決に失敗した作成済みの社員を取り消します。
func (s *Service) discard(ctx context.Context, id string) error {
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		_, err := s.repo.Delete(txCtx, id)
		return err
	}); err != nil {
		return fmt.Errorf("employee: discard %s: %w", id, err)
	}
	return nil
}

// UpdateEmployee は社員情報を置き換え、所属部署と合わせたビューを返します。
// 社員が存在しない場合は部署の解決結果に関わらず NotFound を返します。
func (s *Service) UpdateEmployee(ctx context.Context, cmd UpdateEmployeeCommand) (*OutgoingEmployee, error) {
	valid, err := ValidateUpdate(cmd)
	if err != nil {
		return nil, err
	}

	existing, dept, err := joinBoth(ctx,
		func(c context.Context) (*Employee, error) {
			return s.repo.FindByID(c, valid.ID)
		},
		func(c context.Context) (*department.Department, error) {
			return s.departments.FindByName(c, valid.Department)
		},
	)
	if err != nil {
		return nil, err
	}

	existing.apply(valid, s.clock.Now())

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	view := BuildView(updated, dept)
	return &view, nil
}

// DeleteEmployee は社員を削除します。存在しない ID の削除も成功として扱います。
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	trimmed, err := requireParameter("employeeId", id)
	if err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		_, err := s.repo.Delete(txCtx, trimmed)
		return err
	})
}

var _ UseCase = (*Service)(nil)
