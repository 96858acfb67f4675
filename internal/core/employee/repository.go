package employee

import "context"

// Repository は社員永続化の抽象です。
// 見つからない場合の Find 系は NotFound を返し、Delete は対象なしを false で返します。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Count(ctx context.Context) (int64, error)
	CountByLastName(ctx context.Context, lastName string) (int64, error)
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) (bool, error)
}
