package department

import "context"

// Repository は部署永続化の抽象です。
type Repository interface {
	FindByName(ctx context.Context, name string) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
}
