package employee

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// joinBoth は primary と secondary を並行に実行し、両方の完了を待ちます。
// 片方の失敗で他方を打ち切ることはありません。両方が失敗した場合は primary の失敗を返します。
func joinBoth[A, B any](
	ctx context.Context,
	primary func(context.Context) (A, error),
	secondary func(context.Context) (B, error),
) (A, B, error) {
	var (
		a          A
		b          B
		primaryErr error
		secondErr  error
		g          errgroup.Group
	)

	g.Go(func() error {
		a, primaryErr = primary(ctx)
		return nil
	})
	g.Go(func() error {
		b, secondErr = secondary(ctx)
		return nil
	})
	_ = g.Wait()

	var zeroA A
	var zeroB B
	if primaryErr != nil {
		return zeroA, zeroB, primaryErr
	}
	if secondErr != nil {
		return zeroA, zeroB, secondErr
	}
	return a, b, nil
}
