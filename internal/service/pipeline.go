package service

import (
	"context"

	"github.com/spec-kit/stargate-service/internal/repository"
)

// Command is a validated mutation. Validate runs once, before Execute, against the same transaction.
type Command[R any] interface {
	Validate(ctx context.Context, repos repository.Repositories) error
	Execute(ctx context.Context, repos repository.Repositories) (R, error)
}

// Run executes cmd inside one store transaction. A validation failure aborts before any write.
func Run[R any](ctx context.Context, store repository.Store, cmd Command[R]) (R, error) {
	var result R
	err := store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := cmd.Validate(ctx, repos); err != nil {
			return err
		}
		out, err := cmd.Execute(ctx, repos)
		if err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return result, nil
}
