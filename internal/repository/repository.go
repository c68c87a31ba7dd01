package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/stargate-service/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a write violates person name uniqueness.
	ErrDuplicateName = errors.New("person name already exists")
)

// PersonRepository defines persistence access for roster members.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) error
	Update(ctx context.Context, person *domain.Person) error
	GetByName(ctx context.Context, name string, matching domain.NameMatching) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
	Delete(ctx context.Context, id int64) error
}

// DutyRepository defines persistence access for astronaut duties.
type DutyRepository interface {
	Create(ctx context.Context, duty *domain.AstronautDuty) error
	Update(ctx context.Context, duty *domain.AstronautDuty) error
	GetOpenByPerson(ctx context.Context, personID int64) (*domain.AstronautDuty, error)
	ListByPerson(ctx context.Context, personID int64) ([]domain.AstronautDuty, error)
}

// LogRepository stores operator log entries.
type LogRepository interface {
	Append(ctx context.Context, entry *domain.LogEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.LogEntry, error)
}

// Repositories bundles the repositories bound to one connection or transaction.
type Repositories struct {
	People PersonRepository
	Duties DutyRepository
	Logs   LogRepository
}

// TxFunc runs against transaction-scoped repositories.
type TxFunc func(ctx context.Context, repos Repositories) error

// Store is a record store backend.
type Store interface {
	// Repositories returns repositories running outside any transaction.
	Repositories() Repositories
	// InTx commits only when fn returns nil.
	InTx(ctx context.Context, fn TxFunc) error
	Ping(ctx context.Context) error
}
