package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

// createPerson adds a roster member with no rank, title or duties.
type createPerson struct {
	name string
	now  time.Time
}

func (c *createPerson) Validate(ctx context.Context, repos repository.Repositories) error {
	if c.name == "" {
		return errBadRequest()
	}
	_, err := repos.People.GetByName(ctx, c.name, domain.NameMatchingExact)
	switch {
	case err == nil:
		return errDuplicateName()
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (c *createPerson) Execute(ctx context.Context, repos repository.Repositories) (*domain.Person, error) {
	start := c.now.UTC()
	person := &domain.Person{
		Name:            c.name,
		CareerStartDate: &start,
	}
	if err := repos.People.Create(ctx, person); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, errDuplicateName()
		}
		return nil, err
	}
	return person, nil
}

// renamePerson changes a name, keeping names unique.
type renamePerson struct {
	originalName string
	newName      string
	person       *domain.Person
}

func (c *renamePerson) Validate(ctx context.Context, repos repository.Repositories) error {
	if c.originalName == "" || c.newName == "" {
		return errBadRequest()
	}

	person, err := repos.People.GetByName(ctx, c.originalName, domain.NameMatchingExact)
	if errors.Is(err, repository.ErrNotFound) {
		return errPersonMissing()
	}
	if err != nil {
		return err
	}

	_, err = repos.People.GetByName(ctx, c.newName, domain.NameMatchingExact)
	switch {
	case err == nil:
		return errNameTaken()
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	c.person = person
	return nil
}

func (c *renamePerson) Execute(ctx context.Context, repos repository.Repositories) (*domain.Person, error) {
	c.person.Name = c.newName
	if err := repos.People.Update(ctx, c.person); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, errNameTaken()
		}
		return nil, err
	}
	return c.person, nil
}
