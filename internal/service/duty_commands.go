package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

// assignment is the outcome of an assignAstronautDuty command.
type assignment struct {
	person     *domain.Person
	duty       *domain.AstronautDuty
	closedDuty *domain.AstronautDuty
}

// assignAstronautDuty makes a new duty the person's current one.
type assignAstronautDuty struct {
	name          string
	rank          string
	dutyTitle     string
	dutyStartDate time.Time
	matching      domain.NameMatching
	person        *domain.Person
}

func (c *assignAstronautDuty) Validate(ctx context.Context, repos repository.Repositories) error {
	if c.name == "" {
		return errBadRequest()
	}
	person, err := repos.People.GetByName(ctx, c.name, c.matching)
	if errors.Is(err, repository.ErrNotFound) {
		return errNoRecords(c.name)
	}
	if err != nil {
		return err
	}
	c.person = person
	return nil
}

// Execute applies the assignment in order: person rank/title, retirement, closing the open duty,
// then inserting the new one. The previous duty ends the day before the new one starts.
func (c *assignAstronautDuty) Execute(ctx context.Context, repos repository.Repositories) (*assignment, error) {
	person := c.person
	start := domain.DateOnly(c.dutyStartDate)
	dayBefore := domain.DayBefore(start)

	duty := &domain.AstronautDuty{
		PersonID:      person.ID,
		Rank:          c.rank,
		DutyTitle:     c.dutyTitle,
		DutyStartDate: start,
	}

	person.CurrentRank = c.rank
	person.CurrentDutyTitle = c.dutyTitle
	if duty.IsRetirement() {
		careerEnd := dayBefore
		person.CareerEndDate = &careerEnd
	}
	if err := repos.People.Update(ctx, person); err != nil {
		return nil, err
	}

	result := &assignment{person: person}

	open, err := repos.Duties.GetOpenByPerson(ctx, person.ID)
	switch {
	case err == nil:
		end := dayBefore
		open.DutyEndDate = &end
		if err := repos.Duties.Update(ctx, open); err != nil {
			return nil, err
		}
		result.closedDuty = open
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if err := repos.Duties.Create(ctx, duty); err != nil {
		return nil, err
	}
	result.duty = duty
	return result, nil
}
