package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/repository"
)

// DutyService coordinates astronaut duty history and assignment.
type DutyService struct {
	store      repository.Store
	cache      cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	matching   domain.NameMatching
	now        func() time.Time
}

// DutyDependencies bundles collaborators for the duty service.
type DutyDependencies struct {
	Store      repository.Store
	Cache      cache.Cache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger

	// NameMatching applies to the assignment lookup. Defaults to exact.
	NameMatching domain.NameMatching
	Clock        func() time.Time
}

// AssignDutyInput describes a duty assignment request.
type AssignDutyInput struct {
	Name          string
	Rank          string
	DutyTitle     string
	DutyStartDate time.Time
}

// NewDutyService constructs the service.
func NewDutyService(deps DutyDependencies) *DutyService {
	s := &DutyService{
		store:      deps.Store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		matching:   deps.NameMatching,
		now:        deps.Clock,
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.dispatcher == nil {
		s.dispatcher = events.NewInMemoryDispatcher()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.matching == "" {
		s.matching = domain.NameMatchingExact
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// NameMatching reports the assignment lookup mode.
func (s *DutyService) NameMatching() domain.NameMatching {
	return s.matching
}

// GetDutiesByName returns a person's duties ordered by start date. The name is compared
// ignoring case, whatever the assignment matching mode. A person without duties yields an empty list.
func (s *DutyService) GetDutiesByName(ctx context.Context, name string) ([]domain.AstronautDuty, error) {
	if name == "" {
		return nil, errBadRequest()
	}

	key := cache.DutiesKey(name)
	var cached []domain.AstronautDuty
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("duties cache read failed", zap.String("name", name), zap.Error(err))
	} else if hit && cached != nil {
		return cached, nil
	}

	repos := s.store.Repositories()
	person, err := repos.People.GetByName(ctx, name, domain.NameMatchingCaseInsensitive)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errDutiesIssue(name)
	}
	if err != nil {
		return nil, err
	}

	duties, err := repos.Duties.ListByPerson(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	if duties == nil {
		duties = []domain.AstronautDuty{}
	}

	if err := s.cache.Set(ctx, key, duties); err != nil {
		s.logger.Warn("duties cache write failed", zap.String("name", name), zap.Error(err))
	}
	return duties, nil
}

// AssignDuty makes a new duty the person's current one and returns it.
func (s *DutyService) AssignDuty(ctx context.Context, input AssignDutyInput) (*domain.AstronautDuty, error) {
	result, err := Run[*assignment](ctx, s.store, &assignAstronautDuty{
		name:          input.Name,
		rank:          input.Rank,
		dutyTitle:     input.DutyTitle,
		dutyStartDate: input.DutyStartDate,
		matching:      s.matching,
	})
	if err != nil {
		return nil, err
	}

	payload := events.DutyAssignedPayload{
		DutyID:        result.duty.ID,
		Rank:          result.duty.Rank,
		DutyTitle:     result.duty.DutyTitle,
		DutyStartDate: result.duty.DutyStartDate,
		Retirement:    result.duty.IsRetirement(),
		CareerEndDate: result.person.CareerEndDate,
	}
	if result.closedDuty != nil {
		closedID := result.closedDuty.ID
		payload.ClosedDutyID = &closedID
	}
	publishEvent(ctx, s.dispatcher, s.logger, s.now, events.Event{
		Type:       events.EventDutyAssigned,
		PersonID:   result.person.ID,
		PersonName: result.person.Name,
		Payload:    payload,
	})
	return result.duty, nil
}
