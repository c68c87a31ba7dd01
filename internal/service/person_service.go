package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/repository"
)

// PersonService coordinates roster member reads and writes.
type PersonService struct {
	store      repository.Store
	cache      cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// PersonDependencies bundles collaborators for the person service.
type PersonDependencies struct {
	Store      repository.Store
	Cache      cache.Cache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewPersonService constructs the service.
func NewPersonService(deps PersonDependencies) *PersonService {
	s := &PersonService{
		store:      deps.Store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
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
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ListPeople returns every person, unfiltered.
func (s *PersonService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	return s.store.Repositories().People.List(ctx)
}

// GetPersonByName looks a person up by exact name.
func (s *PersonService) GetPersonByName(ctx context.Context, name string) (*domain.Person, error) {
	if name == "" {
		return nil, errBadRequest()
	}

	var cached domain.Person
	if hit, err := s.cache.Get(ctx, cache.PersonKey(name), &cached); err != nil {
		s.logger.Warn("person cache read failed", zap.String("name", name), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	person, err := s.store.Repositories().People.GetByName(ctx, name, domain.NameMatchingExact)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errRecordIssue(name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.PersonKey(name), person); err != nil {
		s.logger.Warn("person cache write failed", zap.String("name", name), zap.Error(err))
	}
	return person, nil
}

// CreatePerson adds a person whose career starts now and returns it.
func (s *PersonService) CreatePerson(ctx context.Context, name string) (*domain.Person, error) {
	person, err := Run[*domain.Person](ctx, s.store, &createPerson{name: name, now: s.now()})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventPersonCreated,
		PersonID:   person.ID,
		PersonName: person.Name,
	})
	return person, nil
}

// RenamePerson renames originalName to newName and returns the updated person.
func (s *PersonService) RenamePerson(ctx context.Context, originalName, newName string) (*domain.Person, error) {
	person, err := Run[*domain.Person](ctx, s.store, &renamePerson{originalName: originalName, newName: newName})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventPersonRenamed,
		PersonID:   person.ID,
		PersonName: person.Name,
		Payload: events.PersonRenamedPayload{
			OriginalName: originalName,
			NewName:      newName,
		},
	})
	return person, nil
}

func (s *PersonService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, s.now, event)
}

// publishEvent stamps and dispatches a post-commit event. Subscriber failures never undo the command.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time, event events.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now().UTC()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("person_id", event.PersonID),
			zap.Error(err))
	}
}
