package service_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/service"
	apperrors "github.com/spec-kit/stargate-service/pkg/util/errorutil"
)

func TestCreatePersonThenFetch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	created, err := f.people.CreatePerson(ctx, "Ex1")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := f.people.GetPersonByName(ctx, "Ex1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.CareerStartDate)
	assert.True(t, fixedNow.Equal(*got.CareerStartDate))
	assert.Nil(t, got.CareerEndDate)
	assert.Empty(t, got.CurrentRank)
	assert.Empty(t, got.CurrentDutyTitle)

	duties, err := f.duties.GetDutiesByName(ctx, "Ex1")
	require.NoError(t, err)
	assert.Empty(t, duties)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PeopleCreated))
}

func TestCreatePersonRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	_, err := f.people.CreatePerson(ctx, "John Doe")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, service.CodeDuplicateName))
	assert.Equal(t, "Someone with this name already exists in the DB.", apperrors.ToDomainError(err).Message)

	all, err := f.people.ListPeople(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreatePersonNameComparisonIsCaseSensitive(t *testing.T) {
	f := newFixture(t, domain.NameMatchingCaseInsensitive)

	_, err := f.people.CreatePerson(context.Background(), "john doe")
	assert.NoError(t, err)
}

func TestCreatePersonRejectsEmptyName(t *testing.T) {
	f := newFixture(t, domain.NameMatchingExact)

	_, err := f.people.CreatePerson(context.Background(), "")
	assert.True(t, apperrors.IsCode(err, service.CodeBadRequest))
}

func TestGetPersonByNameFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	_, err := f.people.GetPersonByName(ctx, "")
	assert.True(t, apperrors.IsCode(err, service.CodeBadRequest))

	_, err = f.people.GetPersonByName(ctx, "Nobody")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, service.CodePersonNotFound))
	assert.Equal(t, "There was an issue getting Nobody's record. Please contact support.", err.Error())
}

func TestListPeopleIncludesSeed(t *testing.T) {
	f := newFixture(t, domain.NameMatchingExact)

	people, err := f.people.ListPeople(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "John Doe", people[0].Name)
	assert.Equal(t, "Jane Doe", people[1].Name)
}

func TestRenamePerson(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	jane, err := f.people.GetPersonByName(ctx, "Jane Doe")
	require.NoError(t, err)
	require.True(t, f.cache.Has(cache.PersonKey("Jane Doe")))

	renamed, err := f.people.RenamePerson(ctx, "Jane Doe", "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, renamed.ID)
	assert.False(t, f.cache.Has(cache.PersonKey("Jane Doe")))

	_, err = f.people.GetPersonByName(ctx, "Jane Doe")
	assert.True(t, apperrors.IsCode(err, service.CodePersonNotFound))

	got, err := f.people.GetPersonByName(ctx, "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.ID)
}

func TestRenamePersonToTakenNameLeavesBothRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	_, err := f.people.RenamePerson(ctx, "Jane Doe", "John Doe")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, service.CodeDuplicateName))
	assert.Equal(t, "Someone with that name already exists in the DB.", err.Error())

	john, err := f.people.GetPersonByName(ctx, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, int64(1), john.ID)
	jane, err := f.people.GetPersonByName(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, int64(2), jane.ID)
}

func TestRenamePersonValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NameMatchingExact)

	_, err := f.people.RenamePerson(ctx, "", "X")
	assert.True(t, apperrors.IsCode(err, service.CodeBadRequest))

	_, err = f.people.RenamePerson(ctx, "Nobody", "Somebody")
	require.Error(t, err)
	assert.Equal(t, "That person does not currently exist in the Database.", err.Error())
}
