package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/stargate-service/internal/api/http"
	"github.com/spec-kit/stargate-service/internal/api/http/handlers"
	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/observability"
	"github.com/spec-kit/stargate-service/internal/persistence"
	"github.com/spec-kit/stargate-service/internal/repository"
	"github.com/spec-kit/stargate-service/internal/repository/sqlite"
	"github.com/spec-kit/stargate-service/internal/service"
)

var fixedNow = time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)

type testServer struct {
	app     *fiber.App
	store   repository.Store
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, persistence.RunSQLiteMigrations(ctx, db, zap.NewNop()))

	store := sqlite.NewStore(db)
	logger := zap.NewNop()
	audit := observability.NewAuditLogger(logger, store.Repositories().Logs, "info")
	metrics := observability.NewMetrics()
	memCache := cache.NewMemory()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewEventSubscribers(dispatcher, memCache, metrics, logger).RegisterHandlers()

	clock := func() time.Time { return fixedNow }
	people := service.NewPersonService(service.PersonDependencies{
		Store: store, Cache: memCache, Dispatcher: dispatcher, Logger: logger, Clock: clock,
	})
	duties := service.NewDutyService(service.DutyDependencies{
		Store: store, Cache: memCache, Dispatcher: dispatcher, Logger: logger,
		NameMatching: domain.NameMatchingExact, Clock: clock,
	})

	app := httptransport.NewApp("stargate-test")
	httptransport.RegisterMiddlewares(app, logger, audit, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler("stargate-test", "test", store, nil),
		People:  handlers.NewPersonHandler(people, audit),
		Duties:  handlers.NewDutyHandler(duties, audit),
		Metrics: metrics.Handler(),
	})
	app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })

	return &testServer{app: app, store: store, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func (s *testServer) logMessages(t *testing.T) []string {
	t.Helper()
	entries, err := s.store.Repositories().Logs.ListRecent(context.Background(), 100)
	require.NoError(t, err)
	messages := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, e.Message)
	}
	return messages
}

func TestGetPeopleReturnsSeededRoster(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/GetPeople", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 200, body["responseCode"])

	people, ok := body["people"].([]any)
	require.True(t, ok)
	require.Len(t, people, 2)
	first := people[0].(map[string]any)
	assert.Equal(t, "John Doe", first["name"])
	assert.Equal(t, "1LT", first["currentRank"])
	assert.Equal(t, "Commander", first["currentDutyTitle"])

	assert.Contains(t, s.logMessages(t), "Successful retrieval of all people!")
}

func TestGetPersonByName(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/GetPersonByName/John%20Doe", "")
	require.Equal(t, http.StatusOK, status)
	person := body["person"].(map[string]any)
	assert.Equal(t, "John Doe", person["name"])
	assert.EqualValues(t, 1, person["id"])

	status, body = s.do(t, http.MethodGet, "/api/GetPersonByName/Nobody", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "There was an issue getting Nobody's record. Please contact support.", body["message"])
}

func TestCreateAcceptsJSONStringAndPlainText(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/Create", `"Samantha Carter"`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["id"])

	status, body = s.do(t, http.MethodPost, "/api/Create", `Daniel Jackson`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 4, body["id"])

	assert.Contains(t, s.logMessages(t), "Successful creation of Samantha Carter! You're a proud parent!")
}

func TestCreateRejectsEmptyAndDuplicateNames(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/Create", `""`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad Request", body["message"])
	assert.EqualValues(t, 400, body["responseCode"])

	status, body = s.do(t, http.MethodPost, "/api/Create", `"John Doe"`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Someone with this name already exists in the DB.", body["message"])

	assert.Contains(t, s.logMessages(t),
		"An error occurred while attempting to create a new person. Message: Someone with this name already exists in the DB.")
}

func TestUpdatePersonByName(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/UpdatePersonByName",
		`{"originalName":"Jane Doe","newName":"Vala Mal Doran"}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["id"])

	status, body = s.do(t, http.MethodPost, "/api/UpdatePersonByName",
		`{"originalName":"Jane Doe","newName":"Someone"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "That person does not currently exist in the Database.", body["message"])

	status, body = s.do(t, http.MethodPost, "/api/UpdatePersonByName",
		`{"originalName":"Vala Mal Doran","newName":"John Doe"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Someone with that name already exists in the DB.", body["message"])

	status, _ = s.do(t, http.MethodPost, "/api/UpdatePersonByName", `{"originalName":"","newName":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Contains(t, s.logMessages(t), "Successfully updated Jane Doe to Vala Mal Doran!")
}

func TestAssignAstronautDutyRejectsIncompleteRequests(t *testing.T) {
	s := newTestServer(t)

	for _, payload := range []string{
		`{"rank":"CPT","dutyTitle":"Pilot","dutyStartDate":"2025-06-01"}`,
		`{"name":"John Doe","dutyTitle":"Pilot","dutyStartDate":"2025-06-01"}`,
		`{"name":"John Doe","rank":"CPT","dutyStartDate":"2025-06-01"}`,
		`{"name":"John Doe","rank":"CPT","dutyTitle":"Pilot"}`,
		`{"name":"John Doe","rank":"CPT","dutyTitle":"Pilot","dutyStartDate":"June first"}`,
	} {
		status, body := s.do(t, http.MethodPost, "/api/AssignAstronautDuty", payload)
		assert.Equal(t, http.StatusBadRequest, status, payload)
		assert.Equal(t, false, body["success"], payload)
	}
}

func TestAssignAstronautDutyUnknownPerson(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/AssignAstronautDuty",
		`{"name":"Teal'c","rank":"CPT","dutyTitle":"Pilot","dutyStartDate":"2025-06-01"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Unable to find records for Teal'c. Please contact support.", body["message"])
}

func TestAssignDutyThenReadHistory(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/Create", `"Jack O'Neill"`)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 3, body["id"])

	status, body = s.do(t, http.MethodPost, "/api/AssignAstronautDuty",
		`{"name":"Jack O'Neill","rank":"COL","dutyTitle":"Commander","dutyStartDate":"2024-01-10T08:30:00"}`)
	require.Equal(t, http.StatusOK, status)
	firstDuty := body["id"]

	status, _ = s.do(t, http.MethodPost, "/api/AssignAstronautDuty",
		`{"name":"Jack O'Neill","rank":"GEN","dutyTitle":"RETIRED","dutyStartDate":"2025-02-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodGet, "/api/GetDutiesByNameJack%20O'Neill", "")
	require.Equal(t, http.StatusOK, status)
	duties := body["astronautDuties"].([]any)
	require.Len(t, duties, 2)

	first := duties[0].(map[string]any)
	assert.Equal(t, firstDuty, first["id"])
	assert.Equal(t, "2024-01-10T00:00:00Z", first["dutyStartDate"])
	assert.Equal(t, "2025-01-31T00:00:00Z", first["dutyEndDate"])

	second := duties[1].(map[string]any)
	assert.Equal(t, "RETIRED", second["dutyTitle"])
	assert.Nil(t, second["dutyEndDate"])

	status, body = s.do(t, http.MethodGet, "/api/GetPersonByName/Jack%20O'Neill", "")
	require.Equal(t, http.StatusOK, status)
	person := body["person"].(map[string]any)
	assert.Equal(t, "GEN", person["currentRank"])
	assert.Equal(t, "RETIRED", person["currentDutyTitle"])
	assert.Equal(t, "2025-01-31T00:00:00Z", person["careerEndDate"])

	assert.Contains(t, s.logMessages(t), "Successful assign new duty to Jack O'Neill!")
}

func TestGetDutiesByNameIgnoresCase(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/GetDutiesByNamejohn%20doe", "")
	require.Equal(t, http.StatusOK, status)
	duties := body["astronautDuties"].([]any)
	require.Len(t, duties, 1)
	assert.Equal(t, "Commander", duties[0].(map[string]any)["dutyTitle"])

	assert.Contains(t, s.logMessages(t), "Successfully acquired duty data for john doe!")
}

func TestGetDutiesByNameWithoutDutiesIsEmpty(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/GetDutiesByNameJane%20Doe", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["astronautDuties"])

	status, body = s.do(t, http.MethodGet, "/api/GetDutiesByNameNobody", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "There was an issue getting Nobody's duties. Please contact support.", body["message"])
}

func TestPanicIsRecoveredIntoEnvelope(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 500, body["responseCode"])
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/DoesNotExist", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	_, _ = s.do(t, http.MethodPost, "/api/Create", `"Cameron Mitchell"`)

	status, raw := s.scrape(t)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, raw, "stargate_people_created_total 1")
}

func TestMetricsStayScrapableAfterFailedRequests(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 4; i++ {
		status, _ := s.do(t, http.MethodGet, fmt.Sprintf("/api/GetPersonByName/nobody%d", i), "")
		require.Equal(t, http.StatusInternalServerError, status)
	}
	status, _ := s.do(t, http.MethodGet, "/api/DoesNotExist", "")
	require.Equal(t, http.StatusNotFound, status)

	status, raw := s.scrape(t)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Contains(t, raw,
		`stargate_http_errors_total{code="PERSON_NOT_FOUND",method="GET",path="/api/GetPersonByName/:name?"} 4`)
	assert.NotContains(t, raw, "nobody")

	_, err := s.metrics.Registry().Gather()
	assert.NoError(t, err)
}

func (s *testServer) scrape(t *testing.T) (int, string) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}
