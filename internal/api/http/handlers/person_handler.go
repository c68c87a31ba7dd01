package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/api/dto"
	"github.com/spec-kit/stargate-service/internal/service"
	apperrors "github.com/spec-kit/stargate-service/pkg/util/errorutil"
)

const badRequest = "Bad Request"

// PersonHandler exposes the people endpoints.
type PersonHandler struct {
	people *service.PersonService
	audit  *zap.Logger
}

// NewPersonHandler constructs handler.
func NewPersonHandler(people *service.PersonService, audit *zap.Logger) *PersonHandler {
	return &PersonHandler{people: people, audit: audit}
}

// GetPeople handles GET /api/GetPeople.
func (h *PersonHandler) GetPeople(c *fiber.Ctx) error {
	people, err := h.people.ListPeople(c.UserContext())
	if err != nil {
		return apperrors.WithOperation(err, "retrieve all people")
	}

	h.audit.Info("Successful retrieval of all people!")
	return c.JSON(dto.OK(dto.PeoplePayload{People: dto.NewPeopleResponse(people)}))
}

// GetPersonByName handles GET /api/GetPersonByName/{name}.
func (h *PersonHandler) GetPersonByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if isBlank(name) {
		return apperrors.NewValidationError(badRequest, nil)
	}

	person, err := h.people.GetPersonByName(c.UserContext(), name)
	if err != nil {
		return apperrors.WithOperation(err, "retrieve a person by name")
	}

	h.audit.Info(fmt.Sprintf("Successful retrieval of %s!", name))
	return c.JSON(dto.OK(dto.PersonPayload{Person: dto.NewPersonResponse(person)}))
}

// Create handles POST /api/Create. The body is a JSON string; plain text is accepted too.
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	name := parseNameBody(c.Body())
	if isBlank(name) {
		return apperrors.NewValidationError(badRequest, nil)
	}

	person, err := h.people.CreatePerson(c.UserContext(), name)
	if err != nil {
		return apperrors.WithOperation(err, "create a new person")
	}

	h.audit.Info(fmt.Sprintf("Successful creation of %s! You're a proud parent!", person.Name))
	return c.JSON(dto.OK(dto.IDPayload{ID: person.ID}))
}

// UpdatePersonByName handles POST /api/UpdatePersonByName.
func (h *PersonHandler) UpdatePersonByName(c *fiber.Ctx) error {
	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(badRequest, nil)
	}
	if isBlank(req.OriginalName) || isBlank(req.NewName) {
		return apperrors.NewValidationError(badRequest, nil)
	}

	person, err := h.people.RenamePerson(c.UserContext(), req.OriginalName, req.NewName)
	if err != nil {
		return apperrors.WithOperation(err, "rename a person")
	}

	h.audit.Info(fmt.Sprintf("Successfully updated %s to %s!", req.OriginalName, req.NewName))
	return c.JSON(dto.OK(dto.IDPayload{ID: person.ID}))
}

func parseNameBody(body []byte) string {
	var name string
	if err := json.Unmarshal(body, &name); err == nil {
		return name
	}
	return strings.TrimSpace(string(body))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
