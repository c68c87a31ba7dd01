package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/api/dto"
	"github.com/spec-kit/stargate-service/internal/service"
	apperrors "github.com/spec-kit/stargate-service/pkg/util/errorutil"
)

// DutyHandler exposes the astronaut duty endpoints.
type DutyHandler struct {
	duties *service.DutyService
	audit  *zap.Logger
}

// NewDutyHandler constructs handler.
func NewDutyHandler(duties *service.DutyService, audit *zap.Logger) *DutyHandler {
	return &DutyHandler{duties: duties, audit: audit}
}

// GetDutiesByName handles GET /api/GetDutiesByName{name}.
func (h *DutyHandler) GetDutiesByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if isBlank(name) {
		return apperrors.NewValidationError(badRequest, nil)
	}

	duties, err := h.duties.GetDutiesByName(c.UserContext(), name)
	if err != nil {
		return apperrors.WithOperation(err, "retrieve duties for someone")
	}

	h.audit.Info(fmt.Sprintf("Successfully acquired duty data for %s!", name))
	return c.JSON(dto.OK(dto.DutiesPayload{AstronautDuties: dto.NewDutiesResponse(duties)}))
}

// AssignAstronautDuty handles POST /api/AssignAstronautDuty and returns the new duty id.
func (h *DutyHandler) AssignAstronautDuty(c *fiber.Ctx) error {
	var req dto.AssignAstronautDutyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(badRequest, nil)
	}
	if isBlank(req.Name) || isBlank(req.Rank) || isBlank(req.DutyTitle) || req.DutyStartDate.IsZero() {
		return apperrors.NewValidationError(badRequest, nil)
	}

	duty, err := h.duties.AssignDuty(c.UserContext(), service.AssignDutyInput{
		Name:          req.Name,
		Rank:          req.Rank,
		DutyTitle:     req.DutyTitle,
		DutyStartDate: req.DutyStartDate.Time,
	})
	if err != nil {
		return apperrors.WithOperation(err, "assign a new astronaut duty")
	}

	h.audit.Info(fmt.Sprintf("Successful assign new duty to %s!", req.Name))
	return c.JSON(dto.OK(dto.IDPayload{ID: duty.ID}))
}
