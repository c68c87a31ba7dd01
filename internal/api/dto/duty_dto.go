package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/stargate-service/internal/domain"
)

var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// FlexibleTime accepts RFC3339 timestamps, zone-less timestamps and plain dates.
type FlexibleTime struct {
	time.Time
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range acceptedDateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(*raw)); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", *raw)
}

// AssignAstronautDutyRequest payload.
type AssignAstronautDutyRequest struct {
	Name          string       `json:"name"`
	Rank          string       `json:"rank"`
	DutyTitle     string       `json:"dutyTitle"`
	DutyStartDate FlexibleTime `json:"dutyStartDate"`
}

// AstronautDutyResponse is the public shape of a duty.
type AstronautDutyResponse struct {
	ID            int64      `json:"id"`
	PersonID      int64      `json:"personId"`
	Rank          string     `json:"rank"`
	DutyTitle     string     `json:"dutyTitle"`
	DutyStartDate time.Time  `json:"dutyStartDate"`
	DutyEndDate   *time.Time `json:"dutyEndDate"`
}

// DutiesPayload is returned by GET /api/GetDutiesByName.
type DutiesPayload struct {
	AstronautDuties []AstronautDutyResponse `json:"astronautDuties"`
}

// NewDutiesResponse maps a duty list, never returning nil.
func NewDutiesResponse(duties []domain.AstronautDuty) []AstronautDutyResponse {
	resp := make([]AstronautDutyResponse, 0, len(duties))
	for _, d := range duties {
		resp = append(resp, AstronautDutyResponse{
			ID:            d.ID,
			PersonID:      d.PersonID,
			Rank:          d.Rank,
			DutyTitle:     d.DutyTitle,
			DutyStartDate: d.DutyStartDate,
			DutyEndDate:   d.DutyEndDate,
		})
	}
	return resp
}
