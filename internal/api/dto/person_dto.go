package dto

import (
	"time"

	"github.com/spec-kit/stargate-service/internal/domain"
)

// UpdatePersonRequest payload for renaming.
type UpdatePersonRequest struct {
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
}

// PersonResponse is the public shape of a person.
type PersonResponse struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	CurrentRank      string     `json:"currentRank"`
	CurrentDutyTitle string     `json:"currentDutyTitle"`
	CareerStartDate  *time.Time `json:"careerStartDate"`
	CareerEndDate    *time.Time `json:"careerEndDate"`
}

// PeoplePayload is returned by GET /api/GetPeople.
type PeoplePayload struct {
	People []PersonResponse `json:"people"`
}

// PersonPayload is returned by GET /api/GetPersonByName.
type PersonPayload struct {
	Person *PersonResponse `json:"person"`
}

// IDPayload is returned by the mutation endpoints.
type IDPayload struct {
	ID int64 `json:"id"`
}

// NewPersonResponse maps a domain person.
func NewPersonResponse(p *domain.Person) *PersonResponse {
	if p == nil {
		return nil
	}
	return &PersonResponse{
		ID:               p.ID,
		Name:             p.Name,
		CurrentRank:      p.CurrentRank,
		CurrentDutyTitle: p.CurrentDutyTitle,
		CareerStartDate:  p.CareerStartDate,
		CareerEndDate:    p.CareerEndDate,
	}
}

// NewPeopleResponse maps a list, never returning nil.
func NewPeopleResponse(people []domain.Person) []PersonResponse {
	resp := make([]PersonResponse, 0, len(people))
	for i := range people {
		resp = append(resp, *NewPersonResponse(&people[i]))
	}
	return resp
}
