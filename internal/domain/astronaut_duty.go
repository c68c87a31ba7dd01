package domain

import "time"

// RetiredDutyTitle marks the assignment that ends a career.
const RetiredDutyTitle = "RETIRED"

// AstronautDuty is one entry of a person's duty history.
type AstronautDuty struct {
	ID            int64
	PersonID      int64
	Rank          string
	DutyTitle     string
	DutyStartDate time.Time
	DutyEndDate   *time.Time
}

// IsRetirement reports whether the duty carries the RETIRED sentinel title.
func (d *AstronautDuty) IsRetirement() bool {
	return d.DutyTitle == RetiredDutyTitle
}
