package domain

import "time"

// Person is a roster member. CurrentRank and CurrentDutyTitle mirror the most recent duty.
type Person struct {
	ID               int64
	Name             string
	CurrentRank      string
	CurrentDutyTitle string
	CareerStartDate  *time.Time
	CareerEndDate    *time.Time
}
