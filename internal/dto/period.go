package dto

import "time"

// CreatePeriodRequest is the payload of POST /periods.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=64"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}
