package domain

import "time"

// Status is the lifecycle state of an assessment.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusOpen      Status = "Open"
	StatusClosed    Status = "Closed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is a recognized status value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// Assessment represents a single job posting record.
// It is storage-agnostic and used across repository, service and HTTP layers.
type Assessment struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	Status       Status     `json:"status"`
	RecruiterID  int        `json:"recruiterId"`
	DepartmentID int        `json:"departmentId"`
	Budget       float64    `json:"budget"`
	ClosingDate  *time.Time `json:"closingDate"`
	CreatedDate  time.Time  `json:"createdDate"`
	UpdatedDate  time.Time  `json:"updatedDate"`
}

// AssessmentInput carries the caller-supplied fields of a create or update
// request. ID and timestamps are never part of it; the service stamps those.
type AssessmentInput struct {
	Title        string     `json:"title" validate:"required,max=100"`
	Description  string     `json:"description" validate:"required,max=1000"`
	Location     string     `json:"location" validate:"required,max=200"`
	Status       Status     `json:"status" validate:"status"`
	RecruiterID  int        `json:"recruiterId" validate:"gt=0"`
	DepartmentID int        `json:"departmentId" validate:"gt=0"`
	Budget       float64    `json:"budget" validate:"gt=0"`
	ClosingDate  *time.Time `json:"closingDate" validate:"omitempty,futuredate"`
}

// Apply overlays every input field onto a. ID and CreatedDate are untouched.
func (in AssessmentInput) Apply(a *Assessment) {
	a.Title = in.Title
	a.Description = in.Description
	a.Location = in.Location
	a.Status = in.Status
	a.RecruiterID = in.RecruiterID
	a.DepartmentID = in.DepartmentID
	a.Budget = in.Budget
	a.ClosingDate = in.ClosingDate
}
