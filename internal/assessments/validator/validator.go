package validator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/recruitbase/assessment-api/internal/assessments/domain"
)

// Validator checks create/update inputs and filter specifications before
// they reach the service. It is pure: a failed check is reported as an
// ordered list of field messages and nothing else happens.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now())
	})

	return &Validator{v: v}
}

// ValidateInput applies the shared create/update rule set.
func (c *Validator) ValidateInput(in domain.AssessmentInput) []string {
	var msgs []string
	if err := c.v.Struct(in); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, inputMessages[fe.StructField()+":"+fe.Tag()])
		}
	}
	return msgs
}

// ValidateFilter applies the filter/paging rule set.
func (c *Validator) ValidateFilter(f domain.Filter) []string {
	var msgs []string
	if err := c.v.Struct(&filterRules{
		PageNumber: f.PageNumber,
		PageSize:   f.PageSize,
		MinBudget:  f.MinBudget,
		Status:     f.Status,
	}); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, filterMessages[fe.StructField()+":"+fe.Tag()])
		}
	}
	if f.MinBudget != nil && f.MaxBudget != nil && *f.MaxBudget < *f.MinBudget {
		msgs = append(msgs, "Maximum budget must be greater than or equal to minimum budget")
	}
	return msgs
}

// filterRules narrows domain.Filter to the fields with tag-expressible
// rules; the max-budget cross check is done by hand above.
type filterRules struct {
	PageNumber int            `validate:"gt=0"`
	PageSize   int            `validate:"gt=0,lte=100"`
	MinBudget  *float64       `validate:"omitempty,gte=0"`
	Status     *domain.Status `validate:"omitempty,status"`
}

var inputMessages = map[string]string{
	"Title:required":         "Title is required",
	"Title:max":              "Title cannot exceed 100 characters",
	"Description:required":   "Description is required",
	"Description:max":        "Description cannot exceed 1000 characters",
	"Location:required":      "Location is required",
	"Location:max":           "Location cannot exceed 200 characters",
	"Status:status":          "Invalid status value",
	"RecruiterID:gt":         "RecruiterId must be greater than 0",
	"DepartmentID:gt":        "DepartmentId must be greater than 0",
	"Budget:gt":              "Budget must be greater than 0",
	"ClosingDate:futuredate": "Closing date must be in the future",
}

var filterMessages = map[string]string{
	"Status:status": "Invalid status value",
	"MinBudget:gte": "Minimum budget must be greater than or equal to 0",
	"PageNumber:gt": "Page number must be greater than 0",
	"PageSize:gt":   "Page size must be greater than 0",
	"PageSize:lte":  "Page size cannot exceed 100",
}
