package http

import (
	"go.uber.org/zap"

	"github.com/recruitbase/assessment-api/internal/assessments/service"
	"github.com/recruitbase/assessment-api/internal/assessments/validator"
)

// Handler bundles the dependencies for assessment HTTP endpoints.
type Handler struct {
	svc      *service.AssessmentService
	validate *validator.Validator
	log      *zap.Logger
}

func New(svc *service.AssessmentService, validate *validator.Validator, log *zap.Logger) *Handler {
	return &Handler{svc: svc, validate: validate, log: log}
}
