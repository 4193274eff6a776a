package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recruitbase/assessment-api/internal/assessments/domain"
)

func (h *Handler) list(c *gin.Context) {
	var filter domain.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid filter parameters"})
		return
	}

	if msgs := h.validate.ValidateFilter(filter); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": msgs})
		return
	}

	page, err := h.svc.GetPaged(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	a, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage(id)})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) head(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	exists, err := h.svc.Exists(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) create(c *gin.Context) {
	var in domain.AssessmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if in.Status == "" {
		in.Status = domain.StatusDraft
	}

	if msgs := h.validate.ValidateInput(in); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": msgs})
		return
	}

	a, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/assessments/%d", a.ID))
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	var in domain.AssessmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if in.Status == "" {
		in.Status = domain.StatusDraft
	}

	if msgs := h.validate.ValidateInput(in); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": msgs})
		return
	}

	a, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage(id)})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage(id)})
		return
	}
	c.Status(http.StatusNoContent)
}

// assessmentID parses the :id param and rejects non-positive values with a
// 400 before any handler work happens.
func assessmentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid assessment ID"})
		return 0, false
	}
	return id, true
}

func notFoundMessage(id int) string {
	return fmt.Sprintf("Assessment with ID %d not found", id)
}

// serverError logs the cause and answers with a generic body; the original
// error is never leaked to the client.
func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred"})
}
