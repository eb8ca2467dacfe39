package handlers

import (
	"github.com/gin-gonic/gin"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/domain/history"
	"basekit/internal/infrastructure/http/v1/dto"
)

// HistoryHandler exposes the read-only audit trail.
type HistoryHandler struct {
	*BaseHandler
	repo     history.Repository
	registry *entity.Registry
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(base *BaseHandler, repo history.Repository, registry *entity.Registry) *HistoryHandler {
	return &HistoryHandler{BaseHandler: base, repo: repo, registry: registry}
}

// RegisterRoutes attaches history endpoints to the group.
func (h *HistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:type/:id", h.ListBySubject)
	rg.GET("/:type/:id/subject", h.Subject)
}

// List returns records across all subjects, newest first.
// GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	records, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromHistoryRecords(records))
}

// ListBySubject returns the audit trail of one entity, newest first.
// GET /api/v1/history/:type/:id
func (h *HistoryHandler) ListBySubject(c *gin.Context) {
	subjectType := c.Param("type")
	if subjectType == "" {
		h.Error(c, apperror.NewValidation("subject type is required"))
		return
	}
	subjectID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	subject := entity.Ref{ContentType: &subjectType, ObjectID: &subjectID}
	records, err := h.repo.ListBySubject(c.Request.Context(), subject, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromHistoryRecords(records))
}

// Subject resolves the entity a history trail belongs to. Unknown types
// and missing rows return a null subject, not an error.
// GET /api/v1/history/:type/:id/subject
func (h *HistoryHandler) Subject(c *gin.Context) {
	subjectType := c.Param("type")
	subjectID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ref := entity.Ref{ContentType: &subjectType, ObjectID: &subjectID}
	subject, err := h.registry.Resolve(c.Request.Context(), ref)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"subject": subject})
}
