package handlers

import (
	"github.com/gin-gonic/gin"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/address"
	"basekit/internal/infrastructure/http/v1/dto"
)

// TrashHandler exposes the administrative deleted view: listing
// soft-deleted rows, bulk restore and physical removal.
type TrashHandler struct {
	*BaseHandler
	addresses *address.Service
}

// NewTrashHandler creates a trash handler.
func NewTrashHandler(base *BaseHandler, addresses *address.Service) *TrashHandler {
	return &TrashHandler{BaseHandler: base, addresses: addresses}
}

// RegisterRoutes attaches trash endpoints to the group.
func (h *TrashHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/addresses", h.ListAddresses)
	rg.POST("/addresses/restore", h.RestoreByOwner)
	rg.POST("/addresses/:id/restore", h.RestoreAddress)
	rg.DELETE("/addresses/:id", h.PurgeAddress)
}

// ListAddresses returns soft-deleted addresses.
// GET /api/v1/trash/addresses
func (h *TrashHandler) ListAddresses(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.addresses.ListDeleted(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromAddresses(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RestoreByOwner bulk-restores every deleted address of one owner in a
// single UPDATE. No cascade, no history.
// POST /api/v1/trash/addresses/restore?ownerType=...&ownerId=...
func (h *TrashHandler) RestoreByOwner(c *gin.Context) {
	ownerType := c.Query("ownerType")
	ownerIDStr := c.Query("ownerId")
	if ownerType == "" || ownerIDStr == "" {
		h.Error(c, apperror.NewValidation("ownerType and ownerId are required"))
		return
	}

	ownerID, err := id.Parse(ownerIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ownerId"))
		return
	}

	owner := entity.Ref{ContentType: &ownerType, ObjectID: &ownerID}
	restored, err := h.addresses.RestoreByOwner(c.Request.Context(), owner)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.RestoredResponse{Restored: restored})
}

// RestoreAddress restores one address through the lifecycle engine
// (cascades, unlike the bulk form).
// POST /api/v1/trash/addresses/:id/restore
func (h *TrashHandler) RestoreAddress(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	a, err := h.addresses.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.addresses.Restore(ctx, a, cascadeOptions(c)...); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAddress(a))
}

// PurgeAddress physically removes the row. Irreversible; bypasses
// cascade, hooks and history.
// DELETE /api/v1/trash/addresses/:id
func (h *TrashHandler) PurgeAddress(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	a, err := h.addresses.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.addresses.HardDelete(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
