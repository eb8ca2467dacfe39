package handlers

import (
	"github.com/gin-gonic/gin"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/address"
	"basekit/internal/domain/lifecycle"
	"basekit/internal/infrastructure/http/v1/dto"
)

// AddressHandler handles address CRUD and lifecycle endpoints.
type AddressHandler struct {
	*BaseHandler
	service *address.Service
}

// NewAddressHandler creates an address handler.
func NewAddressHandler(base *BaseHandler, service *address.Service) *AddressHandler {
	return &AddressHandler{BaseHandler: base, service: service}
}

// RegisterRoutes attaches address endpoints to the group.
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/restore", h.Restore)
	rg.GET("/:id/history", h.History)
}

// Create inserts a new address.
// POST /api/v1/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := address.New(nil)
	req.Apply(a)

	if req.OwnerType != nil && req.OwnerID != nil {
		ownerID, err := id.Parse(*req.OwnerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid ownerId"))
			return
		}
		a.Ref = entity.Ref{ContentType: req.OwnerType, ObjectID: &ownerID}
	}

	if err := h.service.Create(c.Request.Context(), a); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, a.ID)
}

// List returns active addresses.
// GET /api/v1/addresses
func (h *AddressHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter())
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

// Get returns one address regardless of deletion state.
// GET /api/v1/addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAddress(a))
}

// Update applies field changes and records one history entry for them.
// PUT /api/v1/addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddressPayload
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	a, err := h.service.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(a)
	if err := h.service.Save(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAddress(a))
}

// Delete soft-deletes the address, cascading to related objects unless
// ?cascade=false.
// DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	a, err := h.service.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Delete(ctx, a, cascadeOptions(c)...); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Restore brings a soft-deleted address back to the active view.
// POST /api/v1/addresses/:id/restore
func (h *AddressHandler) Restore(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	a, err := h.service.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Restore(ctx, a, cascadeOptions(c)...); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAddress(a))
}

// History returns the audit trail of one address, newest first.
// GET /api/v1/addresses/:id/history
func (h *AddressHandler) History(c *gin.Context) {
	addressID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	a, err := h.service.Get(ctx, addressID)
	if err != nil {
		h.Error(c, err)
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	records, err := h.service.History(ctx, a, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromHistoryRecords(records))
}

// cascadeOptions reads the ?cascade query parameter. Cascade defaults on.
func cascadeOptions(c *gin.Context) []lifecycle.Option {
	if c.Query("cascade") == "false" {
		return []lifecycle.Option{lifecycle.WithoutCascade()}
	}
	return nil
}
