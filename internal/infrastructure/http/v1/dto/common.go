// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain"
)

// --- List query ---

// ListQuery contains common list parameters.
type ListQuery struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query into a domain list filter with defaults.
func (q ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	if q.Offset > 0 {
		f.Offset = q.Offset
	}
	return f
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// EnvelopeResponse contains the lifecycle fields shared by all entities.
type EnvelopeResponse struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// FromEnvelope creates EnvelopeResponse from an entity base.
func FromEnvelope(entityID id.ID, env entity.Lifecycle) EnvelopeResponse {
	return EnvelopeResponse{
		ID:        entityID.String(),
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		IsDeleted: env.IsDeleted,
		DeletedAt: env.DeletedAt,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RestoredResponse reports how many rows a bulk restore touched.
type RestoredResponse struct {
	Restored int64 `json:"restored"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
