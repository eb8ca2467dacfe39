package dto

import (
	"basekit/internal/domain/history"
)

// HistoryResponse is the API representation of one audit record.
type HistoryResponse struct {
	EnvelopeResponse

	ActorID     *string `json:"actorId,omitempty"`
	Description string  `json:"description"`
	SubjectType *string `json:"subjectType,omitempty"`
	SubjectID   *string `json:"subjectId,omitempty"`
}

// FromHistory creates HistoryResponse from a history record.
func FromHistory(rec *history.Record) HistoryResponse {
	resp := HistoryResponse{
		EnvelopeResponse: FromEnvelope(rec.ID, rec.Lifecycle),
		Description:      rec.Description,
		SubjectType:      rec.ContentType,
	}
	if rec.ActorID != nil {
		aid := rec.ActorID.String()
		resp.ActorID = &aid
	}
	if rec.ObjectID != nil {
		sid := rec.ObjectID.String()
		resp.SubjectID = &sid
	}
	return resp
}

// FromHistoryRecords maps a slice of records.
func FromHistoryRecords(items []*history.Record) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, FromHistory(rec))
	}
	return out
}
