package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"basekit/internal/core/entity"
	"basekit/internal/domain/history"
)

// compressionAlgo specifies the compression algorithm used for a stored
// description.
type compressionAlgo string

const (
	compressionNone compressionAlgo = "none"
	compressionZstd compressionAlgo = "zstd"
)

// Compile-time check that HistoryRepo implements history.Repository.
var _ history.Repository = (*HistoryRepo)(nil)

// HistoryRepo is the append-only store for audit records. Descriptions
// over the threshold are zstd-compressed at rest and decompressed
// transparently on read.
//
// There are no update or delete methods; history is immutable.
type HistoryRepo struct {
	txm               *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewHistoryRepo creates the history repository.
func NewHistoryRepo(txm *TxManager) (*HistoryRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &HistoryRepo{
		txm:               txm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// Append inserts a new history record.
func (r *HistoryRepo) Append(ctx context.Context, rec *history.Record) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}
	rec.Envelope().StampSave(time.Now().UTC())

	description := rec.Description
	var compressed []byte
	algo := compressionNone
	if len(description) > r.compressThreshold {
		compressed = r.encoder.EncodeAll([]byte(description), nil)
		description = ""
		algo = compressionZstd
	}

	sql := `
		INSERT INTO historics (
			id, created_at, updated_at, is_deleted, deleted_at,
			actor_id, description, description_compressed, compression_algo,
			content_type, object_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.txm.GetQuerier(ctx).Exec(ctx, sql,
		rec.ID, rec.CreatedAt, rec.UpdatedAt, rec.IsDeleted, rec.DeletedAt,
		rec.ActorID, description, compressed, algo,
		rec.ContentType, rec.ObjectID,
	)
	if err != nil {
		return fmt.Errorf("insert historic: %w", err)
	}
	return nil
}

// ListBySubject returns records attached to one entity, newest first.
func (r *HistoryRepo) ListBySubject(ctx context.Context, subject entity.Ref, limit, offset int) ([]*history.Record, error) {
	sql := `
		SELECT id, created_at, updated_at, is_deleted, deleted_at,
			   actor_id, description, description_compressed, compression_algo,
			   content_type, object_id
		FROM historics
		WHERE content_type = $1 AND object_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.scanRecords(ctx, sql, subject.ContentType, subject.ObjectID, limit, offset)
}

// List returns records across all subjects, newest first.
func (r *HistoryRepo) List(ctx context.Context, limit, offset int) ([]*history.Record, error) {
	sql := `
		SELECT id, created_at, updated_at, is_deleted, deleted_at,
			   actor_id, description, description_compressed, compression_algo,
			   content_type, object_id
		FROM historics
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.scanRecords(ctx, sql, limit, offset)
}

func (r *HistoryRepo) scanRecords(ctx context.Context, sql string, args ...any) ([]*history.Record, error) {
	rows, err := r.txm.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query historics: %w", err)
	}
	defer rows.Close()

	var records []*history.Record
	for rows.Next() {
		var rec history.Record
		var compressed []byte
		var algo compressionAlgo

		err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &rec.IsDeleted, &rec.DeletedAt,
			&rec.ActorID, &rec.Description, &compressed, &algo,
			&rec.ContentType, &rec.ObjectID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan historic: %w", err)
		}

		if algo == compressionZstd && len(compressed) > 0 {
			decompressed, err := r.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress description: %w", err)
			}
			rec.Description = string(decompressed)
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
