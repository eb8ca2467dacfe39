package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain"
)

// SoftDeleteRepo provides CRUD and scoped reads for soft-deletable
// entities. Embed it in concrete repositories.
//
// Reads are organized as three named views over the table — Active,
// Deleted and Global — plus an owner-filtered view. Ordinary lookups go
// through Active; seeing soft-deleted rows always requires naming the
// Deleted or Global view explicitly.
type SoftDeleteRepo[T entity.SoftDeletable] struct {
	txm        *TxManager
	tableName  string
	selectCols []string
	searchCols []string
	newFn      func() T
}

// RepoOption configures a SoftDeleteRepo.
type RepoOption[T entity.SoftDeletable] func(*SoftDeleteRepo[T])

// WithSearchColumns sets the columns substring search applies to.
func WithSearchColumns[T entity.SoftDeletable](cols ...string) RepoOption[T] {
	return func(r *SoftDeleteRepo[T]) { r.searchCols = cols }
}

// NewSoftDeleteRepo creates a repository for one table. Column names are
// extracted from the entity's "db" tags.
func NewSoftDeleteRepo[T entity.SoftDeletable](
	txm *TxManager,
	tableName string,
	newFn func() T,
	opts ...RepoOption[T],
) *SoftDeleteRepo[T] {
	r := &SoftDeleteRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: ExtractDBColumns[T](),
		newFn:      newFn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *SoftDeleteRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// --- Write path ---

// Create inserts a new entity, stamping the lifecycle timestamps first.
func (r *SoftDeleteRepo[T]) Create(ctx context.Context, e T) error {
	e.Envelope().StampSave(time.Now().UTC())
	return r.insert(ctx, e)
}

// Save stamps the lifecycle timestamps and persists the entity's current
// state: an entity never persisted before (created_at unset) is inserted,
// anything else is updated in place. Last writer wins; this layer imposes
// no version fields.
func (r *SoftDeleteRepo[T]) Save(ctx context.Context, e T) error {
	isNew := e.Envelope().IsNew()
	e.Envelope().StampSave(time.Now().UTC())
	if isNew {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *SoftDeleteRepo[T]) insert(ctx context.Context, e T) error {
	data := r.columnData(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return nil
}

func (r *SoftDeleteRepo[T]) update(ctx context.Context, e T) error {
	data := r.columnData(e)
	delete(data, "id")

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": e.GetID()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, e.GetID().String())
	}
	return nil
}

// HardDelete performs physical removal from the database. Irreversible.
func (r *SoftDeleteRepo[T]) HardDelete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}
	return nil
}

// GetByID retrieves an entity by primary key regardless of deletion
// state, so delete/restore flows can load their target.
func (r *SoftDeleteRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return r.Global().GetByID(ctx, entityID)
}

// --- Scoped views ---

// Scoped is one named view over the table.
type Scoped[T entity.SoftDeletable] struct {
	repo  *SoftDeleteRepo[T]
	conds []squirrel.Sqlizer
}

// DeletedScoped is the deleted view; it additionally exposes bulk restore.
type DeletedScoped[T entity.SoftDeletable] struct {
	Scoped[T]
}

// Active returns the view of rows with is_deleted = false. All ordinary
// reads default to this view.
func (r *SoftDeleteRepo[T]) Active() Scoped[T] {
	return Scoped[T]{repo: r, conds: []squirrel.Sqlizer{squirrel.Eq{"is_deleted": false}}}
}

// Deleted returns the view of rows with is_deleted = true.
func (r *SoftDeleteRepo[T]) Deleted() DeletedScoped[T] {
	return DeletedScoped[T]{Scoped[T]{repo: r, conds: []squirrel.Sqlizer{squirrel.Eq{"is_deleted": true}}}}
}

// Global returns the unfiltered view: all rows regardless of deletion state.
func (r *SoftDeleteRepo[T]) Global() Scoped[T] {
	return Scoped[T]{repo: r}
}

// OwnedBy returns the active view further filtered by the owner
// association columns.
func (r *SoftDeleteRepo[T]) OwnedBy(owner entity.Ref) Scoped[T] {
	s := r.Active()
	s.conds = append(s.conds, ownerConds(owner)...)
	return s
}

// ownerConds builds the predicates matching a generic owner association.
func ownerConds(owner entity.Ref) []squirrel.Sqlizer {
	return []squirrel.Sqlizer{
		squirrel.Eq{"content_type": owner.ContentType},
		squirrel.Eq{"object_id": owner.ObjectID},
	}
}

// Where narrows the view with an additional predicate.
func (s Scoped[T]) Where(cond squirrel.Sqlizer) Scoped[T] {
	s.conds = append(append([]squirrel.Sqlizer{}, s.conds...), cond)
	return s
}

func (s Scoped[T]) baseSelect() squirrel.SelectBuilder {
	q := s.repo.Builder().
		Select(s.repo.selectCols...).
		From(s.repo.tableName)
	for _, c := range s.conds {
		q = q.Where(c)
	}
	return q
}

// GetByID retrieves one entity through this view.
func (s Scoped[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e := s.repo.newFn()

	sql, args, err := s.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, s.repo.querier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(s.repo.tableName, entityID.String())
		}
		return e, fmt.Errorf("get by id: %w", err)
	}

	s.repo.afterLoad(e)
	return e, nil
}

// FindOne retrieves the first entity matching the predicate through this view.
func (s Scoped[T]) FindOne(ctx context.Context, cond squirrel.Sqlizer) (T, error) {
	e := s.repo.newFn()

	sql, args, err := s.baseSelect().
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, s.repo.querier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(s.repo.tableName, "matching query")
		}
		return e, fmt.Errorf("find one: %w", err)
	}

	s.repo.afterLoad(e)
	return e, nil
}

// List retrieves entities through this view with filtering and pagination.
func (s Scoped[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := s.baseSelect()

	if filter.Search != "" && len(s.repo.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := squirrel.Or{}
		for _, col := range s.repo.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	// Count total before pagination
	countSQL, countArgs, err := s.repo.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := s.repo.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := s.repo.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", s.repo.tableName, err)
	}

	for _, e := range result.Items {
		s.repo.afterLoad(e)
	}
	return result, nil
}

// Count returns the number of rows in this view.
func (s Scoped[T]) Count(ctx context.Context) (int64, error) {
	q := s.repo.Builder().
		Select("COUNT(*)").
		From(s.repo.tableName)
	for _, c := range s.conds {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := s.repo.querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.repo.tableName, err)
	}
	return n, nil
}

// Exists checks whether an entity is present in this view.
func (s Scoped[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := s.repo.Builder().
		Select("1").
		From(s.repo.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)
	for _, c := range s.conds {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = s.repo.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// Restore bulk-restores every row in the deleted view matching the extra
// predicates: one UPDATE clearing is_deleted and deleted_at. It does not
// cascade and does not create history — an administrative escape hatch,
// deliberately asymmetric with the per-entity restore in the lifecycle
// engine. Returns the number of rows restored.
func (s DeletedScoped[T]) Restore(ctx context.Context, conds ...squirrel.Sqlizer) (int64, error) {
	q := s.repo.Builder().
		Update(s.repo.tableName).
		Set("is_deleted", false).
		Set("deleted_at", nil)
	for _, c := range s.conds {
		q = q.Where(c)
	}
	for _, c := range conds {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk restore: %w", err)
	}

	result, err := s.repo.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk restore %s: %w", s.repo.tableName, err)
	}
	return result.RowsAffected(), nil
}

// --- Helpers ---

func (r *SoftDeleteRepo[T]) querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// columnData maps the entity to its table columns via db tags.
func (r *SoftDeleteRepo[T]) columnData(e T) map[string]any {
	data := StructToMap(e)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}

// afterLoad re-captures the change-tracking snapshot after hydration.
func (r *SoftDeleteRepo[T]) afterLoad(e T) {
	if t, ok := any(e).(entity.Tracked); ok {
		entity.CaptureSnapshot(t)
	}
}

func (r *SoftDeleteRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "created_at DESC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	return field + " " + direction, nil
}
