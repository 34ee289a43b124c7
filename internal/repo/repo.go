// Package repo provides a generic repository shape, one instantiation per
// aggregate type, backed by raw SQL over database/sql and lib/pq. See
// DESIGN.md for why this stays an explicitly-mapped layer rather than a
// reflection-based one.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/ratelimit"
	"github.com/akgroup/erp-core/internal/uow"
)

// Mapper supplies the glue a generic Repository needs for one aggregate
// type: the table name, the column list in stable order, how to read one
// row into a T, and how to produce the positional arguments for an
// insert/update of a T. SoftDeleteColumn is empty when the aggregate does
// not declare the soft-delete capability.
type Mapper[T any] struct {
	Table            string
	Columns          []string // excludes id; id is always first physical column
	SoftDeleteColumn string   // "is_deleted", or "" if unsupported

	// Scan reads one row into dest, including the leading id column, in
	// the same order as SELECT id, <Columns...> produces them.
	Scan func(row Scanner, dest *T) error
	// Values returns the column values of e in the same order as Columns,
	// for use as INSERT/UPDATE arguments.
	Values func(e *T) []any
	// SetID stores a freshly assigned id into e.
	SetID func(e *T, id int64)
	// GetID reads the id out of e.
	GetID func(e *T) int64
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Filter is a single equality predicate: "column = value". The repository
// layer only needs conjunctive equality filters; aggregates requiring
// richer predicates expose specialized finder methods instead.
type Filter struct {
	Column string
	Value  any
}

// Repository is a generic, per-aggregate data access object. A zero
// Repository is not usable; construct with New.
type Repository[T any] struct {
	db       DBTX
	mapper   Mapper[T]
	entity   string // human-readable entity kind, for error messages
	throttle *ratelimit.Throttle
}

// DBTX is satisfied by both *sql.DB and *sql.Tx, so a Repository can be
// used standalone or inside a unit-of-work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New builds a Repository bound to db (or a *sql.Tx obtained from
// uow.UnitOfWork.Tx).
func New[T any](db DBTX, entity string, mapper Mapper[T]) *Repository[T] {
	return &Repository[T]{db: db, mapper: mapper, entity: entity}
}

// FromUnitOfWork binds a Repository to the transaction carried by u, so all
// of its writes participate in the caller's commit/rollback.
func FromUnitOfWork[T any](u *uow.UnitOfWork, entity string, mapper Mapper[T]) *Repository[T] {
	return New[T](u.Tx(), entity, mapper)
}

// WithThrottle attaches a bulk-operation throttle, keyed by entity kind,
// that CreateMany/UpdateMany/DeleteMany wait on before issuing their batched
// statements. Returns r for chaining.
func (r *Repository[T]) WithThrottle(t *ratelimit.Throttle) *Repository[T] {
	r.throttle = t
	return r
}

func (r *Repository[T]) throttleWait(ctx context.Context) error {
	if r.throttle == nil {
		return nil
	}
	if err := r.throttle.Wait(ctx, r.entity); err != nil {
		return errs.Internalf(err, "throttle wait for %s", r.entity)
	}
	return nil
}

func (r *Repository[T]) selectColumns() string {
	cols := append([]string{"id"}, r.mapper.Columns...)
	return strings.Join(cols, ", ")
}

// Get loads a single row by id.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectColumns(), r.mapper.Table)
	row := r.db.QueryRowContext(ctx, query, id)

	var out T
	if err := r.mapper.Scan(row, &out); err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFoundf(r.entity, id)
		}
		return nil, errs.Internalf(err, "get %s %d", r.entity, id)
	}
	return &out, nil
}

// GetMany loads every row whose id is in ids. Missing ids are silently
// omitted; callers that need to distinguish a partial result check
// len(result) against len(ids).
func (r *Repository[T]) GetMany(ctx context.Context, ids []int64) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id IN (%s)",
		r.selectColumns(), r.mapper.Table, strings.Join(placeholders, ", "))
	return r.query(ctx, query, args...)
}

// Exists reports whether a row with the given id exists.
func (r *Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", r.mapper.Table)
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, errs.Internalf(err, "exists %s %d", r.entity, id)
	}
	return exists, nil
}

// Find returns rows matching all filters (conjunctive equality), ordered by
// orderBy (descending when requested), paginated by skip/limit. limit <= 0
// means unbounded.
func (r *Repository[T]) Find(ctx context.Context, filters []Filter, orderBy string, descending bool, skip, limit int) ([]*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", r.selectColumns(), r.mapper.Table)
	args := make([]any, 0, len(filters))
	if where, whereArgs := buildWhere(filters); where != "" {
		query += " WHERE " + where
		args = append(args, whereArgs...)
	}
	if orderBy != "" {
		dir := "ASC"
		if descending {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", orderBy, dir)
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	if skip > 0 {
		query += fmt.Sprintf(" OFFSET %d", skip)
	}
	return r.query(ctx, query, args...)
}

// QueryWhere returns rows matching a caller-supplied WHERE clause (using
// $N placeholders over args), optionally ordered by orderBy ascending. It
// exists for the handful of finders whose predicate isn't a conjunction of
// equalities (range comparisons, NULL checks, ILIKE) and so can't be
// expressed through Find's Filter list.
func (r *Repository[T]) QueryWhere(ctx context.Context, where string, orderBy string, args ...any) ([]*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", r.selectColumns(), r.mapper.Table, where)
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	return r.query(ctx, query, args...)
}

// Count returns the number of rows matching filters.
func (r *Repository[T]) Count(ctx context.Context, filters []Filter) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.mapper.Table)
	args := make([]any, 0, len(filters))
	if where, whereArgs := buildWhere(filters); where != "" {
		query += " WHERE " + where
		args = append(args, whereArgs...)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errs.Internalf(err, "count %s", r.entity)
	}
	return n, nil
}

func buildWhere(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	clauses := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		clauses[i] = fmt.Sprintf("%s = $%d", f.Column, i+1)
		args[i] = f.Value
	}
	return strings.Join(clauses, " AND "), args
}

func (r *Repository[T]) query(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Internalf(err, "query %s", r.entity)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var entity T
		if err := r.mapper.Scan(rows, &entity); err != nil {
			return nil, errs.Internalf(err, "scan %s", r.entity)
		}
		out = append(out, &entity)
	}
	return out, rows.Err()
}

// Create validates nothing itself (callers apply package validate first),
// stamps no audit fields (callers apply the unit-of-work's AuditContext
// first), and inserts e, storing the assigned id into e.
func (r *Repository[T]) Create(ctx context.Context, e *T) error {
	placeholders := make([]string, len(r.mapper.Columns))
	for i := range r.mapper.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.mapper.Table, strings.Join(r.mapper.Columns, ", "), strings.Join(placeholders, ", "))

	var id int64
	err := r.db.QueryRowContext(ctx, query, r.mapper.Values(e)...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflictf("duplicate_key", "%s violates a uniqueness constraint", r.entity)
		}
		return errs.Internalf(err, "create %s", r.entity)
	}
	r.mapper.SetID(e, id)
	return nil
}

// CreateMany inserts every entity in entities, in order, stopping at the
// first failure.
func (r *Repository[T]) CreateMany(ctx context.Context, entities []*T) error {
	if err := r.throttleWait(ctx); err != nil {
		return err
	}
	for _, e := range entities {
		if err := r.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Update persists every mapped column of e, keyed by its id. Fails with
// NotFound if no row with that id exists.
func (r *Repository[T]) Update(ctx context.Context, e *T) error {
	sets := make([]string, len(r.mapper.Columns))
	for i, c := range r.mapper.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	id := r.mapper.GetID(e)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		r.mapper.Table, strings.Join(sets, ", "), len(r.mapper.Columns)+1)
	args := append(r.mapper.Values(e), id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflictf("duplicate_key", "%s violates a uniqueness constraint", r.entity)
		}
		return errs.Internalf(err, "update %s %d", r.entity, id)
	}
	return r.requireAffected(result, id)
}

// UpdateMany applies the same column/value patch to every row whose id is
// in ids, returning the number of rows affected.
func (r *Repository[T]) UpdateMany(ctx context.Context, ids []int64, patch map[string]any) (int, error) {
	if len(ids) == 0 || len(patch) == 0 {
		return 0, nil
	}
	if err := r.throttleWait(ctx); err != nil {
		return 0, err
	}
	sets := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+len(ids))
	i := 1
	for col, val := range patch {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	placeholders := make([]string, len(ids))
	for j, id := range ids {
		placeholders[j] = fmt.Sprintf("$%d", i)
		args = append(args, id)
		i++
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id IN (%s)",
		r.mapper.Table, strings.Join(sets, ", "), strings.Join(placeholders, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errs.Internalf(err, "update_many %s", r.entity)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errs.Internalf(err, "update_many %s rows affected", r.entity)
	}
	return int(affected), nil
}

// Delete hard-deletes the row with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.mapper.Table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.Conflictf("referenced", "%s %d is referenced by other records", r.entity, id)
		}
		return errs.Internalf(err, "delete %s %d", r.entity, id)
	}
	return r.requireAffected(result, id)
}

// DeleteMany hard-deletes every row whose id is in ids.
func (r *Repository[T]) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.throttleWait(ctx); err != nil {
		return err
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", r.mapper.Table, strings.Join(placeholders, ", "))
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.Conflictf("referenced", "one or more %s rows are referenced by other records", r.entity)
		}
		return errs.Internalf(err, "delete_many %s", r.entity)
	}
	return nil
}

// SoftDelete sets the mapper's soft-delete column and stamps updated_by,
// failing with Unsupported if the aggregate declares no such column.
func (r *Repository[T]) SoftDelete(ctx context.Context, id int64, userID int64) error {
	if r.mapper.SoftDeleteColumn == "" {
		return errs.Unsupportedf(r.entity, "soft_delete")
	}
	query := fmt.Sprintf("UPDATE %s SET %s = true, updated_by = $1 WHERE id = $2",
		r.mapper.Table, r.mapper.SoftDeleteColumn)
	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return errs.Internalf(err, "soft_delete %s %d", r.entity, id)
	}
	return r.requireAffected(result, id)
}

func (r *Repository[T]) requireAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.Internalf(err, "rows affected for %s %d", r.entity, id)
	}
	if affected == 0 {
		return errs.NotFoundf(r.entity, id)
	}
	return nil
}
