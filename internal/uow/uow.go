// Package uow implements a scoped transactional session bundling a store
// handle, an audit context (acting principal + clock), and an open-ended
// correlation-id bag. Every mutating repository call threads a
// *UnitOfWork through so it can stamp audit columns without reaching into
// ambient/global state; the acting user id is passed explicitly through
// AuditContext rather than read off session-carried state.
package uow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/events"
)

// AuditContext carries the acting principal and a wall clock through a
// unit-of-work. Services receive the user id explicitly from their caller
// and install it here before any write; read-only calls never touch it.
type AuditContext struct {
	UserID        int64
	Clock         Clock
	CorrelationID string
}

// Now returns the current instant from the installed clock, defaulting to
// the system clock if none was set.
func (a AuditContext) Now() time.Time {
	if a.Clock == nil {
		return SystemClock{}.Now()
	}
	return a.Clock.Now()
}

// Factory produces a UnitOfWork with transactional and row-locking
// semantics, the store-session boundary every service builds on.
type Factory struct {
	db        *sql.DB
	publisher events.Publisher
}

// NewFactory wraps an already-open database handle. The host is
// responsible for connection pool tuning (max open/idle conns, lifetime)
// before handing it here.
func NewFactory(db *sql.DB, publisher events.Publisher) *Factory {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Factory{db: db, publisher: publisher}
}

// Begin acquires a transactional session at the default isolation level.
// The store must provide snapshot semantics and row-level locking;
// Postgres's default READ COMMITTED plus explicit SELECT ... FOR UPDATE
// (used by the sequence generator) satisfies this.
func (f *Factory) Begin(ctx context.Context, audit AuditContext) (*UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.Internalf(err, "begin transaction")
	}
	return &UnitOfWork{tx: tx, audit: audit, publisher: f.publisher}, nil
}

// UnitOfWork bundles one open *sql.Tx with the audit context active for its
// lifetime. Repositories execute directly against Tx(); there is no separate
// identity map or dirty-checking layer (this is not a SQLAlchemy Session).
type UnitOfWork struct {
	tx        *sql.Tx
	audit     AuditContext
	publisher events.Publisher
	pending   []events.Event
	done      bool
}

// Tx exposes the underlying transaction for repository calls.
func (u *UnitOfWork) Tx() *sql.Tx { return u.tx }

// Audit exposes the audit context installed for this unit-of-work.
func (u *UnitOfWork) Audit() AuditContext { return u.audit }

// Flush is a documented no-op. database/sql has no separate "write pending
// changes without committing" step — every repository call already executes
// its SQL immediately against the open transaction. Flush exists only to
// keep a begin/flush/commit/rollback lifecycle available to callers that
// expect one; "flushed but not committed" here simply means "executed
// inside an uncommitted transaction".
func (u *UnitOfWork) Flush(context.Context) error { return nil }

// QueueEvent schedules a domain event for publication after Commit succeeds.
// Events queued before a Rollback are discarded, matching the sequence
// generator's rule that a provisional value must never be externalized
// before commit.
func (u *UnitOfWork) QueueEvent(event events.Event) {
	u.pending = append(u.pending, event)
}

// Commit commits all changes atomically, then publishes queued events. A
// publish failure after a successful commit is reported but does not unwind
// the transaction — the write already happened.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return errs.Internalf(nil, "unit of work already finished")
	}
	u.done = true
	if err := u.tx.Commit(); err != nil {
		return errs.Internalf(err, "commit transaction")
	}
	for _, event := range u.pending {
		if err := u.publisher.Publish(ctx, event); err != nil {
			return errs.Internalf(err, "publish event %s after commit", event.Subject)
		}
	}
	return nil
}

// Rollback discards all pending changes and queued events. Safe to call
// after a failed Commit or as a deferred cleanup; calling it after a
// successful Commit is a no-op.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	u.pending = nil
	if err := u.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Run is the common service-entry-point shape: begin, run fn against the
// unit-of-work, commit on success, roll back on any error (including a
// panic, which is re-raised after rollback). Service methods use this
// instead of each hand-rolling begin/commit/rollback bookkeeping.
func (f *Factory) Run(ctx context.Context, audit AuditContext, fn func(ctx context.Context, u *UnitOfWork) error) (err error) {
	u, err := f.Begin(ctx, audit)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback()
			panic(p)
		}
	}()
	if err = fn(ctx, u); err != nil {
		_ = u.Rollback()
		return err
	}
	if err = u.Commit(ctx); err != nil {
		return err
	}
	return nil
}
