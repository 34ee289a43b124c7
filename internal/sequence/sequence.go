// Package sequence implements the document number generator: a gap-free,
// strictly monotonic counter per (family, year, prefix) bucket, issued
// under a SELECT ... FOR UPDATE row lock held until commit.
package sequence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akgroup/erp-core/internal/errs"
)

// Family codes used when formatting a number; configurable via WithCodes so
// a host application can add document families without touching this
// package.
var defaultCodes = map[string]string{
	"quote":          "C",
	"order":          "O",
	"invoice_sii":    "F",
	"invoice_export": "FE",
	"delivery":       "GD",
}

// Generator issues document numbers inside a caller-supplied transaction.
type Generator struct {
	codes map[string]string
}

// Option configures a Generator.
type Option func(*Generator)

// WithCodes overrides or extends the family -> code map.
func WithCodes(codes map[string]string) Option {
	return func(g *Generator) {
		for family, code := range codes {
			g.codes[family] = code
		}
	}
}

// New builds a Generator with the default family codes, optionally
// overridden by opts.
func New(opts ...Option) *Generator {
	g := &Generator{codes: make(map[string]string, len(defaultCodes))}
	for family, code := range defaultCodes {
		g.codes[family] = code
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate issues the next number for (family, year, prefix) inside tx.
// prefix may be empty when the family is not scoped per company. The
// caller must attach the returned string to the document being created in
// the same transaction, and must not externalize it before that
// transaction commits.
func (g *Generator) Generate(ctx context.Context, tx *sql.Tx, family string, year int, prefix string) (string, error) {
	code, ok := g.codes[family]
	if !ok {
		return "", errs.InvalidInputf("unknown_family", "no number format configured for family %q", family)
	}

	// Idempotent upsert creates the bucket row on first use; ON CONFLICT DO
	// NOTHING leaves an existing row untouched so the following SELECT ...
	// FOR UPDATE observes its real last_value rather than resetting it.
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sequences (name, year, prefix, last_value)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (name, year, prefix) DO NOTHING
	`, family, year, prefix)
	if err != nil {
		return "", errs.Internalf(err, "seed sequence bucket %s/%d/%s", family, year, prefix)
	}

	var lastValue int
	err = tx.QueryRowContext(ctx, `
		SELECT last_value FROM sequences
		WHERE name = $1 AND year = $2 AND prefix = $3
		FOR UPDATE
	`, family, year, prefix).Scan(&lastValue)
	if err != nil {
		if isLockTimeout(err) {
			return "", errs.RetryableConflictf("sequence_lock_timeout", "timed out acquiring sequence lock for %s/%d/%s", family, year, prefix)
		}
		return "", errs.Internalf(err, "lock sequence bucket %s/%d/%s", family, year, prefix)
	}

	next := lastValue + 1
	_, err = tx.ExecContext(ctx, `
		UPDATE sequences SET last_value = $1
		WHERE name = $2 AND year = $3 AND prefix = $4
	`, next, family, year, prefix)
	if err != nil {
		return "", errs.Internalf(err, "advance sequence bucket %s/%d/%s", family, year, prefix)
	}

	return format(code, prefix, year, next), nil
}

func format(code, prefix string, year, value int) string {
	if prefix == "" {
		return fmt.Sprintf("%s-%d-%04d", code, year, value)
	}
	return fmt.Sprintf("%s-%s-%d-%04d", code, prefix, year, value)
}

// isLockTimeout reports whether err represents a Postgres lock-wait timeout
// or deadlock, both of which the caller may safely retry. Detection is by SQLSTATE class via lib/pq's error type.
func isLockTimeout(err error) bool {
	code := pqErrorCode(err)
	return code == "55P03" || code == "40P01" // lock_not_available, deadlock_detected
}
