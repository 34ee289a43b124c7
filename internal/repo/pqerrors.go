package repo

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes the repository layer translates into Conflict
// errors rather than opaque Internal ones (see PostgreSQL Errors Appendix).
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
