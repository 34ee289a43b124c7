package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/akgroup/erp-core/internal/errs"
)

// pathID extracts and parses an integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badPathParam(name, raw)
	}
	return id, nil
}

// pathString extracts a path variable verbatim.
func pathString(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func badPathParam(name, raw string) error {
	return errs.Field(name, "malformed_path_param", "path parameter "+name+" has invalid value "+raw)
}

// parseDate parses a YYYY-MM-DD date, the wire format for every document
// date field.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errs.InvalidInputf("malformed_date", "expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}
