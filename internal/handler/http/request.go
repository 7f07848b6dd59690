package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched so optional payloads such as break reasons may be omitted.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		slog.Debug("Failed to decode request body", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// principalFrom returns the caller resolved by the auth middleware.
func principalFrom(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return auth.Principal{}, false
	}
	return p, true
}

// queryParser collects malformed query parameters so a handler can report
// them together.
type queryParser struct {
	values url.Values
	errs   validator.ValidationErrors
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (q *queryParser) String(key string) *string {
	v := q.values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func (q *queryParser) Int(key string) int {
	v := q.values.Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.errs.Add(key, key+" must be a number")
		return 0
	}
	return n
}

func (q *queryParser) IntPtr(key string) *int {
	if q.values.Get(key) == "" {
		return nil
	}
	n := q.Int(key)
	return &n
}

func (q *queryParser) Bool(key string) bool {
	v := q.values.Get(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.errs.Add(key, key+" must be true or false")
	}
	return b
}

func (q *queryParser) Page() pagination.Params {
	return pagination.Params{Page: q.Int("page"), Limit: q.Int("limit")}
}

func (q *queryParser) Err() error {
	return q.errs.Err()
}
