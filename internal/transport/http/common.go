package http

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/pkg/logger"
)

// Recoverer turns a handler panic into a logged 500 with the usual JSON
// error body.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			logger.From(r.Context()).Error("panic recovered", "panic", fmt.Sprint(rvr), "stack", string(debug.Stack()))
			errors.WriteError(w, r, errors.Upstream("panic", fmt.Errorf("%v", rvr)), "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// MaxBodySizeMiddleware caps the request body. Oversized requests are
// rejected up front when Content-Length says so, and otherwise fail once
// the handler reads past the limit. A non-positive limit disables the cap.
func MaxBodySizeMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				errors.WriteError(w, r, tooLarge(limit), "")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func tooLarge(limit int64) error {
	return errors.InvalidInput(fmt.Sprintf("request body too large (max %d bytes)", limit))
}

// bodyError classifies a failure to read or parse the request body.
func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return tooLarge(maxErr.Limit)
	}
	return errors.InvalidInput("invalid request body")
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}

// decodeJSONRequest decodes the body into out. Keys are matched
// case-insensitively. An empty body leaves out untouched.
func decodeJSONRequest(r *http.Request, out any) error {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return bodyError(err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return bodyError(err)
	}
	return nil
}

// formValues returns the values posted under key, accepting the bracketed
// key[] spelling as well.
func formValues(r *http.Request, key string) []string {
	vals := append([]string{}, r.PostForm[key]...)
	return append(vals, r.PostForm[key+"[]"]...)
}

// intParam parses a query integer, falling back to def when the value is
// missing or not a number.
func intParam(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// parseSortBy splits field:direction. Only "desc" sorts descending.
func parseSortBy(raw string) (field string, desc bool) {
	field, dir, _ := strings.Cut(strings.TrimSpace(raw), ":")
	return strings.TrimSpace(field), strings.EqualFold(strings.TrimSpace(dir), "desc")
}
