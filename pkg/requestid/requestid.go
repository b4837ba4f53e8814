package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the request id on HTTP requests and NATS messages.
const Header = "X-Request-ID"

const maxLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Resolve returns candidate when it is a well-formed id, otherwise a new UUID.
func Resolve(candidate string) string {
	if len(candidate) > 0 && len(candidate) <= maxLength && validID.MatchString(candidate) {
		return candidate
	}
	return uuid.NewString()
}

// Middleware stores the request id in the request context and echoes it in
// the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Resolve(r.Header.Get(Header))
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// LogAttr adds "request_id" to log records whose context carries one.
// It matches logger.ContextExtractor.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}
