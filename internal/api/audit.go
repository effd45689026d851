package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/easykanban/easykanban/internal/auth"
)

// auditLog records a successful mutation of a kanban resource. Anonymous
// actions (registration) carry no subject group.
func auditLog(r *http.Request, action, resource string, id int64, detail ...any) {
	attrs := []slog.Attr{
		slog.String("action", action),
		slog.String("resource", resource),
		slog.Int64("resource_id", id),
		slog.String("route", r.Method+" "+r.URL.Path),
		slog.String("ip", remoteHost(r)),
		slog.String("request_id", RequestIDFromContext(r.Context())),
	}
	if c := auth.ClaimsFromContext(r.Context()); c != nil {
		attrs = append(attrs, slog.Group("subject",
			slog.Int64("id", c.SubjectID),
			slog.String("email", c.Email),
		))
	}
	if len(detail) > 0 {
		attrs = append(attrs, slog.Group("detail", detail...))
	}
	slog.LogAttrs(r.Context(), slog.LevelInfo, "audit", attrs...)
}

// remoteHost prefers the first X-Forwarded-For hop over RemoteAddr.
func remoteHost(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
