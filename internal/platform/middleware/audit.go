package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hims/hims/internal/platform/auth"
)

// AuditEntry captures one access to patient data: who, what, when, from
// where, and the action type.
type AuditEntry struct {
	User       string
	Roles      []string
	Action     string // read, create, update, delete
	PatientID  string
	Path       string
	Method     string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries. Keeping it an interface lets tests
// capture entries without a database.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns middleware that records every access to the patient routes.
// Entries always land in the structured log; a recorder, when given, gets
// them as well, and a recorder failure is logged but never fails the
// request.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isAuditablePath(path) {
				return next(c)
			}

			// Run the handler first so the response status is known.
			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
				Action:     methodToAction(req.Method),
				PatientID:  patientIDFromRequest(c),
			}

			ctx := req.Context()
			entry.User = auth.UserFromContext(ctx)
			entry.Roles = auth.RolesFromContext(ctx)

			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "record_access").
				Str("request_id", entry.RequestID).
				Str("user", entry.User).
				Strs("roles", entry.Roles).
				Str("action", entry.Action).
				Str("patient_id", entry.PatientID).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("patient_access")

			return err
		}
	}
}

// isAuditablePath reports whether the path touches patient data.
func isAuditablePath(path string) bool {
	return strings.HasPrefix(path, "/api/patient")
}

func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// patientIDFromRequest finds the numeric patient id for the entry when one
// is addressable from the URL: /api/patient/<id> or ?patientId=<id>. Write
// requests carry the id in the body, which the middleware does not consume.
func patientIDFromRequest(c echo.Context) string {
	path := c.Request().URL.Path
	if rest := strings.TrimPrefix(path, "/api/patient/"); rest != path {
		id := strings.SplitN(rest, "/", 2)[0]
		if _, err := strconv.Atoi(id); err == nil {
			return id
		}
	}
	return c.QueryParam("patientId")
}
