package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	traceHeader = "X-Trace-Id"
	traceLocal  = "trace_id"
)

// Tracing tags every request with a trace id and echoes it in the response.
// An inbound X-Trace-Id is reused so ledger mutations can be correlated with
// the caller's own logs; otherwise a fresh uuid is minted.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Locals(traceLocal, traceID)
		c.Set(traceHeader, traceID)
		return c.Next()
	}
}

// GetTraceID returns the request's trace id, or "" when Tracing did not run.
func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(traceLocal).(string); ok {
		return id
	}
	return ""
}
