package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on both request and response.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the id lives in Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request has an id: an incoming X-Request-ID is
// preserved, otherwise a fresh UUID is minted. The id is stored in locals
// for the logger and error responses, and echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
