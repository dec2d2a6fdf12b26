package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-client rate limiter, keyed by the authenticated
// user when present and the client IP otherwise. The forms surface uses it
// to throttle access-code guessing.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			key := c.IP()
			if name := c.Locals("user_name"); name != nil {
				key = fmt.Sprintf("%v", name)
			}
			return fmt.Sprintf("%s:%s", identifier, key)
		},
	})
}
