package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"
)

// CallbackKeyAuth authenticates the scheduling engine's result
// callbacks with a pre-shared bearer key.
func CallbackKeyAuth(key string) drift.HandlerFunc {
	return func(c *drift.Context) {
		if key == "" {
			c.Unauthorized("callback authentication is not configured")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(key)) != 1 {
			c.Unauthorized("invalid callback key")
			return
		}

		c.Next()
	}
}
