package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PathIDs validates the named UUID path parameters and stores them in the
// request context under the parameter name.
func PathIDs(params ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, param := range params {
			raw := strings.TrimSpace(c.Params(param))
			if raw == "" {
				return JsonResponse(c, fiber.StatusBadRequest, false, param+" is required!", nil)
			}
			if _, err := uuid.Parse(raw); err != nil {
				return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
			}
			c.Locals(param, raw)
		}
		return c.Next()
	}
}
