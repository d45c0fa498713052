package middleware

import (
	"errors"
	"slices"
	"strings"

	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected accepts an access token from the access_token cookie or an
// Authorization: Bearer header and stores the session in locals.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHENTICATED, errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(secret, token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		session, err := helper.SessionFromToken(jwtToken)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		helper.SetSession(c, session)
		return c.Next()
	}
}

// RequireRoles must run after Protected.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := helper.SessionFromCtx(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHENTICATED, nil)
		}
		if !slices.Contains(roles, session.Role) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_FORBIDDEN, errors.New("role not allowed"))
		}
		return c.Next()
	}
}
