// Package middleware provides authentication, logging and rate limiting
// middleware for the application.
package middleware

import (
	"strconv"
	"strings"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// LoginPath is where unauthenticated requests to protected routes are sent.
const LoginPath = "/auth/login/"

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "inkwell_session"

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// tokenFromRequest extracts the session token from the Authorization header
// or, for browser clients, from the session cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}

// parseUserID validates the token and returns the user ID from its subject claim.
func parseUserID(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// LoginRequired enforces authentication for protected routes. Unauthenticated
// requests are redirected to the login page rather than answered with a raw
// error, so browser flows degrade gracefully.
func LoginRequired(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	userID, ok := parseUserID(token)
	if !ok {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalUser resolves the current user when a valid token is present and
// otherwise continues anonymously. Public pages use it to personalize output
// (e.g. whether the viewer follows a profile's author).
func OptionalUser(c *fiber.Ctx) error {
	if token := tokenFromRequest(c); token != "" {
		if userID, ok := parseUserID(token); ok {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}
