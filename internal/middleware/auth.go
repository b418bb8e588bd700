package middleware

import (
	"context"
	"encoding/json"
	"strings"

	"minevest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const investorLocal = "investor"

// TokenRedisPrefix is the Redis key prefix for bearer tokens. Exported for the
// auth service (issue/revoke) and tests.
const TokenRedisPrefix = "authtoken:"

// InvestorClaims is the shape stored in Redis per token and placed in Locals
// by BearerAuth.
type InvestorClaims struct {
	InvestorID string `json:"investor_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// BearerAuth resolves the Authorization: Bearer token against Redis and puts
// the investor claims in Locals. It never rejects by itself — public routes
// (e.g. the aggregate read) pass through; RequireAuth does the rejecting.
func BearerAuth(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Locals(investorLocal, nil)
			return c.Next()
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.Locals(investorLocal, nil)
			return c.Next()
		}
		b, err := rdb.Get(context.Background(), TokenRedisPrefix+token).Bytes()
		if err != nil {
			c.Locals(investorLocal, nil)
			return c.Next()
		}
		var claims InvestorClaims
		if err := json.Unmarshal(b, &claims); err != nil || claims.InvestorID == "" {
			c.Locals(investorLocal, nil)
			return c.Next()
		}
		c.Locals(investorLocal, &claims)
		c.Locals("auth_token", token)
		return c.Next()
	}
}

// RequireAuth ensures an authenticated investor. 401 with {"detail": ...} if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetInvestor(c) == nil {
			return response.Unauthorized(c, "Authentication credentials were not provided.")
		}
		return c.Next()
	}
}

// RequireRole ensures the authenticated investor has the given role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetInvestor(c)
		if claims == nil {
			return response.Unauthorized(c, "Authentication credentials were not provided.")
		}
		if claims.Role != role {
			return response.Error(c, "You do not have permission to perform this action.", fiber.StatusForbidden)
		}
		return c.Next()
	}
}

// GetInvestor returns the investor claims from Locals (nil if not logged in).
func GetInvestor(c *fiber.Ctx) *InvestorClaims {
	claims, _ := c.Locals(investorLocal).(*InvestorClaims)
	return claims
}

// GetAuthToken returns the raw bearer token for the request ("" if none).
func GetAuthToken(c *fiber.Ctx) string {
	t, _ := c.Locals("auth_token").(string)
	return t
}

// InvestorUUID parses the authenticated investor's id.
func InvestorUUID(c *fiber.Ctx) (uuid.UUID, error) {
	claims := GetInvestor(c)
	if claims == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(claims.InvestorID)
}
