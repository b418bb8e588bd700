package health

import (
	"minevest-backend/internal/health"
	"minevest-backend/internal/middleware"
	"minevest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb            *redis.Client
	DB             health.DBPinger
	HealthAdminKey string
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := health.CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(result)
}

// GET /health/reset — clears the traffic counters. Requires ?key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden)
	}
	if h.Rdb != nil {
		keys := []string{
			middleware.KeyReqTotal,
			middleware.KeyReqErrors,
			middleware.KeyResTime,
			middleware.KeyResCount,
			middleware.KeyLastReq,
		}
		if err := h.Rdb.Del(c.Context(), keys...).Err(); err != nil {
			return response.Error(c, "Something went wrong on our end. Please try again later.", fiber.StatusInternalServerError)
		}
	}
	return response.JSON(c, fiber.Map{"message": "Traffic counters reset."})
}
