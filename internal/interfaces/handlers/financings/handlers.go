package financings

import (
	"errors"
	"time"

	finsvc "minevest-backend/internal/application/financings"
	"minevest-backend/internal/middleware"
	"minevest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *finsvc.Service
}

// GET /financings/
func (h *Handlers) List(c *fiber.Ctx) error {
	fins, err := h.Service.List(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fins)
}

// GET /financings/:financing_id/
func (h *Handlers) Get(c *fiber.Ctx) error {
	financingID, err := uuid.Parse(c.Params("financing_id"))
	if err != nil {
		return response.Error(c, "Please provide a valid financing id.", fiber.StatusBadRequest)
	}
	fin, err := h.Service.Get(c.Context(), financingID)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fin)
}

// POST /financings/ — admin only.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		CompanyName   string           `json:"company_name"`
		RoundName     string           `json:"round_name"`
		PricePerShare *decimal.Decimal `json:"price_per_share"`
		SharesIssued  *int64           `json:"shares_issued"`
		ClosingDate   *time.Time       `json:"closing_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Please provide a company name and a round name.", fiber.StatusBadRequest)
	}
	fin, err := h.Service.Create(c.Context(), finsvc.CreateFinancingInput{
		CompanyName:   body.CompanyName,
		RoundName:     body.RoundName,
		PricePerShare: body.PricePerShare,
		SharesIssued:  body.SharesIssued,
		ClosingDate:   body.ClosingDate,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return response.Created(c, fin)
}

// PATCH /financings/:financing_id/status/ — admin only.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	financingID, err := uuid.Parse(c.Params("financing_id"))
	if err != nil {
		return response.Error(c, "Please provide a valid financing id.", fiber.StatusBadRequest)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, "That is not a valid financing status.", fiber.StatusBadRequest)
	}
	fin, err := h.Service.UpdateStatus(c.Context(), financingID, body.Status)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fin)
}

func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, finsvc.ErrNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, finsvc.ErrInvalidInput),
		errors.Is(err, finsvc.ErrInvalidPrice),
		errors.Is(err, finsvc.ErrInvalidShares),
		errors.Is(err, finsvc.ErrInvalidStatus):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, finsvc.ErrFinalStatus):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	default:
		log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("financing operation failed")
		return response.Error(c, "Something went wrong on our end. Please try again later.", fiber.StatusInternalServerError)
	}
}
