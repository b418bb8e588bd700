package interest

import (
	"errors"

	interestsvc "minevest-backend/internal/application/interest"
	"minevest-backend/internal/middleware"
	"minevest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *interestsvc.Service
	Query   *interestsvc.Query
}

// GET /investment-interest/aggregate/:financing_id/ — public, no auth.
func (h *Handlers) GetAggregate(c *fiber.Ctx) error {
	financingID, err := uuid.Parse(c.Params("financing_id"))
	if err != nil {
		return response.Error(c, "Please provide a valid financing id.", fiber.StatusBadRequest)
	}
	view, err := h.Query.GetAggregate(c.Context(), financingID)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, view)
}

// GET /investment-interest/my-interest/:financing_id/
func (h *Handlers) GetMyInterest(c *fiber.Ctx) error {
	investorID, err := middleware.InvestorUUID(c)
	if err != nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	financingID, err := uuid.Parse(c.Params("financing_id"))
	if err != nil {
		return response.Error(c, "Please provide a valid financing id.", fiber.StatusBadRequest)
	}
	mine, err := h.Query.GetMyInterest(c.Context(), investorID, financingID)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, mine)
}

// POST /investment-interest/
func (h *Handlers) ExpressInterest(c *fiber.Ctx) error {
	investorID, err := middleware.InvestorUUID(c)
	if err != nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	var body struct {
		FinancingID      string          `json:"financing_id"`
		SharesRequested  int64           `json:"shares_requested"`
		InvestmentAmount decimal.Decimal `json:"investment_amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Please enter a valid investment amount.", fiber.StatusBadRequest)
	}
	financingID, err := uuid.Parse(body.FinancingID)
	if err != nil {
		return response.Error(c, "Please provide a valid financing id.", fiber.StatusBadRequest)
	}

	rec, err := h.Service.ExpressInterest(c.Context(), interestsvc.ExpressInterestInput{
		InvestorID:       investorID,
		FinancingID:      financingID,
		SharesRequested:  body.SharesRequested,
		InvestmentAmount: body.InvestmentAmount,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return response.Created(c, rec)
}

// PATCH /investment-interest/:id/update/
func (h *Handlers) UpdateInterest(c *fiber.Ctx) error {
	investorID, err := middleware.InvestorUUID(c)
	if err != nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	interestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Please provide a valid interest id.", fiber.StatusBadRequest)
	}
	var body struct {
		InvestmentAmount decimal.Decimal `json:"investment_amount"`
		SharesRequested  int64           `json:"shares_requested"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Please enter a valid investment amount.", fiber.StatusBadRequest)
	}

	rec, err := h.Service.UpdateInterest(c.Context(), interestsvc.UpdateInterestInput{
		InterestID:       interestID,
		InvestorID:       investorID,
		SharesRequested:  body.SharesRequested,
		InvestmentAmount: body.InvestmentAmount,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fiber.Map{
		"shares_requested":  rec.SharesRequested,
		"investment_amount": rec.InvestmentAmount,
	})
}

// DELETE /investment-interest/:id/withdraw/
func (h *Handlers) WithdrawInterest(c *fiber.Ctx) error {
	investorID, err := middleware.InvestorUUID(c)
	if err != nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	interestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Please provide a valid interest id.", fiber.StatusBadRequest)
	}

	if _, err := h.Service.WithdrawInterest(c.Context(), interestID, investorID); err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fiber.Map{"message": "Your investment interest has been withdrawn."})
}

// GET /investment-interest/:id/events/
func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	investorID, err := middleware.InvestorUUID(c)
	if err != nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	interestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Please provide a valid interest id.", fiber.StatusBadRequest)
	}
	events, err := h.Service.GetEvents(c.Context(), interestID, investorID)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, events)
}

// respondError maps domain errors to statuses. Unexpected errors are logged
// with the trace id and surfaced as a generic 500.
func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, interestsvc.ErrInvalidAmount):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, interestsvc.ErrAlreadyExpressed),
		errors.Is(err, interestsvc.ErrDuplicateActiveInterest),
		errors.Is(err, interestsvc.ErrInvalidState):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	case errors.Is(err, interestsvc.ErrNotFound),
		errors.Is(err, interestsvc.ErrFinancingNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, interestsvc.ErrFinancingClosed):
		return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	default:
		log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("interest operation failed")
		return response.Error(c, "Something went wrong on our end. Please try again later.", fiber.StatusInternalServerError)
	}
}
