package interest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	interestsvc "minevest-backend/internal/application/interest"
	"minevest-backend/internal/domain"
	"minevest-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInterestTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Financing{}, &domain.InterestRecord{}, &domain.InterestEvent{}))
	return &Handlers{
		Service: &interestsvc.Service{DB: db},
		Query:   &interestsvc.Query{DB: db},
	}, db
}

func newApp(h *Handlers, claims *middleware.InvestorClaims) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("investor", claims)
		}
		return c.Next()
	})
	g := app.Group("/investment-interest")
	g.Get("/aggregate/:financing_id/", h.GetAggregate)
	g.Get("/my-interest/:financing_id/", middleware.RequireAuth(), h.GetMyInterest)
	g.Post("/", middleware.RequireAuth(), h.ExpressInterest)
	g.Patch("/:id/update/", middleware.RequireAuth(), h.UpdateInterest)
	g.Delete("/:id/withdraw/", middleware.RequireAuth(), h.WithdrawInterest)
	g.Get("/:id/events/", middleware.RequireAuth(), h.GetEvents)
	return app
}

func investorClaims() *middleware.InvestorClaims {
	return &middleware.InvestorClaims{
		InvestorID: uuid.New().String(),
		FullName:   "Test Investor",
		Email:      "investor@example.com",
		Role:       domain.RoleInvestor,
	}
}

func seedFinancing(t *testing.T, db *gorm.DB, price string, sharesIssued int64, status string) *domain.Financing {
	fin := &domain.Financing{
		CompanyName: "Northern Copper Corp",
		RoundName:   "Series B",
		Status:      status,
	}
	if price != "" {
		p := decimal.RequireFromString(price)
		fin.PricePerShare = &p
	}
	if sharesIssued > 0 {
		fin.SharesIssued = &sharesIssued
	}
	require.NoError(t, db.Create(fin).Error)
	return fin
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestGetAggregate_Public(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 1_000_000, domain.FinancingAnnounced)
	app := newApp(h, nil) // no auth needed

	status, result := doJSON(t, app, "GET", "/investment-interest/aggregate/"+fin.FinancingID.String()+"/", nil)
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 0, result["total_interest_count"])
	assert.EqualValues(t, 0, result["total_shares_requested"])
	assert.EqualValues(t, 0, result["total_amount_interested"])
	assert.EqualValues(t, 0, result["percentage_filled"])
}

func TestGetAggregate_InvalidID(t *testing.T) {
	h, _ := setupInterestTest(t)
	app := newApp(h, nil)

	status, result := doJSON(t, app, "GET", "/investment-interest/aggregate/not-a-uuid/", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Please provide a valid financing id.", result["error"])
}

func TestGetAggregate_UnknownFinancing(t *testing.T) {
	h, _ := setupInterestTest(t)
	app := newApp(h, nil)

	status, result := doJSON(t, app, "GET", "/investment-interest/aggregate/"+uuid.New().String()+"/", nil)
	assert.Equal(t, 404, status)
	assert.NotEmpty(t, result["error"])
}

func TestMyInterest_RequiresAuth(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	app := newApp(h, nil)

	status, result := doJSON(t, app, "GET", "/investment-interest/my-interest/"+fin.FinancingID.String()+"/", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Authentication credentials were not provided.", result["detail"])
}

func TestMyInterest_Default(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	app := newApp(h, investorClaims())

	status, result := doJSON(t, app, "GET", "/investment-interest/my-interest/"+fin.FinancingID.String()+"/", nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, result["has_interest"])
	assert.Nil(t, result["interest_id"])
	assert.Nil(t, result["status"])
	assert.EqualValues(t, 0, result["shares_requested"])
	assert.EqualValues(t, 0, result["investment_amount"])
}

func TestExpressInterest_Flow(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 1_000_000, domain.FinancingAnnounced)
	claims := investorClaims()
	app := newApp(h, claims)

	status, created := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 1000,
	})
	require.Equal(t, 201, status)
	assert.EqualValues(t, 10_000, created["shares_requested"])
	assert.Equal(t, domain.InterestPending, created["status"])

	// Duplicate express from the same investor conflicts.
	status, result := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 500,
	})
	assert.Equal(t, 409, status)
	assert.Equal(t, "You have already expressed interest in this financing.", result["error"])

	// Aggregate reflects the single active interest.
	status, agg := doJSON(t, app, "GET", "/investment-interest/aggregate/"+fin.FinancingID.String()+"/", nil)
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 1, agg["total_interest_count"])
	assert.EqualValues(t, 10_000, agg["total_shares_requested"])
	assert.EqualValues(t, 1000, agg["total_amount_interested"])
	assert.EqualValues(t, 1, agg["percentage_filled"])
}

func TestExpressInterest_ZeroAmount(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	app := newApp(h, investorClaims())

	status, result := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 0,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Please enter a valid investment amount.", result["error"])
}

func TestExpressInterest_ClosedFinancing(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingClosed)
	app := newApp(h, investorClaims())

	status, result := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 1000,
	})
	assert.Equal(t, 422, status)
	assert.Equal(t, "This financing is no longer accepting investment interest.", result["error"])
}

func TestUpdateInterest_RoundTrip(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	claims := investorClaims()
	app := newApp(h, claims)

	status, created := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 1000,
	})
	require.Equal(t, 201, status)
	interestID := created["interest_id"].(string)

	status, result := doJSON(t, app, "PATCH", "/investment-interest/"+interestID+"/update/", map[string]interface{}{
		"investment_amount": 500,
	})
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 5000, result["shares_requested"])
	assert.EqualValues(t, 500, result["investment_amount"])
}

func TestWithdrawInterest_NotIdempotent(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	claims := investorClaims()
	app := newApp(h, claims)

	status, created := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 1000,
	})
	require.Equal(t, 201, status)
	interestID := created["interest_id"].(string)

	status, _ = doJSON(t, app, "DELETE", "/investment-interest/"+interestID+"/withdraw/", nil)
	assert.Equal(t, 200, status)

	status, result := doJSON(t, app, "DELETE", "/investment-interest/"+interestID+"/withdraw/", nil)
	assert.Equal(t, 409, status)
	assert.Equal(t, "This interest has been withdrawn and can no longer be changed.", result["error"])
}

func TestWithdrawInterest_UnknownID(t *testing.T) {
	h, _ := setupInterestTest(t)
	app := newApp(h, investorClaims())

	status, result := doJSON(t, app, "DELETE", "/investment-interest/"+uuid.New().String()+"/withdraw/", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "We could not find that interest record.", result["error"])
}

func TestGetEvents_OwnerOnly(t *testing.T) {
	h, db := setupInterestTest(t)
	fin := seedFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	owner := investorClaims()
	app := newApp(h, owner)

	status, created := doJSON(t, app, "POST", "/investment-interest/", map[string]interface{}{
		"financing_id":      fin.FinancingID.String(),
		"investment_amount": 1000,
	})
	require.Equal(t, 201, status)
	interestID := created["interest_id"].(string)

	req := httptest.NewRequest("GET", "/investment-interest/"+interestID+"/events/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var events []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventExpressed, events[0]["event_type"])

	// Another investor's token sees a 404, not the events.
	other := newApp(h, investorClaims())
	status, result := doJSON(t, other, "GET", "/investment-interest/"+interestID+"/events/", nil)
	assert.Equal(t, 404, status)
	assert.NotEmpty(t, result["error"])
}
