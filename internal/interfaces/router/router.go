package router

import (
	authsvc "minevest-backend/internal/application/auth"
	finsvc "minevest-backend/internal/application/financings"
	interestsvc "minevest-backend/internal/application/interest"
	"minevest-backend/internal/config"
	"minevest-backend/internal/domain"
	"minevest-backend/internal/infrastructure/database"
	authhandler "minevest-backend/internal/interfaces/handlers/auth"
	finhandler "minevest-backend/internal/interfaces/handlers/financings"
	healthhandler "minevest-backend/internal/interfaces/handlers/health"
	interesthandler "minevest-backend/internal/interfaces/handlers/interest"
	"minevest-backend/internal/middleware"

	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix:     cfg.FrontendURLEndsWith,
		DevPassword:       cfg.DevPassword,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.BearerAuth(rdb))
		app.Use(middleware.HealthMarker(rdb))
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	if db != nil && rdb != nil {
		// Auth
		as := &authsvc.Service{DB: db, Rdb: rdb, TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour}
		ah := &authhandler.Handlers{Service: as}
		ag := app.Group("/auth")
		ag.Post("/register/", ah.Register)
		ag.Post("/login/", ah.Login)
		ag.Get("/me/", middleware.RequireAuth(), ah.Me)
		ag.Delete("/logout/", middleware.RequireAuth(), ah.Logout)

		// Financings — reads are public (marketing pages), writes are admin.
		fs := &finsvc.Service{DB: db}
		fh := &finhandler.Handlers{Service: fs}
		fg := app.Group("/financings")
		fg.Get("/", fh.List)
		fg.Post("/", middleware.RequireRole(domain.RoleAdmin), fh.Create)
		fg.Get("/:financing_id/", fh.Get)
		fg.Patch("/:financing_id/status/", middleware.RequireRole(domain.RoleAdmin), fh.UpdateStatus)

		// Investment interest ledger. Aggregate is public; the rest needs a bearer.
		is := &interestsvc.Service{DB: db}
		iq := &interestsvc.Query{DB: db}
		ih := &interesthandler.Handlers{Service: is, Query: iq}
		ig := app.Group("/investment-interest")
		ig.Get("/aggregate/:financing_id/", ih.GetAggregate)
		ig.Get("/my-interest/:financing_id/", middleware.RequireAuth(), ih.GetMyInterest)
		ig.Post("/", middleware.RequireAuth(), ih.ExpressInterest)
		ig.Patch("/:id/update/", middleware.RequireAuth(), ih.UpdateInterest)
		ig.Delete("/:id/withdraw/", middleware.RequireAuth(), ih.WithdrawInterest)
		ig.Get("/:id/events/", middleware.RequireAuth(), ih.GetEvents)
	}

	return app, db, rdb, nil
}
