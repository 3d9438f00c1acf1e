package api

import (
	"github.com/bilgisen/mrzgang/internal/cache"
	"github.com/bilgisen/mrzgang/internal/calendar"
	"github.com/bilgisen/mrzgang/internal/config"
	"github.com/bilgisen/mrzgang/internal/feed"
	"github.com/bilgisen/mrzgang/internal/middleware"
	"github.com/bilgisen/mrzgang/internal/models"
	"github.com/gofiber/fiber/v2"
)

// NewHandlersFromConfig wires the feed processor and calendar builder from cfg
func NewHandlersFromConfig(cfg *config.Config) *Handlers {
	fetcher := feed.NewFetcher(feed.FetcherOptions{
		URLTemplate: cfg.FeedURLTemplate,
		UserAgent:   cfg.FeedUserAgent,
		Timeout:     cfg.FeedTimeout,
		Revalidate:  cfg.FeedRevalidate,
	})

	builder := calendar.NewBuilder(calendar.Options{
		ProdID:             cfg.CalendarProdID,
		UIDDomain:          cfg.CalendarUIDDomain,
		FilePrefix:         cfg.CalendarFilePrefix,
		DefaultTitle:       cfg.CalendarDefaultTitle,
		DefaultDescription: cfg.CalendarDefaultDesc,
	})

	return NewHandlers(feed.NewProcessor(fetcher, cfg.FeedMaxResultsCap), builder, cfg.FeedRevalidate)
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, store cache.Store) {
	api := app.Group("/api")

	api.Get("/youtube",
		middleware.BindQuery[VideoQuery](),
		middleware.ResponseCache(store, handlers.revalidate),
		handlers.GetVideos,
	)
	api.Get("/ics", middleware.BindQuery[models.CalendarEvent](), handlers.GetCalendar)
	api.Post("/contact", middleware.BindBody[models.CollabRequest](), handlers.SubmitCollab)

	v1 := api.Group("/v1")
	v1.Get("/health", handlers.HealthCheck)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
