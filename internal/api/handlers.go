package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/mrzgang/internal/calendar"
	"github.com/bilgisen/mrzgang/internal/feed"
	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/bilgisen/mrzgang/internal/middleware"
	"github.com/bilgisen/mrzgang/internal/models"
	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

// VideoQuery holds the query parameters of GET /api/youtube.
// MaxResults stays a string so that non-numeric values fall back to the default.
type VideoQuery struct {
	ChannelID  string `query:"channelId" validate:"required"`
	MaxResults string `query:"maxResults"`
}

type Handlers struct {
	videos     *feed.Processor
	calendar   *calendar.Builder
	revalidate time.Duration
}

func NewHandlers(videos *feed.Processor, builder *calendar.Builder, revalidate time.Duration) *Handlers {
	return &Handlers{
		videos:     videos,
		calendar:   builder,
		revalidate: revalidate,
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetVideos handles GET /api/youtube
func (h *Handlers) GetVideos(c *fiber.Ctx) error {
	q := c.Locals(middleware.QueryKey).(*VideoQuery)

	items, err := h.videos.FetchAndNormalize(c.UserContext(), q.ChannelID, feed.ParseMaxResults(q.MaxResults))
	if err != nil {
		return h.videoError(c, q.ChannelID, err)
	}

	if h.revalidate > 0 {
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(h.revalidate.Seconds())))
	}

	return c.JSON(models.VideoList{Items: items})
}

func (h *Handlers) videoError(c *fiber.Ctx, channelID string, err error) error {
	var upstreamErr *feed.UpstreamError

	switch {
	case errors.Is(err, feed.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing channelId",
		})

	case errors.As(err, &upstreamErr):
		return c.Status(upstreamErr.StatusCode).JSON(fiber.Map{
			"error":  "Failed to fetch YouTube RSS",
			"detail": upstreamErr.Body,
		})

	default:
		logger.Get().Error().
			Err(err).
			Str("channel_id", channelID).
			Msg("Error normalizing channel feed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read channel feed",
		})
	}
}

// GetCalendar handles GET /api/ics
func (h *Handlers) GetCalendar(c *fiber.Ctx) error {
	event := c.Locals(middleware.QueryKey).(*models.CalendarEvent)

	artifact, err := h.calendar.Build(*event)
	if errors.Is(err, calendar.ErrInvalidDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, artifact.MimeType)
	c.Set(fiber.HeaderContentDisposition, calendar.ContentDisposition(artifact))
	return c.SendString(artifact.Document)
}

// SubmitCollab handles POST /api/contact
func (h *Handlers) SubmitCollab(c *fiber.Ctx) error {
	req := c.Locals(middleware.BodyKey).(*models.CollabRequest)
	log := logger.Get()

	if req.IsSpam() {
		log.Warn().
			Str("ip", c.IP()).
			Msg("Dropping collaboration request caught by honeypot")
		return c.JSON(fiber.Map{"ok": true})
	}

	log.Info().
		Str("name", req.Name).
		Str("contact", req.Contact).
		Str("company", req.Company).
		Str("role", req.Role).
		Str("collab_type", req.CollabType).
		Str("city", req.City).
		Str("date", req.Date).
		Int("message_length", len(req.Message)).
		Msg("Received collaboration request")

	return c.JSON(fiber.Map{"ok": true})
}
