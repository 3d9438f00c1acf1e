package middleware

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/bilgisen/mrzgang/internal/cache"
	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/bilgisen/mrzgang/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// HeaderXCache reports whether a response came from the response cache
const HeaderXCache = "X-Cache"

type cachedResponse struct {
	Status       int    `json:"status"`
	ContentType  string `json:"content_type"`
	CacheControl string `json:"cache_control,omitempty"`
	Body         []byte `json:"body"`
}

// ResponseCache serves repeated GET requests from store for ttl. Only 200
// responses are stored. Store failures are logged and the request falls
// through to the handler.
func ResponseCache(store cache.Store, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ttl <= 0 || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		log := logger.Get()
		key := "resp:" + utils.Hash(c.Path()+"?"+string(c.Request().URI().QueryString()))

		raw, err := store.Get(c.UserContext(), key)
		if err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err != nil {
				log.Warn().Err(err).Str("path", c.Path()).Msg("Discarding unreadable cache entry")
			} else {
				return sendCached(c, cached)
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("path", c.Path()).Msg("Response cache lookup failed")
		}

		c.Set(HeaderXCache, "MISS")
		if err := c.Next(); err != nil {
			return err
		}

		resp := c.Response()
		if resp.StatusCode() != fiber.StatusOK {
			return nil
		}

		entry, err := json.Marshal(cachedResponse{
			Status:       resp.StatusCode(),
			ContentType:  string(resp.Header.ContentType()),
			CacheControl: string(resp.Header.Peek(fiber.HeaderCacheControl)),
			Body:         append([]byte(nil), resp.Body()...),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to encode cache entry")
			return nil
		}
		if err := store.Set(c.UserContext(), key, entry, ttl); err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("Response cache store failed")
		}
		return nil
	}
}

func sendCached(c *fiber.Ctx, cached cachedResponse) error {
	c.Set(HeaderXCache, "HIT")
	c.Set(fiber.HeaderContentType, cached.ContentType)
	if cached.CacheControl != "" {
		c.Set(fiber.HeaderCacheControl, cached.CacheControl)
	}
	return c.Status(cached.Status).Send(cached.Body)
}
