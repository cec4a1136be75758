package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shaneomac1337/komplexaci-api/internal/livegame"
	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

// LiveGame is the plain pass-through route. It trusts the spectator
// signal as-is; clients that need staleness handling poll the optimized
// or immediate variants. The _cb cache-buster parameter is accepted and
// ignored.
func (h *Handler) LiveGame(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}

	c.Set("Cache-Control", "no-store")

	game, err := h.api.ActiveGame(puuid, region)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.JSON(fiber.Map{"inGame": false, "message": "Player is not currently in a game"})
		}
		return upstreamError(c, err)
	}

	return c.JSON(fiber.Map{"inGame": true, "gameInfo": game})
}

// LiveGameOptimized fronts full reconciliation with the result cache.
// Repeated polling for the same (puuid, region) within the TTL is served
// from memory with X-Cache: HIT. Rate-limited lookups are folded into a
// degraded 200 body and cached with the longer TTL so pollers back off
// naturally.
func (h *Handler) LiveGameOptimized(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}
	memberName := c.Query("memberName")

	key := livegame.CacheKey(puuid, region)
	if entry, ok := h.liveCache.Get(key); ok {
		c.Set("X-Cache", "HIT")
		return c.JSON(entry.Payload)
	}
	c.Set("X-Cache", "MISS")

	result, err := h.reconciler.Check(puuid, region)
	if err != nil {
		if riot.IsRateLimited(err) {
			body := fiber.Map{
				"inGame":      false,
				"gameInfo":    nil,
				"timestamp":   time.Now().UnixMilli(),
				"memberName":  memberName,
				"rateLimited": true,
			}
			h.liveCache.Set(key, body, livegame.RateLimitedTTL)
			return c.JSON(body)
		}
		return upstreamError(c, err)
	}

	body := fiber.Map{
		"inGame":     result.InGame,
		"gameInfo":   result.GameInfo,
		"timestamp":  time.Now().UnixMilli(),
		"memberName": memberName,
	}
	h.liveCache.Set(key, body, livegame.NormalTTL)
	return c.JSON(body)
}

// LiveGameImmediate bypasses the cache and always answers 200, folding
// upstream faults into body fields so naive polling clients never see a
// non-OK status.
func (h *Handler) LiveGameImmediate(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}
	memberName := c.Query("memberName")

	c.Set("Cache-Control", "no-store")

	result, err := h.reconciler.Check(puuid, region)
	if err != nil {
		return c.JSON(fiber.Map{
			"inGame":      false,
			"gameInfo":    nil,
			"timestamp":   time.Now().UnixMilli(),
			"memberName":  memberName,
			"rateLimited": riot.IsRateLimited(err),
			"error":       err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"inGame":     result.InGame,
		"gameInfo":   result.GameInfo,
		"timestamp":  time.Now().UnixMilli(),
		"memberName": memberName,
	})
}
