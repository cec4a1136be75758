package handlers

import (
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

// parseRiotID splits "GameName#TAG" into its parts.
func parseRiotID(riotID string) (gameName, tagLine string, ok bool) {
	name, tag, found := strings.Cut(strings.TrimSpace(riotID), "#")
	if !found || name == "" || tag == "" {
		return "", "", false
	}
	return name, tag, true
}

// Summoner returns the full profile bundle: account, summoner, ranked
// entries and top masteries. Results are cached; refresh=true bypasses
// the cache.
func (h *Handler) Summoner(c *fiber.Ctx) error {
	riotID := c.Query("riotId")
	region := strings.ToLower(strings.TrimSpace(c.Query("region")))

	gameName, tagLine, ok := parseRiotID(riotID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "riotId must be in GameName#TAG format"})
	}
	if !riot.ValidRegion(region) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid region"})
	}

	cacheKey := "summoner:" + strings.ToLower(riotID) + ":" + region
	if c.Query("refresh") != "true" {
		if x, found := h.profiles.Get(cacheKey); found {
			c.Set("X-Cache", "HIT")
			return c.JSON(x)
		}
	}
	c.Set("X-Cache", "MISS")
	c.Set("Cache-Control", "public, max-age=600")

	account, err := h.api.ResolveAccount(gameName, tagLine)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
		}
		return upstreamError(c, err)
	}

	summoner, err := h.api.SummonerByPUUID(account.PUUID, region)
	if err != nil {
		return upstreamError(c, err)
	}

	ranked, err := h.api.LeagueEntries(account.PUUID, region)
	if err != nil {
		// Ranked data is decorative on the profile page; log and move on.
		log.Printf("ranked entries lookup failed for %s: %v", account.PUUID, err)
		ranked = nil
	}

	mastery, err := h.api.TopMasteries(account.PUUID, region, 5)
	if err != nil {
		log.Printf("mastery lookup failed for %s: %v", account.PUUID, err)
		mastery = nil
	}
	h.annotateMastery(mastery)

	profile := fiber.Map{
		"account":  account,
		"summoner": summoner,
		"ranked":   ranked,
		"mastery":  mastery,
	}
	h.profiles.Set(cacheKey, profile, gocache.DefaultExpiration)
	return c.JSON(profile)
}

// SummonerByPUUID is the narrow variant for callers that already hold a
// puuid.
func (h *Handler) SummonerByPUUID(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}

	account, err := h.api.AccountByPUUID(puuid)
	if err != nil && !riot.IsNotFound(err) {
		return upstreamError(c, err)
	}

	summoner, err := h.api.SummonerByPUUID(puuid, region)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Summoner not found"})
		}
		return upstreamError(c, err)
	}

	return c.JSON(fiber.Map{"account": account, "summoner": summoner})
}

// PUUIDOnly resolves a riot id to its puuid without touching platform
// endpoints.
func (h *Handler) PUUIDOnly(c *fiber.Ctx) error {
	gameName, tagLine, ok := parseRiotID(c.Query("riotId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "riotId must be in GameName#TAG format"})
	}

	account, err := h.api.ResolveAccount(gameName, tagLine)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
		}
		return upstreamError(c, err)
	}

	return c.JSON(account)
}

// Matches returns recent match details. Detail lookups fan out with a
// bounded number of in-flight upstream calls.
func (h *Handler) Matches(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}

	start := c.QueryInt("start", 0)
	count := c.QueryInt("count", 5)
	if start < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start must not be negative"})
	}
	if count < 1 || count > 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "count must be between 1 and 20"})
	}

	ids, err := h.api.MatchIDs(puuid, region, start, count)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.JSON(fiber.Map{"matches": []any{}})
		}
		return upstreamError(c, err)
	}

	matches := make([]map[string]any, len(ids))
	var wg sync.WaitGroup
	sem := make(chan struct{}, 5)

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			match, err := h.api.Match(id, region)
			if err != nil {
				log.Printf("match details lookup failed for %s: %v", id, err)
				return
			}
			matches[i] = match
		}(i, id)
	}
	wg.Wait()

	out := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			out = append(out, m)
		}
	}

	c.Set("Cache-Control", "public, max-age=300")
	return c.JSON(fiber.Map{"matches": out})
}

// Mastery returns the player's top champion masteries annotated with
// champion names and images.
func (h *Handler) Mastery(c *fiber.Ctx) error {
	puuid, region, ok := requirePlayer(c)
	if !ok {
		return nil
	}

	count := c.QueryInt("count", 5)
	if count < 1 || count > 50 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "count must be between 1 and 50"})
	}

	mastery, err := h.api.TopMasteries(puuid, region, count)
	if err != nil {
		if riot.IsNotFound(err) {
			return c.JSON(fiber.Map{"mastery": []any{}})
		}
		return upstreamError(c, err)
	}
	h.annotateMastery(mastery)

	c.Set("Cache-Control", "public, max-age=600")
	return c.JSON(fiber.Map{"mastery": mastery})
}

func (h *Handler) annotateMastery(mastery []riot.ChampionMastery) {
	if h.champs == nil {
		return
	}
	for i := range mastery {
		if champ, found := h.champs.Champion(mastery[i].ChampionID); found {
			mastery[i].ChampionName = champ.Name
			mastery[i].ChampionImage = champ.Image
		}
	}
}
