package riot

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	retry "github.com/codeGROOVE-dev/retry-go"
	"github.com/valyala/fasthttp"
)

// minRequestGap is the soft pacing floor between consecutive upstream
// calls. It does not enforce Riot's rate limits, it just avoids tripping
// them when a handler fans out several calls back to back.
const minRequestGap = 50 * time.Millisecond

// Client wraps authenticated calls to the Riot REST API. Failures are
// classified into APIError at this boundary; callers switch on ErrorKind.
type Client struct {
	apiKey string
	failed *FailedPUUIDCache

	paceMu   sync.Mutex
	lastCall time.Time
	minGap   time.Duration

	// do is fasthttp.Do in production, swapped in tests.
	do func(req *fasthttp.Request, resp *fasthttp.Response) error
}

// NewClient creates a client. failed may be nil to disable negative PUUID
// caching (used by tests that exercise the raw endpoints).
func NewClient(apiKey string, failed *FailedPUUIDCache) *Client {
	return &Client{
		apiKey: apiKey,
		failed: failed,
		minGap: minRequestGap,
		do:     fasthttp.Do,
	}
}

func (c *Client) pace() {
	c.paceMu.Lock()
	if wait := c.minGap - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
	c.paceMu.Unlock()
}

func (c *Client) get(endpoint string, out any) error {
	c.pace()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod("GET")
	req.SetRequestURI(endpoint)
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.do(req, resp); err != nil {
		return fmt.Errorf("riot api request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return classifyError(resp.StatusCode(), resp.Body())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal riot response: %w", err)
	}
	return nil
}

// AccountByRiotID resolves a gameName#tagLine pair to an account.
func (c *Client) AccountByRiotID(gameName, tagLine string) (*Account, error) {
	endpoint := fmt.Sprintf("https://%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		regionalHosts["EUROPE"], url.PathEscape(strings.TrimSpace(gameName)), url.PathEscape(strings.TrimSpace(tagLine)))

	var account Account
	if err := c.get(endpoint, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ResolveAccount looks up an account by display name, walking a bounded
// set of case variants because Riot IDs are case-sensitive while clan
// rosters are typed by hand. Transient upstream faults get one backoff
// retry per variant.
func (c *Client) ResolveAccount(gameName, tagLine string) (*Account, error) {
	var account *Account
	var lastErr error

	for _, v := range nameVariants(gameName, tagLine) {
		name, tag := v[0], v[1]
		err := retry.Do(
			func() error {
				a, err := c.AccountByRiotID(name, tag)
				if err != nil {
					return err
				}
				account = a
				return nil
			},
			retry.Attempts(2),
			retry.Delay(200*time.Millisecond),
			retry.DelayType(retry.BackOffDelay),
			retry.RetryIf(func(err error) bool { return KindOf(err) == KindServerError }),
			retry.LastErrorOnly(true),
		)
		if err == nil {
			return account, nil
		}
		lastErr = err
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func nameVariants(gameName, tagLine string) [][2]string {
	variants := [][2]string{
		{gameName, tagLine},
		{gameName, strings.ToUpper(tagLine)},
		{titleCase(gameName), strings.ToUpper(tagLine)},
		{strings.ToLower(gameName), strings.ToLower(tagLine)},
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		key := v[0] + "#" + v[1]
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// AccountByPUUID is the reverse lookup, used to backfill display names.
func (c *Client) AccountByPUUID(puuid string) (*Account, error) {
	endpoint := fmt.Sprintf("https://%s/riot/account/v1/accounts/by-puuid/%s",
		regionalHosts["EUROPE"], url.PathEscape(puuid))

	var account Account
	if err := c.get(endpoint, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SummonerByPUUID fetches summoner-v4 data on the player's platform.
func (c *Client) SummonerByPUUID(puuid, region string) (*Summoner, error) {
	endpoint := fmt.Sprintf("https://%s/lol/summoner/v4/summoners/by-puuid/%s",
		platformHost(region), url.PathEscape(puuid))

	var summoner Summoner
	if err := c.get(endpoint, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// LeagueEntries fetches all ranked queue entries for a player.
func (c *Client) LeagueEntries(puuid, region string) ([]LeagueEntry, error) {
	endpoint := fmt.Sprintf("https://%s/lol/league/v4/entries/by-puuid/%s",
		platformHost(region), url.PathEscape(puuid))

	var entries []LeagueEntry
	if err := c.get(endpoint, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// TopMasteries fetches the player's top champion masteries.
func (c *Client) TopMasteries(puuid, region string, count int) ([]ChampionMastery, error) {
	endpoint := fmt.Sprintf("https://%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		platformHost(region), url.PathEscape(puuid), count)

	var masteries []ChampionMastery
	if err := c.get(endpoint, &masteries); err != nil {
		return nil, err
	}
	return masteries, nil
}

// MatchIDs fetches the player's most recent match ids from the regional
// cluster. A puuid the endpoint recently rejected with a decryption fault
// fails fast from the negative cache instead of hitting the network.
func (c *Client) MatchIDs(puuid, region string, start, count int) ([]string, error) {
	if c.failed != nil && c.failed.Recent(puuid) {
		return nil, &APIError{
			Kind:       KindDecryptionFailed,
			StatusCode: 400,
			Message:    "Exception decrypting (cached failure)",
		}
	}

	endpoint := fmt.Sprintf("https://%s/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		regionalHost(region), url.PathEscape(puuid), start, count)

	var ids []string
	if err := c.get(endpoint, &ids); err != nil {
		if c.failed != nil && KindOf(err) == KindDecryptionFailed {
			c.failed.Record(puuid)
		}
		return nil, err
	}
	return ids, nil
}

// Match fetches full match-v5 details as a raw document for pass-through.
func (c *Client) Match(matchID, region string) (map[string]any, error) {
	endpoint := fmt.Sprintf("https://%s/lol/match/v5/matches/%s",
		regionalHost(region), url.PathEscape(strings.TrimSpace(matchID)))

	var match map[string]any
	if err := c.get(endpoint, &match); err != nil {
		return nil, err
	}
	return match, nil
}

// ActiveGame fetches the spectator-v5 view of a possibly-active game as a
// raw document. A 404 means the player is not in a game and surfaces as
// KindNotFound.
func (c *Client) ActiveGame(puuid, region string) (map[string]any, error) {
	endpoint := fmt.Sprintf("https://%s/lol/spectator/v5/active-games/by-summoner/%s",
		platformHost(region), url.PathEscape(puuid))

	var game map[string]any
	if err := c.get(endpoint, &game); err != nil {
		return nil, err
	}
	return game, nil
}
