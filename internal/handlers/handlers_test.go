package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/shaneomac1337/komplexaci-api/internal/handlers"
	"github.com/shaneomac1337/komplexaci-api/internal/livegame"
	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

type fakeRiot struct {
	account    *riot.Account
	accountErr error
	summoner   *riot.Summoner
	ranked     []riot.LeagueEntry
	mastery    []riot.ChampionMastery
	game       map[string]any
	gameErr    error
	matchIDs   []string
	matchErr   error
	matches    map[string]map[string]any

	calls int
}

func (f *fakeRiot) ResolveAccount(gameName, tagLine string) (*riot.Account, error) {
	f.calls++
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeRiot) AccountByPUUID(puuid string) (*riot.Account, error) {
	f.calls++
	return f.account, f.accountErr
}

func (f *fakeRiot) SummonerByPUUID(puuid, region string) (*riot.Summoner, error) {
	f.calls++
	return f.summoner, nil
}

func (f *fakeRiot) LeagueEntries(puuid, region string) ([]riot.LeagueEntry, error) {
	f.calls++
	return f.ranked, nil
}

func (f *fakeRiot) TopMasteries(puuid, region string, count int) ([]riot.ChampionMastery, error) {
	f.calls++
	return f.mastery, nil
}

func (f *fakeRiot) MatchIDs(puuid, region string, start, count int) ([]string, error) {
	f.calls++
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	return f.matchIDs, nil
}

func (f *fakeRiot) Match(matchID, region string) (map[string]any, error) {
	f.calls++
	return f.matches[matchID], nil
}

func (f *fakeRiot) ActiveGame(puuid, region string) (map[string]any, error) {
	f.calls++
	if f.gameErr != nil {
		return nil, f.gameErr
	}
	return f.game, nil
}

func newTestApp(f *fakeRiot) (*fiber.App, *livegame.MemoryStore) {
	store := livegame.NewMemoryStore(0)
	reconciler := livegame.NewReconciler(f, nil)
	h := handlers.New(f, reconciler, store, nil)

	app := fiber.New()
	h.Register(app)
	return app, store
}

func getJSON(t *testing.T, app *fiber.App, url string) (int, map[string]any, http.Header) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("app.Test(%s): %v", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return resp.StatusCode, body, resp.Header
}

func spectatorGame(gameID, queueID int64) map[string]any {
	return map[string]any{
		"gameId":            float64(gameID),
		"gameQueueConfigId": float64(queueID),
		"platformId":        "EUW1",
		"participants": []any{
			map[string]any{"puuid": "p1", "championId": float64(266)},
		},
	}
}

func TestLiveGameValidation(t *testing.T) {
	app, _ := newTestApp(&fakeRiot{})

	status, _, _ := getJSON(t, app, "/api/lol/live-game?region=euw1")
	if status != 400 {
		t.Errorf("missing puuid: status = %d, want 400", status)
	}

	status, _, _ = getJSON(t, app, "/api/lol/live-game?puuid=p1&region=narnia")
	if status != 400 {
		t.Errorf("bad region: status = %d, want 400", status)
	}
}

func TestLiveGamePassThrough(t *testing.T) {
	f := &fakeRiot{game: spectatorGame(7001, 420)}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game?puuid=p1&region=euw1&_cb=123")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if body["inGame"] != true {
		t.Error("pass-through should trust the spectator signal")
	}
	if f.calls != 1 {
		t.Errorf("calls = %d, pass-through must not cross-check", f.calls)
	}
}

func TestLiveGameNotFound(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindNotFound, StatusCode: 404}}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game?puuid=p1&region=euw1")
	if status != 200 {
		t.Fatalf("status = %d, 404 upstream is a valid negative", status)
	}
	if body["inGame"] != false {
		t.Error("inGame should be false")
	}
}

func TestLiveGameRateLimitStatus(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindRateLimited, StatusCode: 429}}
	app, _ := newTestApp(f)

	status, _, _ := getJSON(t, app, "/api/lol/live-game?puuid=p1&region=euw1")
	if status != 429 {
		t.Errorf("status = %d, plain route surfaces a genuine 429", status)
	}
}

// End-to-end scenario: active ranked game, not present in match history.
func TestLiveGameImmediateConfirmed(t *testing.T) {
	f := &fakeRiot{
		game:     spectatorGame(7001, 420),
		matchIDs: []string{"EUW1_6998", "EUW1_6999", "EUW1_7000"},
	}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game-immediate?puuid=p1&region=euw1&memberName=Zdenda")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if body["inGame"] != true {
		t.Fatal("expected inGame true")
	}
	gameInfo := body["gameInfo"].(map[string]any)
	if gameInfo["queueTypeName"] != "Ranked Solo/Duo" {
		t.Errorf("queueTypeName = %v", gameInfo["queueTypeName"])
	}
	if body["memberName"] != "Zdenda" {
		t.Errorf("memberName = %v", body["memberName"])
	}
}

// End-to-end scenario: spectator data is stale, game already in history.
func TestLiveGameImmediateStale(t *testing.T) {
	f := &fakeRiot{
		game:     spectatorGame(7001, 420),
		matchIDs: []string{"EUW1_7001"},
	}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game-immediate?puuid=p1&region=euw1")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if body["inGame"] != false {
		t.Error("stale game should report not in game")
	}
	if body["gameInfo"] != nil {
		t.Error("gameInfo must be null for a stale game")
	}
}

// End-to-end scenario: custom game (queue 0) never counts as live.
func TestLiveGameImmediateCustomDenied(t *testing.T) {
	f := &fakeRiot{
		game:     spectatorGame(123, 0),
		matchIDs: []string{"EUW1_999"},
	}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game-immediate?puuid=p1&region=euw1")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if body["inGame"] != false {
		t.Error("custom games must not count as live")
	}
	if f.calls != 1 {
		t.Errorf("calls = %d, denied queue must skip the cross-check", f.calls)
	}
}

func TestLiveGameImmediateAlways200(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindRateLimited, StatusCode: 429}}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game-immediate?puuid=p1&region=euw1")
	if status != 200 {
		t.Errorf("status = %d, immediate route folds errors into the body", status)
	}
	if body["rateLimited"] != true {
		t.Error("rateLimited flag should be set")
	}
}

// End-to-end scenario: optimized route caches and marks HIT on repeat.
func TestLiveGameOptimizedCaching(t *testing.T) {
	f := &fakeRiot{
		game:     spectatorGame(7001, 420),
		matchIDs: []string{"EUW1_7000"},
	}
	app, _ := newTestApp(f)

	status, first, headers := getJSON(t, app, "/api/lol/live-game-optimized?puuid=p1&region=euw1&memberName=Zdenda")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if got := headers.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	callsAfterFirst := f.calls

	_, second, headers := getJSON(t, app, "/api/lol/live-game-optimized?puuid=p1&region=euw1&memberName=Zdenda")
	if got := headers.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if f.calls != callsAfterFirst {
		t.Errorf("calls grew from %d to %d, hit must not touch upstream", callsAfterFirst, f.calls)
	}
	if first["timestamp"] != second["timestamp"] {
		t.Error("hit must return the cached payload verbatim")
	}
}

func TestLiveGameOptimizedRateLimitedTTL(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindRateLimited, StatusCode: 429}}
	app, store := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/live-game-optimized?puuid=p1&region=euw1")
	if status != 200 {
		t.Fatalf("status = %d, rate limit folds into a 200 body", status)
	}
	if body["rateLimited"] != true {
		t.Error("rateLimited flag should be set")
	}

	entry, ok := store.Get(livegame.CacheKey("p1", "euw1"))
	if !ok {
		t.Fatal("degraded result should be cached")
	}
	if entry.TTL != livegame.RateLimitedTTL {
		t.Errorf("TTL = %v, want the longer rate-limited TTL", entry.TTL)
	}
}

func TestSummonerBundle(t *testing.T) {
	f := &fakeRiot{
		account:  &riot.Account{PUUID: "abc", GameName: "Faker", TagLine: "KR1"},
		summoner: &riot.Summoner{PUUID: "abc", SummonerLevel: 500},
		ranked:   []riot.LeagueEntry{{QueueType: "RANKED_SOLO_5x5", Tier: "CHALLENGER"}},
		mastery:  []riot.ChampionMastery{{ChampionID: 266, ChampionPoints: 100000}},
	}
	app, _ := newTestApp(f)

	status, body, headers := getJSON(t, app, "/api/lol/summoner?riotId=Faker%23KR1&region=kr")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	account := body["account"].(map[string]any)
	if account["puuid"] != "abc" {
		t.Errorf("account = %v", account)
	}
	if headers.Get("X-Cache") != "MISS" {
		t.Errorf("first lookup X-Cache = %q", headers.Get("X-Cache"))
	}

	// Second lookup is served from the profile cache.
	callsAfterFirst := f.calls
	_, _, headers = getJSON(t, app, "/api/lol/summoner?riotId=Faker%23KR1&region=kr")
	if headers.Get("X-Cache") != "HIT" {
		t.Errorf("second lookup X-Cache = %q", headers.Get("X-Cache"))
	}
	if f.calls != callsAfterFirst {
		t.Error("cached profile must not touch upstream")
	}

	// refresh=true bypasses the cache.
	_, _, _ = getJSON(t, app, "/api/lol/summoner?riotId=Faker%23KR1&region=kr&refresh=true")
	if f.calls == callsAfterFirst {
		t.Error("refresh must bypass the profile cache")
	}
}

func TestSummonerValidation(t *testing.T) {
	app, _ := newTestApp(&fakeRiot{})

	status, _, _ := getJSON(t, app, "/api/lol/summoner?riotId=NoTag&region=euw1")
	if status != 400 {
		t.Errorf("malformed riotId: status = %d", status)
	}

	status, _, _ = getJSON(t, app, "/api/lol/summoner?riotId=Faker%23KR1&region=mars")
	if status != 400 {
		t.Errorf("bad region: status = %d", status)
	}
}

func TestSummonerNotFound(t *testing.T) {
	f := &fakeRiot{accountErr: &riot.APIError{Kind: riot.KindNotFound, StatusCode: 404}}
	app, _ := newTestApp(f)

	status, _, _ := getJSON(t, app, "/api/lol/summoner?riotId=Ghost%23EUW&region=euw1")
	if status != 404 {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestMatchesCountBounds(t *testing.T) {
	app, _ := newTestApp(&fakeRiot{})

	for _, url := range []string{
		"/api/lol/matches?puuid=p1&region=euw1&count=0",
		"/api/lol/matches?puuid=p1&region=euw1&count=21",
		"/api/lol/matches?puuid=p1&region=euw1&start=-1",
	} {
		status, _, _ := getJSON(t, app, url)
		if status != 400 {
			t.Errorf("%s: status = %d, want 400", url, status)
		}
	}
}

func TestMatches(t *testing.T) {
	f := &fakeRiot{
		matchIDs: []string{"EUW1_1", "EUW1_2"},
		matches: map[string]map[string]any{
			"EUW1_1": {"metadata": map[string]any{"matchId": "EUW1_1"}},
			"EUW1_2": {"metadata": map[string]any{"matchId": "EUW1_2"}},
		},
	}
	app, _ := newTestApp(f)

	status, body, _ := getJSON(t, app, "/api/lol/matches?puuid=p1&region=euw1&count=2")
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	matches := body["matches"].([]any)
	if len(matches) != 2 {
		t.Errorf("matches = %d, want 2", len(matches))
	}
}

func TestMasteryCountBounds(t *testing.T) {
	app, _ := newTestApp(&fakeRiot{})

	status, _, _ := getJSON(t, app, "/api/lol/mastery?puuid=p1&region=euw1&count=51")
	if status != 400 {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestUpstreamAuthError(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindAuthInvalid, StatusCode: 403}}
	app, _ := newTestApp(f)

	status, _, _ := getJSON(t, app, "/api/lol/live-game?puuid=p1&region=euw1")
	if status != 403 {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestUpstreamUnavailable(t *testing.T) {
	f := &fakeRiot{gameErr: &riot.APIError{Kind: riot.KindServerError, StatusCode: 502}}
	app, _ := newTestApp(f)

	status, _, _ := getJSON(t, app, "/api/lol/live-game?puuid=p1&region=euw1")
	if status != 503 {
		t.Errorf("status = %d, want 503", status)
	}
}
