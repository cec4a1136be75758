// Package livegame decides whether a spectator-reported game can be
// trusted. The spectator endpoint keeps reporting a game as active for a
// while after it ends, so an "in game" signal is cross-checked against the
// player's recent match history before the site shows it.
package livegame

import (
	"log"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/shaneomac1337/komplexaci-api/internal/ddragon"
	"github.com/shaneomac1337/komplexaci-api/internal/riot"
)

// recentMatchCount is how many finished matches are checked for the
// spectator-reported game id. Stale spectator data trails the real game
// end by minutes at most, so the last few matches are enough.
const recentMatchCount = 5

// API is the slice of the Riot client the reconciler needs.
type API interface {
	ActiveGame(puuid, region string) (map[string]any, error)
	MatchIDs(puuid, region string, start, count int) ([]string, error)
}

// ChampionSource resolves champion ids for participant enrichment.
type ChampionSource interface {
	Champion(id int64) (ddragon.Champion, bool)
}

// Result is the reconciled live-game answer. GameInfo is nil whenever
// InGame is false.
type Result struct {
	InGame   bool           `json:"inGame"`
	GameInfo map[string]any `json:"gameInfo"`
}

// Reconciler cross-checks spectator data against match history.
type Reconciler struct {
	api    API
	champs ChampionSource
}

// NewReconciler creates a reconciler. champs may be nil; enrichment then
// degrades to raw champion ids.
func NewReconciler(api API, champs ChampionSource) *Reconciler {
	return &Reconciler{api: api, champs: champs}
}

// Check determines whether the player is in a trustworthy active game.
//
// A spectator 404 is the trusted negative. Custom/practice games are
// excluded outright. For everything else the spectator game id is looked
// up in the player's recent match ids: a hit means the game already ended
// and the spectator data is stale. If the cross-check itself fails the
// spectator signal is trusted as-is (fail open).
func (r *Reconciler) Check(puuid, region string) (Result, error) {
	raw, err := r.api.ActiveGame(puuid, region)
	if err != nil {
		if riot.IsNotFound(err) {
			return Result{InGame: false}, nil
		}
		return Result{}, err
	}

	var game riot.SpectatorGame
	if err := mapstructure.WeakDecode(raw, &game); err != nil {
		return Result{}, err
	}

	if riot.QueueDenied(game.GameQueueConfigID) {
		return Result{InGame: false}, nil
	}

	ids, err := r.api.MatchIDs(puuid, region, 0, recentMatchCount)
	if err != nil {
		// Verification is impossible; trust the spectator signal rather
		// than hide a game that may well be running.
		log.Printf("live-game cross-check failed for %s (%s): %v", puuid, region, err)
		r.enrich(raw, &game)
		return Result{InGame: true, GameInfo: raw}, nil
	}

	ended := riot.MatchIDPrefix(region) + "_" + strconv.FormatInt(game.GameID, 10)
	for _, id := range ids {
		if id == ended {
			return Result{InGame: false}, nil
		}
	}

	r.enrich(raw, &game)
	return Result{InGame: true, GameInfo: raw}, nil
}

// enrich annotates the raw spectator document with a queue label and
// per-participant champion names. Enrichment is best-effort.
func (r *Reconciler) enrich(raw map[string]any, game *riot.SpectatorGame) {
	raw["queueTypeName"] = riot.QueueName(game.GameQueueConfigID)

	if r.champs == nil {
		return
	}
	participants, ok := raw["participants"].([]any)
	if !ok {
		return
	}
	for _, p := range participants {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		var part riot.SpectatorParticipant
		if err := mapstructure.WeakDecode(pm, &part); err != nil {
			continue
		}
		if champ, found := r.champs.Champion(part.ChampionID); found {
			pm["championName"] = champ.Name
			pm["championImage"] = champ.Image
		}
	}
}
