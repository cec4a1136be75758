// Package ddragon fetches champion static data from Riot's Data Dragon CDN
// and caches it, since champion id -> name mappings only change on patch
// days.
package ddragon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
)

const (
	versionsURL  = "https://ddragon.leagueoflegends.com/api/versions.json"
	championsURL = "https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/champion.json"

	cacheKey = "champions"
	cacheTTL = time.Hour
)

// Champion is the subset of Data Dragon champion data the API serves.
type Champion struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Source resolves numeric champion ids to names and images.
type Source struct {
	cache *gocache.Cache

	// do is fasthttp.Do in production, swapped in tests.
	do func(req *fasthttp.Request, resp *fasthttp.Response) error
}

// NewSource creates a read-through champion data source with an hourly
// refresh.
func NewSource() *Source {
	return &Source{
		cache: gocache.New(cacheTTL, 10*time.Minute),
		do:    fasthttp.Do,
	}
}

// Champion resolves a champion id. A failed refresh returns ok=false and
// callers degrade to ids without names.
func (s *Source) Champion(id int64) (Champion, bool) {
	champs, err := s.champions()
	if err != nil {
		return Champion{}, false
	}
	champ, ok := champs[id]
	return champ, ok
}

func (s *Source) champions() (map[int64]Champion, error) {
	if x, found := s.cache.Get(cacheKey); found {
		return x.(map[int64]Champion), nil
	}

	version, err := s.latestVersion()
	if err != nil {
		return nil, err
	}

	body, err := s.fetch(fmt.Sprintf(championsURL, version))
	if err != nil {
		return nil, err
	}

	var listing struct {
		Data map[string]struct {
			Key  string `json:"key"`
			Name string `json:"name"`
			Image struct {
				Full string `json:"full"`
			} `json:"image"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal champion data: %w", err)
	}

	champs := make(map[int64]Champion, len(listing.Data))
	for _, entry := range listing.Data {
		id, err := strconv.ParseInt(entry.Key, 10, 64)
		if err != nil {
			continue
		}
		champs[id] = Champion{
			Name:  entry.Name,
			Image: fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s", version, entry.Image.Full),
		}
	}

	s.cache.Set(cacheKey, champs, gocache.DefaultExpiration)
	return champs, nil
}

func (s *Source) latestVersion() (string, error) {
	body, err := s.fetch(versionsURL)
	if err != nil {
		return "", err
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("failed to unmarshal versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("empty version list from data dragon")
	}
	return versions[0], nil
}

func (s *Source) fetch(endpoint string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod("GET")
	req.SetRequestURI(endpoint)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := s.do(req, resp); err != nil {
		return nil, fmt.Errorf("data dragon request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("data dragon returned status code %d", resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
