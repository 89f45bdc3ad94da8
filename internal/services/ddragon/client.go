// Package ddragon fetches champion and rune reference data from Riot's
// public Data Dragon and Community Dragon CDNs.
package ddragon

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/autopick/internal/storage"
)

const (
	versionsURL     = "https://ddragon.leagueoflegends.com/api/versions.json"
	championsURLFmt = "https://ddragon.leagueoflegends.com/cdn/%s/data/%s/champion.json"
	runesURLFmt     = "https://ddragon.leagueoflegends.com/cdn/%s/data/%s/runesReforged.json"
	cdragonPerksURL = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/perks.json"

	cacheTTL = 24 * time.Hour
)

// Client fetches reference data, with an optional Redis cache in front of the
// CDNs. Reference data is immutable per patch, so a cache hit is always safe.
type Client struct {
	httpClient *http.Client
	cache      *storage.RedisClient
	locale     string
	version    string // lazy loaded
}

// NewClient creates a reference data client.
func NewClient(cache *storage.RedisClient, locale string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		locale:     locale,
	}
}

// fetch gets a URL through the cache.
func (c *Client) fetch(url, cacheKey string) ([]byte, error) {
	if c.cache != nil && cacheKey != "" {
		if cached, err := c.cache.Get(cacheKey); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CDN error %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.cache != nil && cacheKey != "" {
		if err := c.cache.Set(cacheKey, string(body), cacheTTL); err != nil {
			log.Printf("Failed to cache %s: %v", cacheKey, err)
		}
	}
	return body, nil
}

// Version returns the current Data Dragon version (lazy loaded once).
func (c *Client) Version() (string, error) {
	if c.version != "" {
		return c.version, nil
	}

	body, err := c.fetch(versionsURL, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil || len(versions) == 0 {
		return "", fmt.Errorf("failed to parse versions.json")
	}

	c.version = versions[0]
	return c.version, nil
}

// ChampionIDs returns the champion internal-name to numeric-id map.
func (c *Client) ChampionIDs() (map[string]int, error) {
	version, err := c.Version()
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(championsURLFmt, version, c.locale)
	body, err := c.fetch(url, "ddragon:champions:"+version)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}

	var file championFile
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("failed to parse champion.json: %w", err)
	}

	ids := make(map[string]int, len(file.Data))
	for name, champ := range file.Data {
		id, err := strconv.Atoi(champ.Key)
		if err != nil {
			log.Printf("Champion %s has non-numeric key %q, skipping", name, champ.Key)
			continue
		}
		ids[name] = id
	}
	return ids, nil
}

// RuneTrees returns the full rune catalog.
func (c *Client) RuneTrees() ([]RuneTree, error) {
	version, err := c.Version()
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(runesURLFmt, version, c.locale)
	body, err := c.fetch(url, "ddragon:runes:"+version)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runes: %w", err)
	}

	var trees []RuneTree
	if err := json.Unmarshal(body, &trees); err != nil {
		return nil, fmt.Errorf("failed to parse runesReforged.json: %w", err)
	}
	return trees, nil
}

// StatPerks returns the current stat shard name-to-id assignments from
// Community Dragon, expanded to the lookup aliases the rune resolver uses.
func (c *Client) StatPerks() (map[string]int, error) {
	body, err := c.fetch(cdragonPerksURL, "cdragon:perks")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stat perks: %w", err)
	}

	var perks []cdragonPerk
	if err := json.Unmarshal(body, &perks); err != nil {
		return nil, fmt.Errorf("failed to parse perks.json: %w", err)
	}

	stats := make(map[string]int)
	for _, perk := range perks {
		if perk.ID < 5001 || perk.ID > 5013 {
			continue
		}
		for _, alias := range statPerkAliases(perk.ID) {
			stats[alias] = perk.ID
		}
	}
	return stats, nil
}

// statPerkAliases maps a stat shard id to the config-facing names it answers
// to, covering every slot the shard appears in plus legacy shards.
func statPerkAliases(id int) []string {
	switch id {
	case 5008: // Adaptive Force (offense + flex)
		return []string{"adaptive force", "adaptive force flex"}
	case 5005: // Attack Speed (offense)
		return []string{"attack speed"}
	case 5007: // Ability Haste (offense)
		return []string{"ability haste"}
	case 5010: // Movement Speed (flex)
		return []string{"movement speed", "move speed"}
	case 5001: // Health Scaling (flex + defense)
		return []string{"health scaling", "health scaling def"}
	case 5011: // Flat Health (defense)
		return []string{"health"}
	case 5013: // Tenacity and Slow Resist (defense)
		return []string{"tenacity", "tenacity and slow resist"}
	case 5002: // Armor (legacy)
		return []string{"armor"}
	case 5003: // Magic Resist (legacy)
		return []string{"magic resist"}
	case 5012: // Armor and MR scaling (legacy)
		return []string{"armor mr", "resist scaling"}
	}
	return nil
}
