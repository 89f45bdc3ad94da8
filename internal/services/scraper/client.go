// Package scraper fetches recommended rune setups for champions from public
// build sites. Results are best-effort: any failure degrades to "no runes".
package scraper

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/autopick/internal/storage"
)

const runesCacheTTL = 6 * time.Hour

// Client is the scraper client.
type Client struct {
	httpClient *http.Client
	cache      *storage.RedisClient
}

// NewClient creates a new scraper client.
func NewClient(cache *storage.RedisClient) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

// RecommendedRunes returns the ordered rune names of the most popular page
// for a champion and role: keystone plus primary minors first, then the
// secondary runes and stat shards.
func (c *Client) RecommendedRunes(champion, role string) ([]string, error) {
	normChamp := normalizeChampionName(champion)
	normRole := normalizeRole(role)

	cacheKey := fmt.Sprintf("runes:v1:%s:%s", normChamp, normRole)

	if c.cache != nil {
		if val, err := c.cache.Get(cacheKey); err == nil && val != "" {
			var names []string
			if err := json.Unmarshal([]byte(val), &names); err == nil {
				log.Printf("Rune cache hit for %s %s", champion, role)
				return names, nil
			}
		}
	}

	url := fmt.Sprintf("https://www.leagueofgraphs.com/champions/runes/%s/%s", normChamp, normRole)
	log.Printf("Scraping runes from %s", url)

	names, err := c.scrapeRunes(url)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && len(names) > 0 {
		payload, _ := json.Marshal(names)
		c.cache.Set(cacheKey, string(payload), runesCacheTTL)
	}

	return names, nil
}

// scrapeRunes pulls the active rune names out of the most popular page table.
func (c *Client) scrapeRunes(url string) ([]string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)

	// The first perksTableOverview is the most popular page. Inactive runes
	// in each row are grayed out with an opacity class; the selected ones
	// keep their full-color image whose alt text is the rune name.
	doc.Find("table.perksTableOverview").First().Find("td").Each(func(i int, cell *goquery.Selection) {
		class, _ := cell.Attr("class")
		if strings.Contains(class, "notActive") {
			return
		}
		cell.Find("img[alt]").Each(func(j int, img *goquery.Selection) {
			alt := strings.TrimSpace(img.AttrOr("alt", ""))
			if alt == "" || seen[alt] {
				return
			}
			seen[alt] = true
			names = append(names, alt)
		})
	})

	if len(names) == 0 {
		return nil, fmt.Errorf("no runes found on page")
	}

	// Keystone + 3 primary, 2 secondary, 3 shards at most.
	if len(names) > 9 {
		names = names[:9]
	}
	return names, nil
}

// normalizeRole maps config role keys to the site's lane slugs.
func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "top":
		return "top"
	case "jungle", "jg", "jung":
		return "jungle"
	case "mid", "middle":
		return "middle"
	case "bot", "bottom", "adc":
		return "adc"
	case "utility", "support", "supp", "sup":
		return "support"
	}
	return "middle"
}

// normalizeChampionName converts a champion name to the site's URL slug.
func normalizeChampionName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	specialCases := map[string]string{
		"aurelionsol":  "aurelionsol",
		"aurelion sol": "aurelionsol",
		"lee sin":      "leesin",
		"miss fortune": "missfortune",
		"jarvan iv":    "jarvaniv",
		"dr mundo":     "drmundo",
		"dr.mundo":     "drmundo",
		"twisted fate": "twistedfate",
		"tahm kench":   "tahmkench",
		"xin zhao":     "xinzhao",
		"kog'maw":      "kogmaw",
		"cho'gath":     "chogath",
		"kha'zix":      "khazix",
		"rek'sai":      "reksai",
		"vel'koz":      "velkoz",
		"kai'sa":       "kaisa",
		"k'sante":      "ksante",
		"bel'veth":     "belveth",
		"renata":       "renataglasc",
		"nunu&willump": "nunu",
		"master yi":    "masteryi",
		"monkeyking":   "wukong",
	}

	if mapped, ok := specialCases[name]; ok {
		return mapped
	}

	cleanName := strings.ReplaceAll(name, "'", "")
	cleanName = strings.ReplaceAll(cleanName, ".", "")
	cleanName = strings.ReplaceAll(cleanName, " ", "")
	if mapped, ok := specialCases[cleanName]; ok {
		return mapped
	}

	return regexp.MustCompile(`[^a-z0-9]`).ReplaceAllString(cleanName, "")
}
