// Package bot wires the champion select engine to the League client: it
// bootstraps reference data on connect, subscribes to session and ready-check
// events, and dispatches them to the engine one at a time.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/autopick/internal/champselect"
	"github.com/autopick/internal/config"
	"github.com/autopick/internal/data"
	"github.com/autopick/internal/lcu"
	"github.com/autopick/internal/services/ddragon"
	"github.com/autopick/internal/services/scraper"
	"github.com/autopick/internal/storage"
)

// Bot owns the client connection and the engine for one process lifetime.
type Bot struct {
	cfg     *config.Config
	client  *lcu.Client
	creds   lcu.Credentials
	socket  *lcu.Socket
	engine  *champselect.Engine
	catalog *data.Catalog
	ddragon *ddragon.Client
}

// New locates the running client and builds the engine. Fails when no
// lockfile can be found, i.e. the client is not running.
func New(cfg *config.Config, lists *config.Lists) (*Bot, error) {
	lockfile, err := lcu.FindLockfile(cfg.LockfilePath)
	if err != nil {
		return nil, err
	}
	creds, err := lcu.ReadLockfile(lockfile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client credentials: %w", err)
	}
	log.Printf("Found client on port %d", creds.Port)

	cache := storage.NewRedisClient(cfg.RedisURL, cfg.RedisKeyPrefix)
	catalog := data.NewCatalog()
	client := lcu.NewClient(creds)

	engine := champselect.New(client, catalog, lists)
	engine.SetRuneSource(scraper.NewClient(cache))

	return &Bot{
		cfg:     cfg,
		client:  client,
		creds:   creds,
		engine:  engine,
		catalog: catalog,
		ddragon: ddragon.NewClient(cache, cfg.DDragonLocale),
	}, nil
}

// Start loads reference data, connects the event socket and begins
// dispatching. Events are handled sequentially on a single goroutine.
func (b *Bot) Start() error {
	b.bootstrapReferenceData()

	socket, err := lcu.DialSocket(b.creds)
	if err != nil {
		return err
	}
	b.socket = socket

	if err := socket.Subscribe(lcu.TopicChampSelectSession, b.onChampSelect); err != nil {
		return err
	}
	if err := socket.Subscribe(lcu.TopicReadyCheck, b.onReadyCheck); err != nil {
		return err
	}

	go b.listen()
	return nil
}

// Stop closes the event socket, ending the dispatch loop.
func (b *Bot) Stop() error {
	if b.socket == nil {
		return nil
	}
	return b.socket.Close()
}

// Status exposes the engine snapshot for the health server.
func (b *Bot) Status() champselect.Status {
	return b.engine.Status()
}

// bootstrapReferenceData loads champion and rune catalogs. Each fetch
// failure is logged and the dependent feature degrades: champion resolution
// misses everything, rune setup becomes a no-op.
func (b *Bot) bootstrapReferenceData() {
	champions, err := b.ddragon.ChampionIDs()
	if err != nil {
		log.Printf("Failed to load champion data: %v", err)
	} else {
		b.catalog.SetChampions(champions)
		log.Printf("Loaded %d champions", len(champions))
	}

	trees, err := b.ddragon.RuneTrees()
	if err != nil {
		log.Printf("Failed to load runes data: %v", err)
	} else {
		b.catalog.SetRuneTrees(trees)
		log.Printf("Loaded %d rune trees", len(trees))
	}

	stats, err := b.ddragon.StatPerks()
	if err != nil {
		log.Printf("Failed to load stat runes, using fallback values: %v", err)
	} else {
		b.catalog.MergeStatRunes(stats)
		log.Printf("Updated stat runes from Community Dragon: %d known", b.catalog.StatRuneCount())
	}
}

// listen blocks on the socket until disconnect. Per policy the disconnect is
// only logged; the process keeps running until signalled.
func (b *Bot) listen() {
	err := b.socket.Listen()
	log.Printf("The client connection closed: %v", err)
}

// onChampSelect handles session create/update events.
func (b *Bot) onChampSelect(ev lcu.Event) {
	if ev.EventType != "Create" && ev.EventType != "Update" {
		return
	}

	var sess champselect.Session
	if err := json.Unmarshal(ev.Data, &sess); err != nil {
		log.Printf("Malformed session snapshot: %v", err)
		return
	}

	b.engine.HandleSession(context.Background(), &sess)
}

// onReadyCheck accepts new ready checks and resets the engine cycle so the
// next champion select starts with clean cursors and prepick state.
func (b *Bot) onReadyCheck(ev lcu.Event) {
	if ev.EventType != "Update" {
		return
	}

	var rc champselect.ReadyCheck
	if err := json.Unmarshal(ev.Data, &rc); err != nil {
		log.Printf("Malformed ready check: %v", err)
		return
	}

	if rc.State != "InProgress" || rc.PlayerResponse != "None" {
		return
	}

	if err := b.client.AcceptReadyCheck(context.Background()); err != nil {
		log.Printf("Failed to accept ready check: %v", err)
		return
	}

	b.engine.ResetCycle()
	log.Println("Queue accepted, reset prepick status")
}
