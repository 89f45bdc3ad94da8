// AutoPick - champion select automation for the League client.
// Reacts to client push events to ban, pick and set loadouts automatically.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/autopick/internal/bot"
	"github.com/autopick/internal/config"
	"github.com/autopick/pkg/healthcheck"
)

// exitConfigError signals a missing or invalid pick/ban configuration.
const exitConfigError = 2

func init() {
	// The engine is a single-threaded event loop; keep the runtime small.
	debug.SetGCPercent(50)
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50MB
	runtime.GOMAXPROCS(1)
}

func main() {
	healthFlag := flag.Bool("health", false, "Run health check")
	flag.Parse()

	if *healthFlag {
		if err := runHealthCheck(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)
	log.Println("Starting AutoPick...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	lists, err := config.LoadLists(cfg.ConfigPath)
	if err != nil {
		log.Printf("Error loading %s: %v", cfg.ConfigPath, err)
		log.Println("Please ensure config.json exists with valid champions and bans configuration")
		os.Exit(exitConfigError)
	}
	if err := lists.Validate(); err != nil {
		log.Printf("Config invalid: %v", err)
		os.Exit(exitConfigError)
	}

	picker, err := bot.New(cfg, lists)
	if err != nil {
		log.Fatalf("Bot error: %v", err)
	}

	healthServer := healthcheck.New(cfg.HealthAddr, func() any { return picker.Status() })
	go func() {
		if err := healthServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()

	if err := picker.Start(); err != nil {
		log.Fatalf("Start error: %v", err)
	}

	log.Println("AutoPick running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthServer.Stop(ctx)
	picker.Stop()

	log.Println("Stopped")
}

// runHealthCheck performs a quick health check against the local server.
func runHealthCheck() error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://localhost:8080/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %d", resp.StatusCode)
	}
	return nil
}
