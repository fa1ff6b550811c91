package main

import (
	"database/sql"
	"flag"
	"time"

	"gcctracker-backend/lib/configutil"
	"gcctracker-backend/lib/scrapers/linkedin"
	"gcctracker-backend/lib/scrapers/websearch"
	"gcctracker-backend/lib/serviceutil"
	"gcctracker-backend/services/tracker"
	"gcctracker-backend/services/tracker/db"
)

type SourcesConfig struct {
	LinkedinBaseUrl  string `json:"linkedin_base_url"`
	WebsearchBaseUrl string `json:"websearch_base_url"`
	// TimeoutSeconds bounds each individual source query.
	TimeoutSeconds int `json:"timeout_seconds"`
}

type Config struct {
	Port int `json:"port"`
	// Database is the sqlite file path.
	Database        string        `json:"database"`
	CacheTtlMinutes int           `json:"cache_ttl_minutes"`
	Sources         SourcesConfig `json:"sources"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Database == "" {
		cfg.Database = "tracker.db"
	}
	if cfg.CacheTtlMinutes == 0 {
		cfg.CacheTtlMinutes = 60
	}

	sqlite, err := sql.Open("sqlite", cfg.Database)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}
	defer sqlite.Close()
	_, err = sqlite.ExecContext(ctx, db.Schema)
	if err != nil {
		serviceutil.Fatal("migrate database", err)
	}

	search := websearch.NewClient(websearch.ClientOptions{
		BaseUrl: cfg.Sources.WebsearchBaseUrl,
	})
	profiles, err := linkedin.NewClient(linkedin.ClientOptions{
		BaseUrl: cfg.Sources.LinkedinBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("init linkedin client", err)
	}

	resolver := tracker.NewResolver(tracker.ResolverOptions{
		Sources: []tracker.Source{
			tracker.NewLinkedinSource(profiles),
			tracker.NewWebsearchSource(search),
		},
		TTL:           time.Duration(cfg.CacheTtlMinutes) * time.Minute,
		SourceTimeout: time.Duration(cfg.Sources.TimeoutSeconds) * time.Second,
		Normalizer:    tracker.NewNormalizer(tracker.DefaultAliases()),
	})
	service := tracker.NewService(tracker.ServiceOptions{
		Resolver: resolver,
		DB:       sqlite,
		News:     search,
	})

	go serviceutil.StartHttpServer(cfg.Port, service.Router())
	<-ctx.Done()
}
