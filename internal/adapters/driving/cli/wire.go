package cli

import (
	"fmt"

	"github.com/custodia-labs/tingsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tingsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tingsync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tingsync/internal/adapters/driving/api"
	"github.com/custodia-labs/tingsync/internal/connectors/oda"
	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/core/services"
	"github.com/custodia-labs/tingsync/internal/logger"
	"github.com/custodia-labs/tingsync/internal/normalisers"
)

// Configuration keys.
const (
	keyLogLevel      = "log.level"
	keyMinInterval   = "sync.min_interval"
	keyStartupDelay  = "sync.startup_delay"
	keyCheckInterval = "sync.check_interval"
	keyTrigger       = "sync.trigger"
	keyHTTPTimeout   = "http.timeout"
	keyHTTPRate      = "http.rate_per_second"
	keyUserAgent     = "http.user_agent"
	keyDataDir       = "storage.data_dir"
	keyServerAddr    = "server.addr"
)

// settings are the non-source values commands read after wiring.
type settings struct {
	trigger    domain.TriggerConfig
	serverAddr string
	sources    []domain.SyncSource
	storage    string
}

var (
	// closeStores releases the wired store, if any.
	closeStores func() error

	// wired is set when the services above came from wire.
	wired bool
)

// wire builds the services from the config file and global flags.
func wire() error {
	cfg, err := openConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !verbose {
		if lvl := cfg.GetString(keyLogLevel); lvl != "" {
			parsed, err := logger.ParseLevel(lvl)
			if err != nil {
				return fmt.Errorf("%s: %w", keyLogLevel, err)
			}
			logger.SetLevel(parsed)
		}
	}

	sources, err := cfg.Sources()
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}

	entities, watermarks, runs, location, err := openStores(cfg)
	if err != nil {
		return err
	}

	client := oda.NewClient(oda.Config{
		Timeout:       cfg.GetDuration(keyHTTPTimeout, oda.DefaultTimeout),
		RatePerSecond: cfg.GetFloat(keyHTTPRate),
		UserAgent:     cfg.GetString(keyUserAgent),
	})

	syncOrchestrator = services.NewSyncOrchestrator(
		sources,
		client,
		normalisers.Default(),
		entities,
		watermarks,
		services.WithMinInterval(cfg.GetDuration(keyMinInterval, 0)),
		services.WithRunStore(runs),
	)
	entityService = services.NewEntityService(entities)
	appSettings = &settings{
		trigger:    triggerConfig(cfg),
		serverAddr: cfg.GetString(keyServerAddr),
		sources:    sources,
		storage:    location,
	}

	wired = true

	logger.Debug("wired %d sources, storage %s", len(sources), location)
	return nil
}

func openConfig() (*file.ConfigStore, error) {
	if configPath != "" {
		return file.NewConfigStoreAt(configPath)
	}
	return file.NewConfigStore("")
}

func openStores(cfg *file.ConfigStore) (driven.EntityStore, driven.WatermarkStore, driven.RunStore, string, error) {
	if memoryStores {
		return memory.NewEntityStore(), memory.NewWatermarkStore(), memory.NewRunStore(), "memory", nil
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString(keyDataDir)
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, nil, nil, "", fmt.Errorf("opening store: %w", err)
	}
	closeStores = store.Close
	return store.EntityStore(), store.WatermarkStore(), store.RunStore(), store.Path(), nil
}

func triggerConfig(cfg driven.ConfigStore) domain.TriggerConfig {
	tc := domain.DefaultTriggerConfig()
	if _, ok := cfg.Get(keyTrigger); ok {
		tc.Enabled = cfg.GetBool(keyTrigger)
	}
	tc.StartupDelay = cfg.GetDuration(keyStartupDelay, tc.StartupDelay)
	tc.CheckInterval = cfg.GetDuration(keyCheckInterval, tc.CheckInterval)
	return tc
}

// teardown closes wired stores and forgets the wired services.
func teardown() {
	if closeStores != nil {
		if err := closeStores(); err != nil {
			logger.Warn("closing store: %v", err)
		}
		closeStores = nil
	}
	if wired {
		syncOrchestrator = nil
		entityService = nil
		appSettings = nil
		wired = false
	}
}

// listenAddr returns the configured API address.
func listenAddr() string {
	if serveAddr != "" {
		return serveAddr
	}
	if appSettings != nil && appSettings.serverAddr != "" {
		return appSettings.serverAddr
	}
	return api.DefaultAddr
}

// currentTrigger returns the wired trigger settings or the defaults.
func currentTrigger() domain.TriggerConfig {
	if appSettings != nil {
		return appSettings.trigger
	}
	return domain.DefaultTriggerConfig()
}
