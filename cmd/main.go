package main

import (
	"FirebiAPI/internal/config"
	"FirebiAPI/internal/gateway"
	"FirebiAPI/internal/logger"
	"FirebiAPI/internal/registry"
	"FirebiAPI/internal/router"
	"FirebiAPI/internal/store"
	"context"
	"flag"
	"log"
	"net/http"

	"fmt"
	"os"
)

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	logDir := flag.String("logdir", "", "log to <dir>/log/app.log instead of stderr")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := logger.Init(*logDir); err != nil {
		fmt.Fprintf(os.Stderr, "log init failed: %v\n", err)
		os.Exit(1)
	}
	logger.SetDebug(*debugFlag)

	ctx := context.Background()

	// Firestore: the gateway stays up without it and reports
	// firebase_status "disconnected" on every endpoint, so the BI consumers
	// see the outage instead of connection refused.
	var querier store.Querier
	fsClient, err := store.InitFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, cfg.Firebase.CredentialsJSON)
	if err != nil {
		logger.Error("firestore_init_failed", map[string]any{"error": err.Error()})
	} else {
		querier = fsClient
		defer fsClient.Close()
		logger.Info("firestore_connected", nil)
	}

	// Resource registry
	reg, err := registry.Init(cfg.ResourcesFile)
	if err != nil {
		logger.Error("registry_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Info("registry_initialized", map[string]any{"resources": len(reg.Resources())})

	// The winning-field cache is optional; without Redis every request walks
	// the full candidate list.
	var cache *gateway.FieldCache
	if cfg.Redis.Addr != "" {
		rdb := store.InitRedis(cfg.Redis.Addr)
		if err := store.PingRedis(ctx, rdb); err != nil {
			logger.Warn("field_cache_disabled", map[string]any{"error": err.Error()})
		} else {
			cache = gateway.NewFieldCache(rdb, cfg.Redis.FieldCacheTTL)
			logger.Info("field_cache_enabled", map[string]any{"addr": cfg.Redis.Addr})
		}
	}

	svc := gateway.New(querier, cfg.Query.TenantFields, cfg.Query.Limit, store.Window{
		Field: cfg.Query.WindowField,
		Days:  cfg.Query.WindowDays,
	}, cache)

	mux := router.New(cfg, svc, reg)

	// Start HTTP server
	logger.Info("server_start", map[string]any{"port": cfg.Port})
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		logger.Error("server_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
