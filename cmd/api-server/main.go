package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pokehub/internal/catalog"
	"pokehub/internal/events"
	"pokehub/internal/pokeapi"
	"pokehub/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	client := pokeapi.NewClient(cfg.UpstreamURL, cfg.ClientTimeout)
	store := catalog.NewStore()
	hub := events.NewHub()

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", events.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": cfg.UpstreamURL})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		if _, ready := store.Snapshot(); !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"ws_clients": stats.Clients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"catalog":    store.Len(),
			"ws_clients": stats.Clients,
		})
	})

	handler := catalog.NewHandler(store, client, cfg.PageSize)
	handler.RegisterRoutes(router.Group("/pokemon"))
	router.GET("/generations", catalog.ListGenerations)

	// Bulk load runs once at startup; the API serves 503s until it lands.
	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	go loadCatalog(loadCtx, cfg, client, store, hub)

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("HTTP API server listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logrus.Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		logrus.Errorf("server error: %v", err)
	}

	logrus.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown error: %v", err)
	}

	logrus.Info("server stopped")
}

// loadCatalog fetches the whole id range and either publishes the new
// collection or leaves the store not-ready on failure. Progress events go
// out every 100 fetches plus once at the end.
func loadCatalog(ctx context.Context, cfg utils.Config, client *pokeapi.Client, store *catalog.Store, hub *events.Hub) {
	total := cfg.LastID - cfg.FirstID + 1
	logrus.Infof("[loader] loading catalog ids %d..%d", cfg.FirstID, cfg.LastID)
	hub.BroadcastJSON(events.CatalogEvent{Type: events.CatalogLoading, Total: total, At: time.Now()})

	start := time.Now()
	items, err := client.LoadAll(ctx, cfg.FirstID, cfg.LastID, cfg.MaxInFlight, func(loaded, total int) {
		if loaded%100 == 0 || loaded == total {
			hub.BroadcastJSON(events.CatalogEvent{
				Type:   events.CatalogProgress,
				Loaded: loaded,
				Total:  total,
				At:     time.Now(),
			})
		}
	})
	if err != nil {
		logrus.Errorf("[loader] catalog load failed: %v", err)
		hub.BroadcastJSON(events.CatalogEvent{Type: events.CatalogFailed, Error: err.Error(), At: time.Now()})
		return
	}

	store.Replace(items)
	logrus.Infof("[loader] catalog ready: %d entries in %s", len(items), time.Since(start).Round(time.Millisecond))
	hub.BroadcastJSON(events.CatalogEvent{Type: events.CatalogReady, Loaded: len(items), Total: total, At: time.Now()})
}
