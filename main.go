package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ptcmobile/collections"
	"ptcmobile/config"
	"ptcmobile/handlers"
	"ptcmobile/logging"
	"ptcmobile/metrics"
	"ptcmobile/services"
)

func main() {
	cfg, err := config.Load(os.Getenv("PTC_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	app := pocketbase.New()
	app.RootCmd.AddCommand(newRenderCmd(cfg.Company, logger))

	store := services.NewWorkspaceStore(cfg.Workspace.IdleTTL)
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}
	deps := handlers.NewInvoiceDeps(app, store, m, logger, cfg.Company)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		stopSweep()
		return e.Next()
	})

	// Create the settings collection and seed the company profile on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app, cfg.Company); err != nil {
			logger.Warn("seed: company profile failed", zap.Error(err))
		}
		go sweepWorkspaces(sweepCtx, store, m, logger, cfg.Workspace.SweepInterval)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Invoice (session workspace) ──────────────────────────
		invoice := se.Router.Group("")
		invoice.BindFunc(handlers.WorkspaceMiddleware(store, cfg.Workspace.CookieName, time.Now))

		invoice.GET("/invoice", handlers.HandleInvoicePage(deps))
		invoice.POST("/invoice/new", handlers.HandleInvoiceNew(deps))
		invoice.POST("/invoice/sample", handlers.HandleInvoiceSample(deps))
		invoice.PATCH("/invoice/header", handlers.HandleHeaderPatch(deps))
		invoice.POST("/invoice/lines", handlers.HandleLineAdd(deps))
		invoice.PATCH("/invoice/lines/{index}", handlers.HandleLinePatch(deps))
		invoice.DELETE("/invoice/lines/{index}", handlers.HandleLineRemove(deps))
		invoice.POST("/invoice/preview", handlers.HandleInvoicePreview(deps))
		invoice.POST("/invoice/back", handlers.HandleInvoiceBack(deps))
		invoice.GET("/invoice/document", handlers.HandleInvoiceDocument(deps))
		invoice.GET("/invoice/export/{format}", handlers.HandleInvoiceExport(deps))
		invoice.GET("/api/invoice", handlers.HandleInvoiceAPI(deps))

		// ── Company profile ──────────────────────────────────────
		se.Router.GET("/settings/company", handlers.HandleCompanySettings(deps))
		se.Router.POST("/settings/company", handlers.HandleCompanySettingsSave(deps))

		if cfg.Metrics.Enabled {
			se.Router.GET(cfg.Metrics.Path, apis.WrapStdHandler(promhttp.Handler()))
		}

		// Redirect home to the invoice screen
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/invoice")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal("pocketbase exited", zap.Error(err))
	}
}

// sweepWorkspaces evicts idle workspaces every interval until ctx is done and
// keeps the workspace gauge current.
func sweepWorkspaces(ctx context.Context, store *services.WorkspaceStore, m *metrics.Metrics, logger *zap.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Sweep(now); n > 0 {
				logger.Debug("sweep: evicted idle workspaces", zap.Int("count", n))
			}
			m.SetWorkspaces(store.Len())
		}
	}
}
