package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/storewatch/internal/clock"
	"github.com/smallbiznis/storewatch/internal/config"
	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	"github.com/smallbiznis/storewatch/internal/metrics"
	orderdomain "github.com/smallbiznis/storewatch/internal/order/domain"
	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	reportdomain "github.com/smallbiznis/storewatch/internal/report/domain"
	"github.com/smallbiznis/storewatch/internal/session"
	settingsdomain "github.com/smallbiznis/storewatch/internal/settings/domain"
	"github.com/smallbiznis/storewatch/internal/storefront"
	velocitydomain "github.com/smallbiznis/storewatch/internal/velocity/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, sessions *session.Manager, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	sweepDone := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						sessions.Sweep()
					case <-sweepDone:
						return
					}
				}
			}()
			log.Info("http server started", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(sweepDone)
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	clock    clock.Clock
	sessions *session.Manager
	metrics  *metrics.Metrics

	store *storefront.Client

	orderSvc     orderdomain.Service
	feeSvc       feesdomain.Service
	reconcileSvc recdomain.Service
	inventorySvc inventorydomain.Service
	velocitySvc  velocitydomain.Service
	reportSvc    reportdomain.Service
	settingsSvc  settingsdomain.Service
	feeConfig    *config.FeeConfigHolder
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	Clock        clock.Clock
	Sessions     *session.Manager
	Metrics      *metrics.Metrics
	Store        *storefront.Client
	OrderSvc     orderdomain.Service
	FeeSvc       feesdomain.Service
	ReconcileSvc recdomain.Service
	InventorySvc inventorydomain.Service
	VelocitySvc  velocitydomain.Service
	ReportSvc    reportdomain.Service
	SettingsSvc  settingsdomain.Service
	FeeConfig    *config.FeeConfigHolder
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		clock:        p.Clock,
		sessions:     p.Sessions,
		metrics:      p.Metrics,
		store:        p.Store,
		orderSvc:     p.OrderSvc,
		feeSvc:       p.FeeSvc,
		reconcileSvc: p.ReconcileSvc,
		inventorySvc: p.InventorySvc,
		velocitySvc:  p.VelocitySvc,
		reportSvc:    p.ReportSvc,
		settingsSvc:  p.SettingsSvc,
		feeConfig:    p.FeeConfig,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.sessions.Middleware())

	// -------- Dataset lifecycle --------
	api.POST("/search", s.Search)
	api.GET("/period", s.GetPeriod)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrderByID)

	// -------- Summaries --------
	api.GET("/summary/methods", s.MethodSummary)
	api.GET("/summary/daily", s.DailySales)
	api.GET("/summary/products", s.TopProducts)

	// -------- Reconciliation --------
	api.GET("/reconciliation", s.GetReconciliation)
	api.GET("/reconciliation/orphans", s.ListOrphans)
	api.PUT("/reconciliation/overrides/:orderId", s.SetOverride)
	api.DELETE("/reconciliation/overrides/:orderId", s.ClearOverride)
	api.POST("/reconciliation/overrides/save", s.SaveOverrides)
	api.POST("/reconciliation/overrides/load", s.LoadOverrides)

	// -------- Velocity & stock --------
	api.GET("/velocity", s.GetVelocity)
	api.POST("/stock/refresh", s.RefreshStock)
	api.GET("/stock", s.ListStock)
	api.GET("/stock/alerts", s.ListStockAlerts)
	api.GET("/stock/summary", s.StockSummary)

	// -------- Financial what-if --------
	api.GET("/finance/summary", s.FinancialSummary)
	api.GET("/finance/schedule", s.GetSchedule)
	api.PUT("/finance/schedule", s.UpdateSchedule)
	api.POST("/finance/schedule/reset", s.ResetSchedule)

	// -------- Session settings & cost book --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)
	api.POST("/settings/save", s.SaveSettings)
	api.POST("/settings/load", s.LoadSettings)
	api.GET("/costs", s.ListProductCosts)
	api.PUT("/costs/:product", s.SetProductCost)
	api.DELETE("/costs/:product", s.DeleteProductCost)

	// -------- Message preview --------
	api.GET("/notify/preview/:id", s.NotifyPreview)

	// -------- Exports --------
	api.GET("/export/:report", s.ExportReport)
}
