package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/cache"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/observability"
	obsmiddleware "github.com/laminkinte/business-development-dashboard-sub000/internal/observability/logger"
	obsmetrics "github.com/laminkinte/business-development-dashboard-sub000/internal/observability/metrics"
	obstracing "github.com/laminkinte/business-development-dashboard-sub000/internal/observability/tracing"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/ratelimit"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report"
	reportdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	cache.Module,
	dataset.Module,
	report.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	loader     datasetdomain.Loader
	reportSvc  reportdomain.Service
	limiter    *ratelimit.TokenBucket
	obsMetrics *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Loader     datasetdomain.Loader
	ReportSvc  reportdomain.Service
	Limiter    *ratelimit.TokenBucket `optional:"true"`
	ObsMetrics *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		loader:     p.Loader,
		reportSvc:  p.ReportSvc,
		limiter:    p.Limiter,
		obsMetrics: p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	limited := ratelimit.GinMiddleware(s.limiter, s.obsMetrics, s.cfg.LoadRate, s.cfg.LoadBurst)

	api := s.engine.Group("/api/v1")

	api.POST("/dataset/loads", limited, s.LoadDataset)

	reports := api.Group("/reports", limited)
	{
		reports.GET("/executive-snapshot", s.GetExecutiveSnapshot)
		reports.GET("/customer-acquisition", s.GetCustomerAcquisition)
		reports.GET("/product-usage", s.GetProductUsage)
		reports.GET("/customer-activity", s.GetCustomerActivity)
		reports.GET("/products", s.ListProductStats)
	}

	exports := api.Group("/exports", limited)
	{
		exports.GET("/transactions.csv", s.ExportTransactions)
		exports.GET("/onboarding.csv", s.ExportOnboarding)
	}
}
