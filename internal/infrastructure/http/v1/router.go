// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invacc/internal/domain/audit"
	"invacc/internal/domain/auth"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/reports"
	"invacc/internal/domain/rules"
	"invacc/internal/infrastructure/http/v1/handlers"
	"invacc/internal/infrastructure/http/v1/middleware"
	"invacc/internal/infrastructure/metrics"
	"invacc/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Metrics records request metrics and serves /metrics. Optional.
	Metrics *metrics.Metrics

	Documents   *inventory.Service
	Rules       *rules.Service
	Conversions *conversion.Service
	Journal     *journal.Service
	Reports     *reports.Service
	Catalogs    catalogs.Repository
	AuditLog    audit.Reader

	// HealthChecks are evaluated by /health/ready.
	HealthChecks map[string]handlers.Checker
	Version      string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.ErrorHandler())

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Version, cfg.HealthChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	protected := router.Group("/api/v1")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	registerDocumentRoutes(protected, base, cfg)
	registerRuleRoutes(protected, base, cfg)
	registerCatalogRoutes(protected, base, cfg)
	registerConversionRoutes(protected, base, cfg)
	registerJournalRoutes(protected, base, cfg)
	registerReportRoutes(protected, base, cfg)
	registerLogRoutes(protected, base, cfg)

	return router
}

func registerDocumentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewDocumentHandler(base, cfg.Documents)
	registerRoutes(rg.Group("/documents"), []route{
		{http.MethodGet, "", auth.PermDocumentRead, h.List},
		{http.MethodGet, "/:id", auth.PermDocumentRead, h.Get},
	})
}

func registerRuleRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewRuleHandler(base, cfg.Rules)
	registerRoutes(rg.Group("/rules"), []route{
		{http.MethodGet, "", auth.PermRuleRead, h.List},
		{http.MethodPut, "", auth.PermRuleWrite, h.Replace},
	})
}

// registerCatalogRoutes exposes reference data to every authenticated user.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewCatalogHandler(base, cfg.Catalogs)
	registerRoutes(rg, []route{
		{http.MethodGet, "/warehouses", "", h.Warehouses},
		{http.MethodGet, "/doc-types", "", h.DocTypes},
		{http.MethodGet, "/accounts", "", h.Accounts},
		{http.MethodGet, "/cost-centers", "", h.CostCenters},
	})
}

func registerConversionRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewConversionHandler(base, cfg.Conversions)
	registerRoutes(rg.Group("/conversions"), []route{
		{http.MethodPost, "/preflight", auth.PermConversionExecute, h.Preflight},
		{http.MethodPost, "/consolidated", auth.PermConversionExecute, h.Consolidated},
		{http.MethodPost, "/individual", auth.PermConversionExecute, h.Individual},
	})
}

func registerJournalRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewGeneratedDocHandler(base, cfg.Journal)
	group := rg.Group("/generated-docs")

	// Approvers may read what they approve.
	readable := middleware.RequireAnyPermission(auth.PermJournalRead, auth.PermJournalApprove)
	group.GET("", readable, h.List)
	group.GET("/:id", readable, h.Get)

	registerRoutes(group, []route{
		{http.MethodPut, "/:id", auth.PermJournalWrite, h.Update},
		{http.MethodDelete, "/:id", auth.PermJournalWrite, h.Delete},
		{http.MethodPost, "/:id/approve", auth.PermJournalApprove, h.Approve},
		{http.MethodPost, "/approve", auth.PermJournalApprove, h.ApproveMany},
		{http.MethodPost, "/delete", auth.PermJournalWrite, h.DeleteMany},
	})
}

// registerReportRoutes exposes the summaries. Inventory summary is scoped per
// warehouse in the service, so storekeepers may read it.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportHandler(base, cfg.Reports)
	registerRoutes(rg.Group("/reports"), []route{
		{http.MethodGet, "/trial-balance", auth.PermJournalRead, h.TrialBalance},
		{http.MethodGet, "/general-ledger", auth.PermJournalRead, h.GeneralLedger},
		{http.MethodGet, "/inventory-summary", auth.PermDocumentRead, h.InventorySummary},
	})
}

func registerLogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewLogHandler(base, cfg.AuditLog)
	registerRoutes(rg.Group("/logs"), []route{
		{http.MethodGet, "", auth.PermLogRead, h.List},
	})
}
