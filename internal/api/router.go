package api

import (
	"net/http"

	"alc-pricing/internal/api/handlers"
	"alc-pricing/internal/api/middleware"
	"alc-pricing/internal/config"
	"alc-pricing/internal/hydrogen"
	"alc-pricing/internal/pricing"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router serves.
type Deps struct {
	Config      *config.Config
	Session     *pricing.Session
	Broadcaster *hydrogen.PriceBroadcaster
	Sync        *hydrogen.HydrogenSync
	Receiver    *hydrogen.PriceReceiver

	AllowedOrigins []string
}

// NewRouter configures all API routes
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(d.AllowedOrigins...))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	marketHandler := handlers.NewMarketHandler(d.Session.Market())
	formulaHandler := handlers.NewFormulaHandler(d.Session.Formula())
	fairnessHandler := handlers.NewFairnessHandler(d.Session.Guard())
	capacitorHandler := handlers.NewCapacitorHandler(d.Session.Capacitor())
	quoteHandler := handlers.NewQuoteHandler(d.Session, d.Config)
	syncHandler := handlers.NewSyncHandler(d.Broadcaster, d.Sync, d.Receiver)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/market", marketHandler.GetMarket)
		api.POST("/market/adjust", marketHandler.Adjust)
		api.POST("/market/stabilize", marketHandler.Stabilize)
		api.GET("/market/earn/:activity", marketHandler.Earn)
		api.GET("/market/cost/:item", marketHandler.Cost)
		api.GET("/market/rates", marketHandler.Rates)

		api.POST("/formula/art", formulaHandler.Art)
		api.POST("/formula/token", formulaHandler.Token)
		api.POST("/formula/feature", formulaHandler.Feature)
		api.POST("/formula/fee", formulaHandler.Fee)
		api.POST("/formula/realtime", formulaHandler.RealTime)
		api.POST("/formula/fair", formulaHandler.Fair)

		api.POST("/fairness/validate", fairnessHandler.Validate)
		api.POST("/fairness/ensure", fairnessHandler.Ensure)
		api.POST("/fairness/detect", fairnessHandler.Detect)
		api.POST("/fairness/apply", fairnessHandler.Apply)
		api.GET("/fairness/history", fairnessHandler.History)

		api.GET("/capacitor", capacitorHandler.Status)
		api.POST("/capacitor/accumulate", capacitorHandler.Accumulate)
		api.POST("/capacitor/discharge", capacitorHandler.Discharge)
		api.POST("/capacitor/balance", capacitorHandler.Balance)
		api.POST("/capacitor/apply", capacitorHandler.Apply)

		api.POST("/quote", quoteHandler.Quote)
		api.POST("/replay", quoteHandler.Replay)

		api.POST("/sync/broadcast", syncHandler.Broadcast)
		api.POST("/sync/flush", syncHandler.Flush)
		api.GET("/sync/sites", syncHandler.Sites)
		api.GET("/sync/sites/:site", syncHandler.Site)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
