package app

import (
	"net/http"
	"strings"

	"item-portal/internal/config"
	"item-portal/internal/middleware"
	"item-portal/internal/mockapi"
	mockhandler "item-portal/internal/mockapi/handler"
	portalhandler "item-portal/internal/portal/handler"

	"github.com/gin-gonic/gin"
)

func setGinMode(cfg *config.Config) {
	if strings.EqualFold(cfg.App.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

func setupPortalHTTP(core *Core) (*gin.Engine, error) {
	viewHandler, err := portalhandler.NewHandler(core.Auth, core.Items, core.Router)
	if err != nil {
		return nil, err
	}

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog("portal"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Views (guarded per route)
	// ----------------------------

	viewHandler.RegisterRoutes(router)

	return router, nil
}

func setupMockAPIHTTP(cfg *config.Config, backend *mockapi.Backend) *gin.Engine {
	return mockhandler.NewRouter(
		mockhandler.NewHandler(backend),
		cfg.MockAPI.AllowedOrigins,
		middleware.RequestID(),
		middleware.AccessLog("mock-api"),
	)
}
