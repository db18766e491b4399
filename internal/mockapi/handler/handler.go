package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"item-portal/internal/api"
	"item-portal/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler serves api.Client over HTTP.
type Handler struct {
	backend api.Client
}

func NewHandler(backend api.Client) *Handler {
	return &Handler{backend: backend}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST(api.LoginPath, h.Login)
	r.GET(api.ItemsPath, h.Items)
}

// NewRouter builds the standalone mock API engine with CORS enabled for
// the given comma-separated origins.
func NewRouter(h *Handler, allowedOrigins string, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	origins := splitOrigins(allowedOrigins)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	router.Use(cors.New(corsCfg))

	h.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (h *Handler) Items(c *gin.Context) {
	logger.Debug("mock items requested", map[string]any{
		"token_present": c.GetHeader("Authorization") != "",
	})

	items, err := h.backend.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func writeError(c *gin.Context, err error) {
	var statusErr *api.StatusError

	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &statusErr):
		c.JSON(statusErr.Status, api.ErrorResponse{Error: statusErr.Message})
	case c.Request.Context().Err() != nil:
		// client went away during the simulated latency
		c.Status(499)
	default:
		logger.Error("mock api request failed", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
