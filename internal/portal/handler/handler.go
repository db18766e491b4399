package handler

import (
	"net/http"

	"item-portal/internal/auth"
	"item-portal/internal/items"
	"item-portal/internal/middleware"
	"item-portal/internal/nav"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth   *auth.Service
	items  *items.Store
	router middleware.Router
	hub    *hub
}

// NewHandler wires the views to the core. It subscribes once to item state
// changes to feed the event stream.
func NewHandler(
	authService *auth.Service,
	itemStore *items.Store,
	router middleware.Router,
) (*Handler, error) {
	h := &Handler{
		auth:   authService,
		items:  itemStore,
		router: router,
		hub:    newHub(),
	}

	if err := itemStore.Subscribe(h.hub.broadcast); err != nil {
		return nil, err
	}

	return h, nil
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.toLogin)
	r.NoRoute(h.toLogin)

	r.GET("/login", middleware.GinRequireRoute(h.router, nav.PathLogin), h.LoginView)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	r.GET("/dashboard", middleware.GinRequireRoute(h.router, nav.PathDashboard), h.Dashboard)

	list := r.Group("/list")
	list.Use(middleware.GinRequireRoute(h.router, nav.PathList))
	list.GET("", h.List)
	list.GET("/state", h.ListState)
	list.POST("/retry", h.Retry)
	list.GET("/events", h.Events)
}

func (h *Handler) toLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, nav.PathLogin)
}

func (h *Handler) Dashboard(c *gin.Context) {
	sess := h.auth.State().Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"view":          "dashboard",
		"authenticated": sess.Authenticated,
		"email":         sess.UserEmail,
	})
}
