package middleware

import (
	"errors"
	"net/http"

	"item-portal/internal/nav"

	"github.com/gin-gonic/gin"
)

// Router is the part of nav.Router the HTTP layer needs.
type Router interface {
	Navigator
	Current() string
}

// GinRequireRoute activates the symbolic route path before the view
// handler runs. When a guard turns the navigation away, the client is
// redirected to wherever the router ended up.
func GinRequireRoute(router Router, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := router.Navigate(c.Request.Context(), path)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, nav.ErrUnknownRoute) {
				status = http.StatusNotFound
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}

		if !ok {
			target := router.Current()
			if target == path {
				target = nav.PathLogin
			}
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}

		c.Next()
	}
}
