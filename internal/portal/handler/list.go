package handler

import (
	"io"
	"net/http"

	"item-portal/internal/items"

	"github.com/gin-gonic/gin"
)

func (h *Handler) List(c *gin.Context) {
	st := h.items.LoadItems(c.Request.Context())
	h.writeList(c, st)
}

func (h *Handler) ListState(c *gin.Context) {
	h.writeList(c, h.items.State())
}

func (h *Handler) Retry(c *gin.Context) {
	st := h.items.Retry(c.Request.Context())
	h.writeList(c, st)
}

func (h *Handler) writeList(c *gin.Context, st items.State) {
	c.JSON(http.StatusOK, gin.H{
		"view":  "list",
		"state": st,
	})
}

// Events streams every item state change as a server-sent "state" event,
// starting with the current state.
func (h *Handler) Events(c *gin.Context) {
	ch := h.hub.add()
	defer h.hub.remove(ch)

	c.SSEvent("state", h.items.State())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case st := <-ch:
			c.SSEvent("state", st)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
