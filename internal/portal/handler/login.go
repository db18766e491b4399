package handler

import (
	"errors"
	"net/http"

	"item-portal/internal/api"
	"item-portal/internal/nav"

	"github.com/gin-gonic/gin"
)

// LoginFailedMessage is shown when a login error carries no message.
const LoginFailedMessage = "Login failed. Please try again."

type loginRequest struct {
	Email    string `json:"email"    form:"email"    binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) LoginView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"view":          "login",
		"authenticated": h.auth.State().IsAuthenticated(),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	_, err := h.auth.Login(c.Request.Context(), api.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = LoginFailedMessage
		}

		status := http.StatusBadGateway
		if errors.Is(err, api.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}

		c.JSON(status, gin.H{"error": msg})
		return
	}

	h.redirect(c, nav.PathDashboard)
}

func (h *Handler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.Redirect(http.StatusSeeOther, h.router.Current())
}

// redirect navigates the portal and sends the client wherever it landed.
func (h *Handler) redirect(c *gin.Context, path string) {
	if _, err := h.router.Navigate(c.Request.Context(), path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, h.router.Current())
}
