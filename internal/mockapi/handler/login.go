package handler

import (
	"net/http"

	"item-portal/internal/api"
	"item-portal/internal/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	res, err := h.backend.Login(
		c.Request.Context(),
		api.LoginRequest{Email: req.Email, Password: req.Password},
	)
	if err != nil {
		logger.Info("mock login rejected", map[string]any{
			"email": req.Email,
			"ip":    c.ClientIP(),
		})
		writeError(c, err)
		return
	}

	logger.Info("mock login succeeded", map[string]any{
		"email": res.User.Email,
		"ip":    c.ClientIP(),
	})

	c.JSON(http.StatusOK, res)
}
