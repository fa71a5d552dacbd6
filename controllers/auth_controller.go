package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/errors"
	"storefront-service/models"
	"storefront-service/services"
)

type AuthController struct {
	accounts services.AccountService
}

func NewAuthController(accounts services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register handles POST /api/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.ErrInvalidInput.Wrap(err))
		return
	}

	acct, err := ac.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{Success: true, Email: acct.Email})
}

// Login handles POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.ErrInvalidInput.Wrap(err))
		return
	}

	acct, err := ac.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Success: true, Email: acct.Email})
}
