package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"storefront-service/errors"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
)

var errOverwriteDisabled = errors.New(http.StatusBadRequest, "Whole-cart updates are disabled, send an action instead", nil)

type CartController struct {
	carts          services.CartService
	allowOverwrite bool
}

func NewCartController(carts services.CartService, allowOverwrite bool) *CartController {
	return &CartController{carts: carts, allowOverwrite: allowOverwrite}
}

// Get handles GET /api/cart
func (cc *CartController) Get(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.Error(err)
		return
	}

	cart, err := cc.carts.GetCart(c.Request.Context(), email)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

// Update handles POST /api/cart. The body is either an intent
// {"action":"add"|"remove","productId":n} or a whole cart, wrapped as
// {"cart":{...}} or sent bare as {"items":[...]}.
func (cc *CartController) Update(c *gin.Context) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req models.CartUpdateRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(errors.ErrInvalidInput.Wrap(err))
		return
	}

	ctx := c.Request.Context()
	var cart models.Cart

	switch req.Action {
	case models.CartActionAdd, models.CartActionRemove:
		if req.ProductID <= 0 {
			c.Error(errors.ErrInvalidInput)
			return
		}
		if req.Action == models.CartActionAdd {
			cart, err = cc.carts.AddItem(ctx, email, req.ProductID)
		} else {
			cart, err = cc.carts.RemoveItem(ctx, email, req.ProductID)
		}

	case "":
		var submitted *models.Cart
		switch {
		case req.Cart != nil:
			submitted = req.Cart
		case req.Items != nil:
			submitted = &models.Cart{Items: req.Items}
		default:
			c.Error(errors.ErrInvalidInput)
			return
		}
		if !cc.allowOverwrite {
			c.Error(errOverwriteDisabled)
			return
		}
		logger.Info(c, "Whole cart overwrite", zap.String("email", email), zap.Int("lines", len(submitted.Items)))
		cart, err = cc.carts.ReplaceCart(ctx, email, *submitted)

	default:
		c.Error(errors.ErrInvalidInput)
		return
	}

	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart.View()})
}

// AddItem handles POST /api/cart/items/:id
func (cc *CartController) AddItem(c *gin.Context) {
	cc.mutateItem(c, cc.carts.AddItem)
}

// RemoveItem handles DELETE /api/cart/items/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	cc.mutateItem(c, cc.carts.RemoveItem)
}

type itemMutation func(ctx context.Context, email string, productID int) (models.Cart, error)

func (cc *CartController) mutateItem(c *gin.Context, mutate itemMutation) {
	email, err := middleware.GetUserEmail(c)
	if err != nil {
		c.Error(err)
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		c.Error(errors.ErrInvalidInput)
		return
	}

	cart, err := mutate(c.Request.Context(), email, productID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart.View()})
}
