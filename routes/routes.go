package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/controllers"
	"storefront-service/middleware"
)

// Controllers groups the handlers mounted by Register. Debug is optional.
type Controllers struct {
	Products *controllers.ProductController
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Debug    *controllers.DebugController
}

// Register sets up the storefront API under /api plus /health.
func Register(r *gin.Engine, cs Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "storefront-service"})
	})

	api := r.Group("/api")
	api.GET("/products", cs.Products.List)
	api.POST("/register", cs.Auth.Register)
	api.POST("/login", cs.Auth.Login)

	cartRoutes := api.Group("/cart")
	cartRoutes.Use(middleware.IdentityMiddleware())
	cartRoutes.GET("", cs.Cart.Get)
	cartRoutes.POST("", cs.Cart.Update)
	cartRoutes.POST("/items/:id", cs.Cart.AddItem)
	cartRoutes.DELETE("/items/:id", cs.Cart.RemoveItem)

	if cs.Debug != nil {
		api.GET("/debug/db", cs.Debug.Dump)
	}
}
