package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/services"
)

type ProductController struct {
	catalog services.CatalogService
}

func NewProductController(catalog services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List handles GET /api/products and returns the catalog as a bare array.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}
