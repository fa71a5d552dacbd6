package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/models"
)

// Snapshotter exposes the whole persisted state.
type Snapshotter interface {
	Snapshot(ctx context.Context) (models.Document, error)
}

type DebugController struct {
	store Snapshotter
}

func NewDebugController(store Snapshotter) *DebugController {
	return &DebugController{store: store}
}

// Dump handles GET /api/debug/db. Passwords are included, so the route is
// only registered when debug endpoints are enabled.
func (dc *DebugController) Dump(c *gin.Context) {
	doc, err := dc.store.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
