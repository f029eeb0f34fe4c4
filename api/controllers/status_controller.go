package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowdrop/flowdrop-go/api/progresshub"
	"github.com/flowdrop/flowdrop-go/transfer"
)

type StatusController struct {
	engine *transfer.Engine
	hub    *progresshub.Hub
}

func NewStatusController(engine *transfer.Engine, hub *progresshub.Hub) *StatusController {
	return &StatusController{engine: engine, hub: hub}
}

// HandleStatus reports liveness and hub availability for the web UI.
func (ctrl *StatusController) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":       true,
		"activeUploads": ctrl.engine.ActiveUploads(),
		"wsClients":     ctrl.hub.ClientCount(),
	})
}
