package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/transfer"
)

type SessionController struct {
	engine *transfer.Engine
}

func NewSessionController(engine *transfer.Engine) *SessionController {
	return &SessionController{engine: engine}
}

// HandleCurrentSession returns the active session with its derived metrics.
func (ctrl *SessionController) HandleCurrentSession(c *gin.Context) {
	summary, err := ctrl.engine.CurrentSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to get current session"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(summary))
}

// HandleStorage reports used bytes against the fixed capacity policy.
func (ctrl *SessionController) HandleStorage(c *gin.Context) {
	usage, err := ctrl.engine.StorageUsage(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to get storage usage"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(usage))
}
