package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowdrop/flowdrop-go/api/models"
	"github.com/flowdrop/flowdrop-go/tool"
)

type ThumbnailController struct {
	thumbnails *models.ThumbnailCache
}

func NewThumbnailController(thumbnails *models.ThumbnailCache) *ThumbnailController {
	return &ThumbnailController{thumbnails: thumbnails}
}

// HandleThumbnail serves the cached preview image for a token. Expired or
// unknown tokens yield 404; clients fall back to the generic file icon.
func (ctrl *ThumbnailController) HandleThumbnail(c *gin.Context) {
	token := c.Param("token")
	thumb, ok := ctrl.thumbnails.Get(token)
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Thumbnail not found"))
		return
	}
	c.Data(http.StatusOK, thumb.ContentType, thumb.Data)
}
