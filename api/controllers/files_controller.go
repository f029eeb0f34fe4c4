package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowdrop/flowdrop-go/store"
	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/transfer"
)

type FilesController struct {
	engine *transfer.Engine
}

func NewFilesController(engine *transfer.Engine) *FilesController {
	return &FilesController{engine: engine}
}

// HandleList returns all tracked files, most recently added first.
func (ctrl *FilesController) HandleList(c *gin.Context) {
	files, err := ctrl.engine.Files.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to list files"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(files))
}

// HandleGet returns a single file record.
func (ctrl *FilesController) HandleGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := ctrl.engine.Files.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, tool.FastReturnError("File not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to get file"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(file))
}

// HandleRemove deletes a file record. An in-flight upload for it terminates
// on its next store write.
func (ctrl *FilesController) HandleRemove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.engine.RemoveFile(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, tool.FastReturnError("File not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to remove file"))
		return
	}
	tool.DefaultLogger.Infof("[Files] Removed file %d", id)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandleClearCompleted removes every successfully uploaded file.
func (ctrl *FilesController) HandleClearCompleted(c *gin.Context) {
	cleared, err := ctrl.engine.ClearCompleted(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to clear completed uploads"))
		return
	}
	tool.DefaultLogger.Infof("[Files] Cleared %d completed uploads", cleared)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{"cleared": cleared}))
}

func parseID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnErrorWithData("Invalid file id", map[string]any{"id": raw}))
		return 0, false
	}
	return id, true
}
