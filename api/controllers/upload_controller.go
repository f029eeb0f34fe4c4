package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flowdrop/flowdrop-go/api/models"
	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/transfer"
	"github.com/flowdrop/flowdrop-go/types"
)

// thumbnailReadLimit caps how much of an image is kept for previewing.
const thumbnailReadLimit = 8 * 1024 * 1024

type UploadController struct {
	engine     *transfer.Engine
	thumbnails *models.ThumbnailCache
}

func NewUploadController(engine *transfer.Engine, thumbnails *models.ThumbnailCache) *UploadController {
	return &UploadController{engine: engine, thumbnails: thumbnails}
}

// AddFilesRequest is the JSON body for descriptor-only adds.
type AddFilesRequest struct {
	Files []types.FileCandidate `json:"files"`
}

// AddFilesResponse reports the batch id and the per-file outcomes.
type AddFilesResponse struct {
	BatchID  string             `json:"batchId"`
	Outcomes []types.AddOutcome `json:"outcomes"`
}

// HandleAddFiles accepts either a JSON list of file descriptors or a
// multipart form (drag-and-drop). Every candidate is validated on its own;
// rejected files never block their siblings.
func (ctrl *UploadController) HandleAddFiles(c *gin.Context) {
	var candidates []types.FileCandidate
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		candidates, err = ctrl.candidatesFromMultipart(c)
	} else {
		candidates, err = candidatesFromJSON(c)
	}
	if err != nil {
		tool.DefaultLogger.Errorf("[AddFiles] Failed to read request: %v", err)
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body"))
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("No files provided"))
		return
	}

	outcomes, err := ctrl.engine.AddFiles(c.Request.Context(), candidates)
	if err != nil {
		tool.DefaultLogger.Errorf("[AddFiles] Batch failed: %v", err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to add files"))
		return
	}

	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(AddFilesResponse{
		BatchID:  uuid.NewString(),
		Outcomes: outcomes,
	}))
}

func candidatesFromJSON(c *gin.Context) ([]types.FileCandidate, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	var req AddFilesRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return req.Files, nil
}

// candidatesFromMultipart builds candidates from uploaded form files. Parts
// without a usable content type are sniffed from their leading bytes; image
// parts get a cached thumbnail.
func (ctrl *UploadController) candidatesFromMultipart(c *gin.Context) ([]types.FileCandidate, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File["files"]
	candidates := make([]types.FileCandidate, 0, len(headers))
	for _, header := range headers {
		candidate := types.FileCandidate{
			Name: header.Filename,
			Size: header.Size,
			Type: header.Header.Get("Content-Type"),
		}
		data, readErr := readPart(header)
		if readErr != nil {
			tool.DefaultLogger.Warnf("[AddFiles] Failed to read part %s: %v", header.Filename, readErr)
			candidates = append(candidates, candidate)
			continue
		}
		if candidate.Type == "" || candidate.Type == "application/octet-stream" {
			candidate.Type = sniffMediaType(data)
		}
		if strings.HasPrefix(candidate.Type, "image/") {
			token := ctrl.thumbnails.Put(candidate.Type, data)
			candidate.ThumbnailURL = "/api/flowdrop/v1/thumbnail/" + token
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, thumbnailReadLimit))
}

// sniffMediaType detects the media type from file content, trimming the
// charset parameter mimetype appends to text types.
func sniffMediaType(data []byte) string {
	mtype := mimetype.Detect(data).String()
	if idx := strings.Index(mtype, ";"); idx > 0 {
		mtype = mtype[:idx]
	}
	return mtype
}
