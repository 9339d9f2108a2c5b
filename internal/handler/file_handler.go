package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hrportal/internal/middleware"
	"hrportal/internal/service"
)

// FileHandler serves uploaded files to callers allowed to read them.
type FileHandler struct {
	fileService service.FileService
	basePath    string
}

func NewFileHandler(fileService service.FileService, basePath string) *FileHandler {
	return &FileHandler{fileService: fileService, basePath: strings.TrimRight(basePath, "/")}
}

func (h *FileHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	router.GET(h.basePath+"/:key", authenticate, h.Download)
}

// Download streams an uploaded file
// @Summary      Download an uploaded file
// @Description  Open to reviewers of the uploading company and to anyone who may view the request or document the file is attached to.
// @Tags         uploads
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        key  path      string  true  "Upload location"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /uploads/{key} [get]
func (h *FileHandler) Download(c *gin.Context) {
	path, err := h.fileService.Open(c.Request.Context(), middleware.CurrentSession(c), c.Param("key"))
	if err != nil {
		respondError(c, err, true)
		return
	}

	c.Header("Cache-Control", "private, no-store")
	c.File(path)
}
