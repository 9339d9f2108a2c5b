package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrportal/internal/middleware"
	"hrportal/internal/model"
	"hrportal/pkg/response"
)

// maxUploadSize caps fulfillment uploads.
const maxUploadSize = 10 << 20

// FileStore keeps uploaded fulfillment files, scoped to the uploader's company.
type FileStore interface {
	Save(ctx context.Context, companyID uuid.UUID, name string, r io.Reader) (string, error)
	Resolve(ctx context.Context, key string) (string, error)
}

type UploadHandler struct {
	files FileStore
}

func NewUploadHandler(files FileStore) *UploadHandler {
	return &UploadHandler{files: files}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	router.POST("/api/uploads", authenticate, middleware.RequireRole(model.ReviewerRoles...), h.Upload)
}

// Upload stores a file for later use as a fulfillment
// @Summary      Upload a document
// @Description  Stores the file and returns the location to pass as uploaded_location when fulfilling a document request.
// @Tags         uploads
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document file"
// @Success      201   {object}  response.Response{data=object}
// @Failure      400   {object}  response.Response
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required (max 10MB)")
		return
	}
	f, err := header.Open()
	if err != nil {
		badRequest(c, "unreadable upload")
		return
	}
	defer f.Close()

	company := uuid.Nil
	if p := middleware.CurrentSession(c).Principal(); p != nil && p.CompanyID != nil {
		company = *p.CompanyID
	}

	key, err := h.files.Save(c.Request.Context(), company, header.Filename, f)
	if err != nil {
		respondError(c, err, false)
		return
	}
	url, err := h.files.Resolve(c.Request.Context(), key)
	if err != nil {
		respondError(c, err, false)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"location": key,
		"url":      url,
		"size":     header.Size,
	}))
}
