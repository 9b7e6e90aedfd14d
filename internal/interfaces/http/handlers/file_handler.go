package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/interfaces/http/response"
	"qcars.backend/internal/usecases"
)

// FileHandler serves stored listing images
type FileHandler struct {
	postUsecase *usecases.PostUsecase
}

// NewFileHandler creates a new file handler
func NewFileHandler(postUsecase *usecases.PostUsecase) *FileHandler {
	return &FileHandler{postUsecase: postUsecase}
}

// GetFile streams a stored image
// GET /api/v1/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid file ID"))
		return
	}

	file, err := h.postUsecase.GetFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(200, contentType, file.Data)
}
