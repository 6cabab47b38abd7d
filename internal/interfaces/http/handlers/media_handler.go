package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// MediaHandler handles file uploads
type MediaHandler struct {
	mediaUsecase *usecases.MediaUsecase
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaUsecase *usecases.MediaUsecase) *MediaHandler {
	return &MediaHandler{mediaUsecase: mediaUsecase}
}

// Upload stores the multipart "file" field and returns its public URL
// POST /api/v1/uploads
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("unreadable file"))
		return
	}
	defer f.Close()

	url, err := h.mediaUsecase.Upload(c.Request.Context(), middleware.GetActor(c), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url})
}
