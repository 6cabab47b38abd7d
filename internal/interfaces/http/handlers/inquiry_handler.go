package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// InquiryHandler handles buyer inquiries
type InquiryHandler struct {
	inquiryUsecase *usecases.InquiryUsecase
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryUsecase *usecases.InquiryUsecase) *InquiryHandler {
	return &InquiryHandler{inquiryUsecase: inquiryUsecase}
}

// Submit records a question about a listing
// POST /api/v1/inquiries
func (h *InquiryHandler) Submit(c *gin.Context) {
	var input entities.InquiryInput
	if !bindJSON(c, &input) {
		return
	}
	inquiry, err := h.inquiryUsecase.Submit(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inquiry)
}

// List returns every inquiry to admins
// GET /api/v1/admin/inquiries
func (h *InquiryHandler) List(c *gin.Context) {
	items, err := h.inquiryUsecase.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}
