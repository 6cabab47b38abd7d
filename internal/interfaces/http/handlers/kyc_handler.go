package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// Submit records the caller's KYC packet
// POST /api/v1/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	var input entities.KYCSubmissionInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.kycUsecase.Submit(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Queue lists packets awaiting review
// GET /api/v1/admin/kyc
func (h *KYCHandler) Queue(c *gin.Context) {
	users, err := h.kycUsecase.Queue(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": users})
}

// Approve verifies a pending packet
// POST /api/v1/admin/kyc/:userId/approve
func (h *KYCHandler) Approve(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	user, err := h.kycUsecase.Approve(c.Request.Context(), middleware.GetActor(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Reject refuses a pending packet
// POST /api/v1/admin/kyc/:userId/reject {"reason": "..."}
func (h *KYCHandler) Reject(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var input reasonInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.kycUsecase.Reject(c.Request.Context(), middleware.GetActor(c), userID, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
