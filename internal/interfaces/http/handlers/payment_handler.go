package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// PaymentHandler handles payment proof endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Submit records a proof of payment
// POST /api/v1/payments
func (h *PaymentHandler) Submit(c *gin.Context) {
	var input entities.PaymentInput
	if !bindJSON(c, &input) {
		return
	}
	payment, err := h.paymentUsecase.Submit(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

// List returns payments visible to the caller
// GET /api/v1/payments?status=Pending
func (h *PaymentHandler) List(c *gin.Context) {
	items, err := h.paymentUsecase.List(c.Request.Context(), middleware.GetActor(c), entities.PaymentStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Get returns one payment
// GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payment, err := h.paymentUsecase.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

// Verify settles a pending payment as verified
// POST /api/v1/payments/:id/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	h.decide(c, entities.PaymentVerify)
}

// Reject settles a pending payment as rejected
// POST /api/v1/payments/:id/reject
func (h *PaymentHandler) Reject(c *gin.Context) {
	h.decide(c, entities.PaymentReject)
}

func (h *PaymentHandler) decide(c *gin.Context, decision entities.PaymentDecision) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payment, err := h.paymentUsecase.Decide(c.Request.Context(), middleware.GetActor(c), id, decision)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}
