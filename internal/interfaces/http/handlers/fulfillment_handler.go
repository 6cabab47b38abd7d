package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// FulfillmentHandler handles test drive booking and rental endpoints
type FulfillmentHandler struct {
	fulfillmentUsecase *usecases.FulfillmentUsecase
}

// NewFulfillmentHandler creates a new fulfillment handler
func NewFulfillmentHandler(fulfillmentUsecase *usecases.FulfillmentUsecase) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillmentUsecase: fulfillmentUsecase}
}

type commandInput struct {
	Command entities.FulfillmentCommand `json:"command" binding:"required"`
}

// RequestBooking creates a test drive request
// POST /api/v1/bookings
func (h *FulfillmentHandler) RequestBooking(c *gin.Context) {
	var input entities.BookingInput
	if !bindJSON(c, &input) {
		return
	}
	booking, err := h.fulfillmentUsecase.RequestBooking(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// ListBookings is role scoped
// GET /api/v1/bookings?status=Pending
func (h *FulfillmentHandler) ListBookings(c *gin.Context) {
	items, err := h.fulfillmentUsecase.ListBookings(c.Request.Context(), middleware.GetActor(c), entities.FulfillmentStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetBooking returns one booking
// GET /api/v1/bookings/:id
func (h *FulfillmentHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.fulfillmentUsecase.GetBooking(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// TransitionBooking applies accept, cancel or revert
// POST /api/v1/bookings/:id/transition {"command": "accept"}
func (h *FulfillmentHandler) TransitionBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input commandInput
	if !bindJSON(c, &input) {
		return
	}
	booking, err := h.fulfillmentUsecase.TransitionBooking(c.Request.Context(), middleware.GetActor(c), id, input.Command)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// SetBookingHidden sets the hideFromDealer overlay
// PUT /api/v1/bookings/:id/hidden {"value": true}
func (h *FulfillmentHandler) SetBookingHidden(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input flagInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.fulfillmentUsecase.SetBookingHidden(c.Request.Context(), middleware.GetActor(c), id, *input.Value); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestRental creates a rental request
// POST /api/v1/rentals
func (h *FulfillmentHandler) RequestRental(c *gin.Context) {
	var input entities.RentalInput
	if !bindJSON(c, &input) {
		return
	}
	rental, err := h.fulfillmentUsecase.RequestRental(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rental)
}

// ListRentals is role scoped
// GET /api/v1/rentals?status=Accepted
func (h *FulfillmentHandler) ListRentals(c *gin.Context) {
	items, err := h.fulfillmentUsecase.ListRentals(c.Request.Context(), middleware.GetActor(c), entities.FulfillmentStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetRental returns one rental
// GET /api/v1/rentals/:id
func (h *FulfillmentHandler) GetRental(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rental, err := h.fulfillmentUsecase.GetRental(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rental)
}

// TransitionRental applies accept, cancel or revert
// POST /api/v1/rentals/:id/transition {"command": "accept"}
func (h *FulfillmentHandler) TransitionRental(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input commandInput
	if !bindJSON(c, &input) {
		return
	}
	rental, err := h.fulfillmentUsecase.TransitionRental(c.Request.Context(), middleware.GetActor(c), id, input.Command)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rental)
}

// SetRentalHidden sets the hideFromDealer overlay
// PUT /api/v1/rentals/:id/hidden {"value": true}
func (h *FulfillmentHandler) SetRentalHidden(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input flagInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.fulfillmentUsecase.SetRentalHidden(c.Request.Context(), middleware.GetActor(c), id, *input.Value); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
