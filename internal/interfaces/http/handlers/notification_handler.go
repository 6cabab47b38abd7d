package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// NotificationHandler handles the per-user feed and admin broadcasts
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// List returns the caller's notifications, newest first
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notificationUsecase.List(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// MarkRead marks one notification read
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationUsecase.MarkRead(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead marks every notification of the caller read
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationUsecase.MarkAllRead(c.Request.Context(), middleware.GetActor(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes the given notifications of the caller
// POST /api/v1/notifications/delete {"ids": [...]}
func (h *NotificationHandler) Delete(c *gin.Context) {
	var input struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}
	deleted, err := h.notificationUsecase.Delete(c.Request.Context(), middleware.GetActor(c), input.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Broadcast sends an admin message to all users or all dealers
// POST /api/v1/admin/broadcasts
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var input entities.BroadcastInput
	if !bindJSON(c, &input) {
		return
	}
	broadcast, delivered, err := h.notificationUsecase.Broadcast(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"broadcast": broadcast, "delivered": delivered})
}

// ListBroadcasts returns the broadcast history
// GET /api/v1/admin/broadcasts
func (h *NotificationHandler) ListBroadcasts(c *gin.Context) {
	items, err := h.notificationUsecase.ListBroadcasts(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// EditBroadcast edits a history entry
// PUT /api/v1/admin/broadcasts/:id
func (h *NotificationHandler) EditBroadcast(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.BroadcastEdit
	if !bindJSON(c, &input) {
		return
	}
	broadcast, err := h.notificationUsecase.EditBroadcast(c.Request.Context(), middleware.GetActor(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, broadcast)
}

// DeleteBroadcast removes a history entry
// DELETE /api/v1/admin/broadcasts/:id
func (h *NotificationHandler) DeleteBroadcast(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationUsecase.DeleteBroadcast(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
