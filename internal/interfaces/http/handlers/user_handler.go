package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// UserHandler handles self-service profile and admin user endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// UpdateProfile renames the caller
// PUT /api/v1/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateSecuritySettings replaces the caller's security flags
// PUT /api/v1/me/security
func (h *UserHandler) UpdateSecuritySettings(c *gin.Context) {
	var input entities.SecuritySettings
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.UpdateSecuritySettings(c.Request.Context(), middleware.GetActor(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ToggleFavorite adds or removes a listing from the caller's favorites
// POST /api/v1/me/favorites/:listingId
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	listingID, ok := pathID(c, "listingId")
	if !ok {
		return
	}
	favorites, err := h.userUsecase.ToggleFavorite(c.Request.Context(), middleware.GetActor(c), listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

// ListFavorites returns the caller's favorite listings
// GET /api/v1/me/favorites
func (h *UserHandler) ListFavorites(c *gin.Context) {
	listings, err := h.userUsecase.ListFavorites(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": listings})
}

// ListUsers searches users by name or email
// GET /api/v1/admin/users?search=
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context(), middleware.GetActor(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": users})
}

// SetRole changes a user's role
// PUT /api/v1/admin/users/:id/role {"role": "DEALER"}
func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Role entities.UserRole `json:"role" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.SetRole(c.Request.Context(), middleware.GetActor(c), id, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// SetVerification is the admin verification override
// PUT /api/v1/admin/users/:id/verified {"value": true}
func (h *UserHandler) SetVerification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input flagInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.userUsecase.SetVerification(c.Request.Context(), middleware.GetActor(c), id, *input.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// SetSuspended blocks or unblocks a user
// PUT /api/v1/admin/users/:id/suspended {"value": true}
func (h *UserHandler) SetSuspended(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input flagInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.userUsecase.SetSuspended(c.Request.Context(), middleware.GetActor(c), id, *input.Value); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
