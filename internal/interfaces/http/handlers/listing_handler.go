package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// ListingHandler handles listing endpoints
type ListingHandler struct {
	listingUsecase *usecases.ListingUsecase
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingUsecase *usecases.ListingUsecase) *ListingHandler {
	return &ListingHandler{listingUsecase: listingUsecase}
}

// ListPublic returns the public inventory
// GET /api/v1/listings?category=Rental&page=1&limit=20
func (h *ListingHandler) ListPublic(c *gin.Context) {
	page, err := h.listingUsecase.ListPublic(c.Request.Context(), c.Query("category"), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Get returns one listing
// GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := h.listingUsecase.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}

// Create stores a new listing
// POST /api/v1/listings
func (h *ListingHandler) Create(c *gin.Context) {
	var input entities.ListingInput
	if !bindJSON(c, &input) {
		return
	}
	listing, err := h.listingUsecase.Create(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, listing)
}

// Update edits non-status fields
// PATCH /api/v1/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.ListingUpdate
	if !bindJSON(c, &input) {
		return
	}
	listing, err := h.listingUsecase.Update(c.Request.Context(), middleware.GetActor(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}

// Approve publishes a pending listing
// POST /api/v1/listings/:id/approve
func (h *ListingHandler) Approve(c *gin.Context) {
	h.moderate(c, h.listingUsecase.Approve)
}

// Reject refuses a pending listing
// POST /api/v1/listings/:id/reject {"reason": "..."}
func (h *ListingHandler) Reject(c *gin.Context) {
	var input reasonInput
	if !bindJSON(c, &input) {
		return
	}
	h.moderate(c, func(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Listing, error) {
		return h.listingUsecase.Reject(ctx, actor, id, input.Reason)
	})
}

// Archive hides an approved listing
// POST /api/v1/listings/:id/archive
func (h *ListingHandler) Archive(c *gin.Context) {
	h.moderate(c, h.listingUsecase.Archive)
}

// Restore brings back an archived or rejected listing
// POST /api/v1/listings/:id/restore
func (h *ListingHandler) Restore(c *gin.Context) {
	h.moderate(c, h.listingUsecase.Restore)
}

func (h *ListingHandler) moderate(c *gin.Context, command func(context.Context, entities.Actor, uuid.UUID) (*entities.Listing, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := command(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}

// SetSuspended toggles the public-inventory overlay
// PUT /api/v1/listings/:id/suspended {"value": true}
func (h *ListingHandler) SetSuspended(c *gin.Context) {
	h.setFlag(c, h.listingUsecase.SetSuspended)
}

// SetFeatured toggles the featured slot
// PUT /api/v1/listings/:id/featured {"value": true}
func (h *ListingHandler) SetFeatured(c *gin.Context) {
	h.setFlag(c, h.listingUsecase.SetFeatured)
}

func (h *ListingHandler) setFlag(c *gin.Context, set func(context.Context, entities.Actor, uuid.UUID, bool) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input flagInput
	if !bindJSON(c, &input) {
		return
	}
	if err := set(c.Request.Context(), middleware.GetActor(c), id, *input.Value); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a listing
// DELETE /api/v1/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.listingUsecase.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOwn returns the calling dealer's listings
// GET /api/v1/dealer/listings
func (h *ListingHandler) ListOwn(c *gin.Context) {
	page, err := h.listingUsecase.ListOwn(c.Request.Context(), middleware.GetActor(c), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ListAll is the admin inventory, optionally narrowed by ?status=pending,archived
// GET /api/v1/admin/listings
func (h *ListingHandler) ListAll(c *gin.Context) {
	var statuses []entities.ListingStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, entities.ListingStatus(strings.TrimSpace(s)))
		}
	}
	page, err := h.listingUsecase.ListAll(c.Request.Context(), middleware.GetActor(c), statuses, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ModerationQueue lists pending listings
// GET /api/v1/admin/listings/pending
func (h *ListingHandler) ModerationQueue(c *gin.Context) {
	page, err := h.listingUsecase.ModerationQueue(c.Request.Context(), middleware.GetActor(c), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}
