package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/pkg/utils"
)

// pathID parses a uuid path parameter and writes a 400 when it is malformed
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body and writes a 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}

type flagInput struct {
	Value *bool `json:"value" binding:"required"`
}

type reasonInput struct {
	Reason string `json:"reason"`
}
