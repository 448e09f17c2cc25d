package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/interfaces/http/middleware"
	"college-portal.backend/internal/interfaces/http/response"
	"college-portal.backend/pkg/utils"
)

// VerificationService is the part of the verification usecase the handler needs
type VerificationService interface {
	ListPending(ctx context.Context, page, limit int) ([]*entities.VerificationRequest, utils.PaginationMeta, error)
	Decide(ctx context.Context, callerID uuid.UUID, input *entities.DecideInput) (*entities.DecisionResult, error)
}

// VerificationHandler handles the registration approval endpoints
type VerificationHandler struct {
	usecase VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(usecase VerificationService) *VerificationHandler {
	return &VerificationHandler{usecase: usecase}
}

// ListPending lists pending registration requests, oldest first
// GET /api/v1/requests/pending
func (h *VerificationHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pagination := utils.GetPaginationParams(page, limit)

	items, meta, err := h.usecase.ListPending(c.Request.Context(), pagination.Page, pagination.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, items, meta)
}

// Decide approves or rejects a pending request
// POST /api/v1/requests/decide
func (h *VerificationHandler) Decide(c *gin.Context) {
	var input entities.DecideInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	result, err := h.usecase.Decide(c.Request.Context(), callerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
