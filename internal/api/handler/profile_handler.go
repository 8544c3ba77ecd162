package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/investbuddy/circles-api/internal/api/service"
	"github.com/investbuddy/circles-api/internal/domain/profile"
)

// ProfileHandler handles HTTP requests for profile operations
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(logger *slog.Logger, profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// List returns all profiles with their balances
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, mapProfileToResponse(p))
	}
	RespondOK(c, responses)
}

// GetByID retrieves a profile by its ID, returning 404 if not found
func (h *ProfileHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid profile ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid profile ID")
		return
	}

	p, err := h.profileService.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound{}) {
			RespondNotFound(c, "Profile not found")
			return
		}
		h.logger.Error("Failed to get profile", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapProfileToResponse(p))
}

// GetTransactions retrieves the paginated audit trail for a profile
func (h *ProfileHandler) GetTransactions(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid profile ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid profile ID")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	records, total, err := h.profileService.GetAuditHistory(c.Request.Context(), id, params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to get audit history", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]TransactionResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapTransactionToResponse(rec))
	}
	RespondWithPaginatedData(c, http.StatusOK, responses, params.Page, params.PerPage, int(total))
}
