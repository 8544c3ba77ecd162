package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/investbuddy/circles-api/internal/api/middleware"
	"github.com/investbuddy/circles-api/internal/api/service"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/shared"
)

// GoalHandler handles HTTP requests for goal operations
type GoalHandler struct {
	goalService         service.GoalService
	contributionService service.ContributionService
	profileService      service.ProfileService
	logger              *slog.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(
	logger *slog.Logger,
	goalService service.GoalService,
	contributionService service.ContributionService,
	profileService service.ProfileService,
) *GoalHandler {
	return &GoalHandler{
		goalService:         goalService,
		contributionService: contributionService,
		profileService:      profileService,
		logger:              logger,
	}
}

// Create handles goal creation: the goal, its owning circle, and the
// membership rows for the creator and invited friends
func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := h.profileService.ResolveUser(c.Request.Context(), middleware.GetUserIDHeader(c))
	if err != nil {
		RespondUnauthorized(c, "")
		return
	}

	friendIDs := make([]uuid.UUID, 0, len(req.FriendIDs))
	for _, raw := range req.FriendIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid friend ID: "+raw)
			return
		}
		friendIDs = append(friendIDs, id)
	}

	cmd := &service.CreateGoalCommand{
		Name:              req.Name,
		CreatedBy:         userID,
		TargetCents:       shared.DollarsToCents(req.TargetAmount),
		Portfolio:         req.Portfolio,
		ContributionCents: shared.DollarsToCents(req.ContributionAmount),
		Frequency:         req.Frequency,
		WithdrawalAccount: shared.AccountKind(req.WithdrawalAccount),
		DurationMonths:    req.DurationMonths,
		FriendIDs:         friendIDs,
	}

	g, err := h.goalService.CreateGoal(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, goal.ErrEmptyTitle) || errors.Is(err, goal.ErrInvalidTarget) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create goal", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapGoalToResponse(g))
}

// List retrieves a paginated list of goals, newest first
func (h *GoalHandler) List(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list goals", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, mapGoalToResponse(g))
	}
	RespondOK(c, responses)
}

// GetByID retrieves a goal and its recent contributions, returning 404 if not found
func (h *GoalHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid goal ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid goal ID")
		return
	}

	g, contribs, err := h.goalService.GetGoalByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound{}) {
			RespondNotFound(c, "Goal not found")
			return
		}
		h.logger.Error("Failed to get goal", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	detail := GoalDetailResponse{
		Goal:          mapGoalToResponse(g),
		Contributions: make([]ContributionResponse, 0, len(contribs)),
	}
	for _, con := range contribs {
		detail.Contributions = append(detail.Contributions, mapContributionToResponse(con))
	}
	RespondOK(c, detail)
}

// Contribute runs the contribution pipeline for a goal: debit the source
// account, record the contribution, and update the goal total
func (h *GoalHandler) Contribute(c *gin.Context) {
	idParam := c.Param("id")
	goalID, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid goal ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid goal ID")
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := h.profileService.ResolveUser(c.Request.Context(), middleware.GetUserIDHeader(c))
	if err != nil {
		RespondUnauthorized(c, "")
		return
	}

	cmd := &service.ContributeCommand{
		GoalID:          goalID,
		UserID:          userID,
		AmountCents:     shared.DollarsToCents(req.Amount),
		SourceAccount:   shared.AccountKind(req.SourceAccount),
		InvestmentLabel: req.InvestmentTypeID,
	}

	if err := h.contributionService.Contribute(c.Request.Context(), cmd); err != nil {
		h.respondContributeError(c, err)
		return
	}

	RespondOK(c, gin.H{"ok": true})
}

// respondContributeError maps pipeline errors onto HTTP statuses. Funds and
// validation problems are the client's fault; missing rows are 404s;
// everything else is a 500.
func (h *GoalHandler) respondContributeError(c *gin.Context, err error) {
	var insufficientFunds profile.ErrInsufficientFunds
	switch {
	case errors.Is(err, profile.ErrInvalidAmount), errors.Is(err, profile.ErrInvalidAccount):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &insufficientFunds):
		RespondBadRequest(c, insufficientFunds.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		RespondUnauthorized(c, "")
	case errors.Is(err, profile.ErrProfileNotFound{}):
		RespondNotFound(c, "Profile not found")
	case errors.Is(err, goal.ErrGoalNotFound{}):
		RespondNotFound(c, "Goal not found")
	default:
		h.logger.Error("Failed to process contribution", "error", err)
		RespondInternalError(c)
	}
}
