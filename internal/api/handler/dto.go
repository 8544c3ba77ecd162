package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/shared"
	"github.com/investbuddy/circles-api/internal/domain/transaction"
)

// ContributeRequest represents a request to contribute to a goal.
// Amount is in dollars; SourceAccount may be empty for contributions that
// do not debit a balance.
type ContributeRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	SourceAccount    string          `json:"source_account" binding:"omitempty,oneof=chequing savings"`
	InvestmentTypeID string          `json:"investment_type_id"`
}

// CreateGoalRequest represents a request to create a goal and its circle
type CreateGoalRequest struct {
	Name               string          `json:"name" binding:"required"`
	TargetAmount       decimal.Decimal `json:"target_amount" binding:"required"`
	Portfolio          string          `json:"portfolio"`
	ContributionAmount decimal.Decimal `json:"contribution_amount"`
	Frequency          string          `json:"frequency"`
	WithdrawalAccount  string          `json:"withdrawal_account" binding:"omitempty,oneof=chequing savings"`
	DurationMonths     int             `json:"duration_months" binding:"omitempty,min=1,max=600"`
	FriendIDs          []string        `json:"friend_ids"`
}

// ScenarioRequest represents a request to trigger a demo scene
type ScenarioRequest struct {
	Name string `json:"name" binding:"required"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID                    string  `json:"id"`
	CircleID              string  `json:"circle_id"`
	Title                 string  `json:"title"`
	TargetAmount          string  `json:"target_amount"`
	CurrentAmount         string  `json:"current_amount"`
	Portfolio             string  `json:"portfolio,omitempty"`
	ContributionAmount    string  `json:"contribution_amount,omitempty"`
	ContributionFrequency string  `json:"contribution_frequency,omitempty"`
	WithdrawalAccount     string  `json:"withdrawal_account,omitempty"`
	Status                string  `json:"status"`
	TargetDate            *string `json:"target_date,omitempty"`
	CreatedAt             string  `json:"created_at"`
}

// ContributionResponse represents a contribution in API responses
type ContributionResponse struct {
	ID        string `json:"id"`
	GoalID    string `json:"goal_id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Source    string `json:"source"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

// GoalDetailResponse represents a goal with its recent contributions
type GoalDetailResponse struct {
	Goal          GoalResponse           `json:"goal"`
	Contributions []ContributionResponse `json:"contributions"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name,omitempty"`
	Email           string `json:"email,omitempty"`
	FriendCode      string `json:"friend_code,omitempty"`
	BalanceChequing string `json:"balance_chequing"`
	BalanceSavings  string `json:"balance_savings"`
	CreatedAt       string `json:"created_at"`
}

// TransactionResponse represents an audit record in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	GoalID      string `json:"goal_id,omitempty"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=20" binding:"min=1,max=100"`
}

func mapGoalToResponse(g *goal.Goal) GoalResponse {
	resp := GoalResponse{
		ID:                    g.ID.String(),
		CircleID:              g.CircleID.String(),
		Title:                 g.Title,
		TargetAmount:          shared.CentsToDollars(g.TargetCents).String(),
		CurrentAmount:         shared.CentsToDollars(g.CurrentCents).String(),
		Portfolio:             g.Portfolio,
		ContributionFrequency: g.ContributionFrequency,
		WithdrawalAccount:     string(g.WithdrawalAccount),
		Status:                string(g.Status),
		CreatedAt:             g.CreatedAt.Format(time.RFC3339),
	}
	if g.ContributionCents > 0 {
		resp.ContributionAmount = shared.CentsToDollars(g.ContributionCents).String()
	}
	if g.TargetDate != nil {
		d := g.TargetDate.Format(time.RFC3339)
		resp.TargetDate = &d
	}
	return resp
}

func mapContributionToResponse(con *contribution.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:        con.ID.String(),
		GoalID:    con.GoalID.String(),
		UserID:    con.UserID.String(),
		Amount:    shared.CentsToDollars(con.AmountCents).String(),
		Source:    string(con.Source),
		Notes:     con.Notes,
		CreatedAt: con.CreatedAt.Format(time.RFC3339),
	}
}

func mapProfileToResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID.String(),
		Username:        p.Username,
		FullName:        p.FullName,
		Email:           p.Email,
		FriendCode:      p.FriendCode,
		BalanceChequing: shared.CentsToDollars(p.BalanceChequing).String(),
		BalanceSavings:  shared.CentsToDollars(p.BalanceSavings).String(),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransactionToResponse(rec *transaction.Record) TransactionResponse {
	resp := TransactionResponse{
		ID:          rec.ID.String(),
		UserID:      rec.UserID.String(),
		Type:        string(rec.Type),
		Amount:      shared.CentsToDollars(rec.AmountCents).String(),
		FromAccount: rec.FromAccount,
		ToAccount:   rec.ToAccount,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.GoalID != uuid.Nil {
		resp.GoalID = rec.GoalID.String()
	}
	return resp
}
