package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/transaction"
)

const profileListLimit = 100

type profileService struct {
	profileRepo     profile.Repository
	auditRepo       transaction.Repository
	devFallbackUser bool
	log             *slog.Logger
}

// NewProfileService creates a new profile service. When devFallbackUser is
// enabled, requests without an identity header resolve to the first stored
// profile, which keeps local demos working without an auth stack.
func NewProfileService(
	profileRepo profile.Repository,
	auditRepo transaction.Repository,
	devFallbackUser bool,
	log *slog.Logger,
) ProfileService {
	return &profileService{
		profileRepo:     profileRepo,
		auditRepo:       auditRepo,
		devFallbackUser: devFallbackUser,
		log:             log,
	}
}

func (s *profileService) ResolveUser(ctx context.Context, headerValue string) (uuid.UUID, error) {
	if headerValue != "" {
		id, err := uuid.Parse(headerValue)
		if err != nil {
			return uuid.Nil, ErrUnauthenticated
		}
		return id, nil
	}

	if !s.devFallbackUser {
		return uuid.Nil, ErrUnauthenticated
	}

	p, err := s.profileRepo.First(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	s.log.Debug("Resolved request to fallback user", "user_id", p.ID)
	return p.ID, nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *profileService) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return s.profileRepo.List(ctx, profileListLimit)
}

func (s *profileService) GetAuditHistory(ctx context.Context, userID uuid.UUID, page, perPage int) ([]*transaction.Record, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	records, err := s.auditRepo.GetByUserID(ctx, userID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.auditRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
