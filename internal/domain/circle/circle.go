package circle

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("circle name cannot be empty")

// maxNameLength caps circle names the same way the web client does.
const maxNameLength = 100

// Role defines a member's role within a circle
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Circle is a private group of users collaborating on one or more goals.
type Circle struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	IsPrivate bool      `json:"is_private"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member links a profile to a circle with a role.
type Member struct {
	CircleID uuid.UUID `json:"circle_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     Role      `json:"role"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewCircle creates a private circle owned by the given profile.
func NewCircle(name string, ownerID uuid.UUID) (*Circle, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}

	now := time.Now()
	return &Circle{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		IsPrivate: true,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewMembers builds the member rows for a circle: the creator as owner
// followed by the invited profiles as members. Nil entries in invited are
// skipped.
func NewMembers(circleID, creatorID uuid.UUID, invited []uuid.UUID) []*Member {
	now := time.Now()
	members := []*Member{{
		CircleID: circleID,
		UserID:   creatorID,
		Role:     RoleOwner,
		IsActive: true,
		JoinedAt: now,
	}}

	for _, id := range invited {
		if id == uuid.Nil || id == creatorID {
			continue
		}
		members = append(members, &Member{
			CircleID: circleID,
			UserID:   id,
			Role:     RoleMember,
			IsActive: true,
			JoinedAt: now,
		})
	}

	return members
}
