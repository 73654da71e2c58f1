package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Team ---
var (
	ErrMemberNotFound = errors.New("team member not found")
)

// --- Team DTOs ---
type CreateMemberRequest struct {
	Name       string                 `json:"name" validate:"required"`
	Email      string                 `json:"email" validate:"required,email"`
	Role       models.TeamRole        `json:"role" validate:"omitempty,oneof=admin manager user"`
	Department string                 `json:"department"`
	Phone      *string                `json:"phone"`
	Avatar     *string                `json:"avatar"`
	Status     *models.PresenceStatus `json:"status" validate:"omitempty,oneof=active away busy offline"`
	Password   *string                `json:"password" validate:"omitempty,min=8"`
}

type UpdateMemberStatusRequest struct {
	Status models.PresenceStatus `json:"status" validate:"required,oneof=active away busy offline"`
}

// --- TeamService Interface ---
type TeamService interface {
	CreateMember(req CreateMemberRequest) (*models.TeamMember, error)
	GetMemberByID(id string) (*models.TeamMember, error)
	GetMembers() ([]models.TeamMember, error)
	UpdateMemberStatus(id string, req UpdateMemberStatusRequest) (*models.TeamMember, error)
}

type teamService struct {
	store    *repositories.Store
	teamRepo repositories.TeamRepository
	now      func() time.Time
}

// NewTeamService creates a new instance of TeamService.
func NewTeamService(store *repositories.Store, teamRepo repositories.TeamRepository) TeamService {
	return &teamService{store: store, teamRepo: teamRepo, now: time.Now}
}

// CreateMember adds a team member. Emails are stored lower-cased and are not required to be unique.
func (s *teamService) CreateMember(req CreateMemberRequest) (*models.TeamMember, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		ID:         utils.GenerateID(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Role:       req.Role,
		Department: strings.TrimSpace(req.Department),
		Phone:      utils.NewNullString(utils.Deref(req.Phone, "")),
		Avatar:     utils.NewNullString(utils.Deref(req.Avatar, "")),
		Status:     models.PresenceActive,
		CreatedAt:  s.now(),
	}
	if member.Role == "" {
		member.Role = models.RoleUser
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		member.PasswordHash = string(hash)
	}

	if err := s.teamRepo.CreateMember(s.store, member); err != nil {
		return nil, fmt.Errorf("creating team member: %w", err)
	}
	return member, nil
}

func (s *teamService) GetMemberByID(id string) (*models.TeamMember, error) {
	member, err := s.teamRepo.GetMemberByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrMemberNotFound, "getting team member")
	}
	return member, nil
}

func (s *teamService) GetMembers() ([]models.TeamMember, error) {
	return s.teamRepo.GetMembers(s.store)
}

func (s *teamService) UpdateMemberStatus(id string, req UpdateMemberStatusRequest) (*models.TeamMember, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var updated *models.TeamMember
	err := s.store.Update(func(tx *repositories.Tx) error {
		member, err := s.teamRepo.GetMemberByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrMemberNotFound, "getting team member")
		}
		member.Status = req.Status
		if err := s.teamRepo.UpdateMember(tx, member); err != nil {
			return translateNotFound(err, ErrMemberNotFound, "updating team member")
		}
		updated = member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
