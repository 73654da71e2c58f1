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

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Member      *models.TeamMember `json:"member"`
	AccessToken string             `json:"access_token"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	GetProfile(memberID string) (*models.TeamMember, error)
}

// --- authService Implementation ---
type authService struct {
	store         *repositories.Store
	teamRepo      repositories.TeamRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(store *repositories.Store, teamRepo repositories.TeamRepository, jwtSecret string, jwtExp time.Duration) AuthService {
	return &authService{
		store:         store,
		teamRepo:      teamRepo,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExp,
	}
}

// Login checks the member's bcrypt hash and issues an access token.
// Members without a password cannot log in.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	member, err := s.teamRepo.GetMemberByEmail(s.store, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if member.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(s.jwtSecret, s.jwtExpiration, member.ID, member.Email, string(member.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		Member:      member,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.jwtExpiration),
	}, nil
}

func (s *authService) GetProfile(memberID string) (*models.TeamMember, error) {
	member, err := s.teamRepo.GetMemberByID(s.store, memberID)
	if err != nil {
		return nil, translateNotFound(err, ErrMemberNotFound, "getting profile")
	}
	return member, nil
}
