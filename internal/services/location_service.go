package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"
)

// --- Custom Service Errors for Location ---
var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrLocationCodeExists = errors.New("location code already exists")
	ErrInvalidParent      = fmt.Errorf("%w: parent location", ErrValidation)
)

// --- Location DTOs ---
type CreateLocationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Level       int     `json:"level" validate:"gte=1"`
	ParentID    *string `json:"parent_id"`
	Code        *string `json:"code"` // generated when empty
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
}

// --- LocationService Interface ---
type LocationService interface {
	CreateLocation(req CreateLocationRequest) (*models.Location, error)
	GetLocationByID(id string) (*models.Location, error)
	GetLocationDetail(id string) (*models.LocationDetail, error)
	GetLocations() ([]models.Location, error)
}

type locationService struct {
	store        *repositories.Store
	locationRepo repositories.LocationRepository
	itemRepo     repositories.ItemRepository
	now          func() time.Time
}

// NewLocationService creates a new instance of LocationService.
func NewLocationService(store *repositories.Store, locationRepo repositories.LocationRepository, itemRepo repositories.ItemRepository) LocationService {
	return &locationService{store: store, locationRepo: locationRepo, itemRepo: itemRepo, now: time.Now}
}

// CreateLocation adds a location under an optional parent. The parent must sit at a lower level.
func (s *locationService) CreateLocation(req CreateLocationRequest) (*models.Location, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	location := &models.Location{
		ID:          utils.GenerateID(),
		Name:        strings.TrimSpace(req.Name),
		Description: utils.NewNullString(utils.Deref(req.Description, "")),
		Level:       req.Level,
		ParentID:    utils.NewNullString(utils.Deref(req.ParentID, "")),
		Code:        strings.TrimSpace(utils.Deref(req.Code, "")),
		Capacity:    req.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if location.Code == "" {
		location.Code = utils.GenerateLocationCode(location.Name, location.Level, now)
	}

	err := s.store.Update(func(tx *repositories.Tx) error {
		if location.ParentID != nil {
			parent, err := s.locationRepo.GetLocationByID(tx, *location.ParentID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: %s does not exist", ErrInvalidParent, *location.ParentID)
				}
				return fmt.Errorf("getting parent location: %w", err)
			}
			if parent.Level >= location.Level {
				return fmt.Errorf("%w: parent level %d must be lower than %d", ErrInvalidParent, parent.Level, location.Level)
			}
		}
		if err := s.locationRepo.CreateLocation(tx, location); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrLocationCodeExists
			}
			return fmt.Errorf("creating location: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationService) GetLocationByID(id string) (*models.Location, error) {
	location, err := s.locationRepo.GetLocationByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrLocationNotFound, "getting location")
	}
	return location, nil
}

// GetLocationDetail returns the location with its level name, utilization band and stored items.
func (s *locationService) GetLocationDetail(id string) (*models.LocationDetail, error) {
	var detail *models.LocationDetail
	err := s.store.View(func(tx *repositories.Tx) error {
		location, err := s.locationRepo.GetLocationByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrLocationNotFound, "getting location")
		}
		items, _, err := s.itemRepo.GetItems(tx, models.ItemFilters{LocationID: id})
		if err != nil {
			return fmt.Errorf("listing items at location: %w", err)
		}
		detail = &models.LocationDetail{
			Location:    *location,
			LevelName:   models.LocationLevelName(location.Level),
			Utilization: location.UtilizationBand(),
			Items:       items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *locationService) GetLocations() ([]models.Location, error) {
	return s.locationRepo.GetLocations(s.store)
}
