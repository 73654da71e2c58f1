package repositories

import (
	"fmt"

	"warehouse_backend/internal/models"
)

// LocationRepository defines the interface for location storage.
// CurrentUsage on returned locations is the total quantity of items stored there.
type LocationRepository interface {
	CreateLocation(executor Executor, location *models.Location) error
	GetLocationByID(executor Executor, id string) (*models.Location, error)
	GetLocations(executor Executor) ([]models.Location, error)
}

type locationRepository struct{}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository() LocationRepository {
	return &locationRepository{}
}

func usageOfLocation(st *memoryState, locationID string) int {
	usage := 0
	for _, item := range st.items {
		if item.LocationID != nil && *item.LocationID == locationID {
			usage += item.Quantity
		}
	}
	return usage
}

// CreateLocation appends a location. Codes are unique.
func (r *locationRepository) CreateLocation(executor Executor, location *models.Location) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.locations {
			if existing.ID == location.ID || existing.Code == location.Code {
				return fmt.Errorf("%w: location code %s", ErrDuplicateKey, location.Code)
			}
		}
		stored := *location
		stored.CurrentUsage = 0
		st.locations = append(st.locations, stored)
		return nil
	})
}

// GetLocationByID retrieves a location by its id.
func (r *locationRepository) GetLocationByID(executor Executor, id string) (*models.Location, error) {
	var found *models.Location
	err := executor.read(func(st *memoryState) error {
		for _, l := range st.locations {
			if l.ID == id {
				l.CurrentUsage = usageOfLocation(st, l.ID)
				found = &l
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetLocations lists locations in creation order.
func (r *locationRepository) GetLocations(executor Executor) ([]models.Location, error) {
	locations := []models.Location{}
	err := executor.read(func(st *memoryState) error {
		for _, l := range st.locations {
			l.CurrentUsage = usageOfLocation(st, l.ID)
			locations = append(locations, l)
		}
		return nil
	})
	return locations, err
}
