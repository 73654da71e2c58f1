package repositories

import (
	"fmt"
	"sort"
	"strings"

	"warehouse_backend/internal/models"
)

// ItemRepository defines the interface for inventory item storage.
type ItemRepository interface {
	CreateItem(executor Executor, item *models.InventoryItem) error
	GetItemByID(executor Executor, id string) (*models.InventoryItem, error)
	GetItems(executor Executor, filters models.ItemFilters) ([]models.InventoryItem, int, error) // Items, total count, error
	GetAllItems(executor Executor) ([]models.InventoryItem, error)
	UpdateItem(executor Executor, item *models.InventoryItem) error
	DeleteItem(executor Executor, id string) error
}

type itemRepository struct{}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository() ItemRepository {
	return &itemRepository{}
}

// CreateItem appends a new item. The id and internal id must both be unused.
func (r *itemRepository) CreateItem(executor Executor, item *models.InventoryItem) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.items {
			if existing.ID == item.ID {
				return fmt.Errorf("%w: item id %s", ErrDuplicateKey, item.ID)
			}
			if existing.InternalID == item.InternalID {
				return fmt.Errorf("%w: internal id %s", ErrDuplicateKey, item.InternalID)
			}
		}
		st.items = append(st.items, *item)
		return nil
	})
}

// GetItemByID retrieves an item by its id.
func (r *itemRepository) GetItemByID(executor Executor, id string) (*models.InventoryItem, error) {
	var found *models.InventoryItem
	err := executor.read(func(st *memoryState) error {
		for i := range st.items {
			if st.items[i].ID == id {
				item := st.items[i]
				found = &item
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

// GetItems lists items matching the filters, newest first, with pagination.
// Search is case-insensitive over name, internal id and serial number.
func (r *itemRepository) GetItems(executor Executor, filters models.ItemFilters) ([]models.InventoryItem, int, error) {
	var matched []models.InventoryItem
	err := executor.read(func(st *memoryState) error {
		search := strings.ToLower(strings.TrimSpace(filters.Search))
		for _, item := range st.items {
			if search != "" && !itemMatchesSearch(item, search) {
				continue
			}
			if filters.CategoryID != "" && (item.CategoryID == nil || *item.CategoryID != filters.CategoryID) {
				continue
			}
			if filters.LocationID != "" && (item.LocationID == nil || *item.LocationID != filters.LocationID) {
				continue
			}
			if filters.Status != "" && item.Status != filters.Status {
				continue
			}
			matched = append(matched, item)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	page := paginate(matched, filters.Page, filters.PageSize)
	if page == nil {
		page = []models.InventoryItem{}
	}
	return page, total, nil
}

func itemMatchesSearch(item models.InventoryItem, search string) bool {
	if strings.Contains(strings.ToLower(item.Name), search) ||
		strings.Contains(strings.ToLower(item.InternalID), search) {
		return true
	}
	return item.SerialNumber != nil && strings.Contains(strings.ToLower(*item.SerialNumber), search)
}

// GetAllItems returns every item in insertion order.
func (r *itemRepository) GetAllItems(executor Executor) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := executor.read(func(st *memoryState) error {
		items = make([]models.InventoryItem, len(st.items))
		copy(items, st.items)
		return nil
	})
	return items, err
}

// UpdateItem replaces the stored item with the same id.
func (r *itemRepository) UpdateItem(executor Executor, item *models.InventoryItem) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.items {
			if st.items[i].ID == item.ID {
				st.items[i] = *item
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteItem removes an item.
func (r *itemRepository) DeleteItem(executor Executor, id string) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.items {
			if st.items[i].ID == id {
				st.items = append(st.items[:i], st.items[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
