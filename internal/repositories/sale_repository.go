package repositories

import (
	"fmt"
	"sort"

	"warehouse_backend/internal/models"
)

// SaleRepository defines the interface for sale storage. Sales are append-only.
type SaleRepository interface {
	CreateSale(executor Executor, sale *models.Sale) error
	GetSaleByID(executor Executor, id string) (*models.Sale, error)
	GetSales(executor Executor, itemID string) ([]models.Sale, error)
}

type saleRepository struct{}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository() SaleRepository {
	return &saleRepository{}
}

// CreateSale appends a sale record.
func (r *saleRepository) CreateSale(executor Executor, sale *models.Sale) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.sales {
			if existing.ID == sale.ID {
				return fmt.Errorf("%w: sale id %s", ErrDuplicateKey, sale.ID)
			}
		}
		st.sales = append(st.sales, *sale)
		return nil
	})
}

// GetSaleByID retrieves a sale by its id.
func (r *saleRepository) GetSaleByID(executor Executor, id string) (*models.Sale, error) {
	var found *models.Sale
	err := executor.read(func(st *memoryState) error {
		for _, s := range st.sales {
			if s.ID == id {
				found = &s
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

// GetSales lists sales, most recent sale date first. An empty itemID returns all sales.
func (r *saleRepository) GetSales(executor Executor, itemID string) ([]models.Sale, error) {
	sales := []models.Sale{}
	err := executor.read(func(st *memoryState) error {
		for _, s := range st.sales {
			if itemID != "" && s.InventoryItemID != itemID {
				continue
			}
			sales = append(sales, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SoldDate.After(sales[j].SoldDate)
	})
	return sales, nil
}
