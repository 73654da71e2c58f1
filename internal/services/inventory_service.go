package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Inventory ---
var (
	ErrItemNotFound        = errors.New("inventory item not found")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrInsufficientStock   = errors.New("insufficient stock for sale")
	ErrInventoryValidation = fmt.Errorf("%w: inventory data", ErrValidation)
)

// DefaultMarkup is applied to the purchase price when a sale has no unit price.
var DefaultMarkup = decimal.NewFromFloat(1.2)

// DefaultSoldTo is the buyer recorded when a sale names none.
const DefaultSoldTo = "Walk-in Customer"

// --- Inventory DTOs ---
type CreateItemRequest struct {
	Name          string          `json:"name" validate:"required"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchasedFrom string          `json:"purchased_from" validate:"required"`
	SerialNumber  *string         `json:"serial_number"`
	AutoSerial    *bool           `json:"auto_serial"` // defaults to true
	CategoryID    *string         `json:"category_id"`
	LocationID    *string         `json:"location_id"`
	MinStockLevel *int            `json:"min_stock_level" validate:"omitempty,gte=0"`
}

// UpdateItemRequest replaces every editable field of an item.
type UpdateItemRequest struct {
	Name          string             `json:"name" validate:"required"`
	Quantity      int                `json:"quantity" validate:"gte=0"`
	PurchasePrice decimal.Decimal    `json:"purchase_price"`
	PurchaseDate  string             `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchasedFrom string             `json:"purchased_from" validate:"required"`
	SerialNumber  *string            `json:"serial_number"`
	CategoryID    *string            `json:"category_id"`
	LocationID    *string            `json:"location_id"`
	MinStockLevel *int               `json:"min_stock_level" validate:"omitempty,gte=0"`
	Status        *models.ItemStatus `json:"status" validate:"omitempty,oneof=in-stock low-stock out-of-stock sold damaged"`
}

type SellItemRequest struct {
	Quantity      int              `json:"quantity" validate:"gt=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	SoldTo        string           `json:"sold_to"`
	CustomerPhone *string          `json:"customer_phone"`
	SoldDate      string           `json:"sold_date" validate:"omitempty,datetime=2006-01-02"`
	SellerID      string           `json:"seller_id"`
}

// SaleResult is the sale together with the item as it stands afterwards.
type SaleResult struct {
	Sale *models.Sale          `json:"sale"`
	Item *models.InventoryItem `json:"item"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	CreateItem(req CreateItemRequest) (*models.InventoryItem, error)
	GetItemByID(id string) (*models.InventoryItem, error)
	GetItems(filters models.ItemFilters) ([]models.InventoryItem, int, error)
	UpdateItem(id string, req UpdateItemRequest) (*models.InventoryItem, error)
	DeleteItem(id string) error
	SellItem(itemID string, req SellItemRequest) (*SaleResult, error)
	GetSales(itemID string) ([]models.Sale, error)
	GetSaleByID(id string) (*models.Sale, error)
}

// --- inventoryService Implementation ---
type inventoryService struct {
	store        *repositories.Store
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
	locationRepo repositories.LocationRepository
	saleRepo     repositories.SaleRepository
	teamRepo     repositories.TeamRepository
	now          func() time.Time
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	store *repositories.Store,
	itemRepo repositories.ItemRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
	saleRepo repositories.SaleRepository,
	teamRepo repositories.TeamRepository,
) InventoryService {
	return &inventoryService{
		store:        store,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		saleRepo:     saleRepo,
		teamRepo:     teamRepo,
		now:          time.Now,
	}
}

func (s *inventoryService) checkReferences(tx *repositories.Tx, categoryID, locationID *string) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(tx, *categoryID); err != nil {
			return translateNotFound(err, ErrCategoryNotFound, "checking category")
		}
	}
	if locationID != nil {
		if _, err := s.locationRepo.GetLocationByID(tx, *locationID); err != nil {
			return translateNotFound(err, ErrLocationNotFound, "checking location")
		}
	}
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: purchase price cannot be negative", ErrInventoryValidation)
	}
	return nil
}

func (s *inventoryService) CreateItem(req CreateItemRequest) (*models.InventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := checkPrice(req.PurchasePrice); err != nil {
		return nil, err
	}

	now := s.now()
	item := &models.InventoryItem{
		ID:            utils.GenerateID(),
		Name:          strings.TrimSpace(req.Name),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		PurchasedFrom: strings.TrimSpace(req.PurchasedFrom),
		SerialNumber:  utils.NewNullString(utils.Deref(req.SerialNumber, "")),
		CategoryID:    utils.NewNullString(utils.Deref(req.CategoryID, "")),
		LocationID:    utils.NewNullString(utils.Deref(req.LocationID, "")),
		MinStockLevel: req.MinStockLevel,
		InternalID:    utils.GenerateInternalID(now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if item.PurchaseDate == "" {
		item.PurchaseDate = now.Format(time.DateOnly)
	}
	if item.SerialNumber == nil && (req.AutoSerial == nil || *req.AutoSerial) {
		serial := utils.GenerateSerialNumber(item.Name, now)
		item.SerialNumber = &serial
	}
	item.Status = models.StockStatusFor(item.Quantity, item.MinStockLevel)

	err := s.store.Update(func(tx *repositories.Tx) error {
		if err := s.checkReferences(tx, item.CategoryID, item.LocationID); err != nil {
			return err
		}
		if err := s.itemRepo.CreateItem(tx, item); err != nil {
			return fmt.Errorf("creating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItemByID(id string) (*models.InventoryItem, error) {
	item, err := s.itemRepo.GetItemByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrItemNotFound, "getting item")
	}
	return item, nil
}

func (s *inventoryService) GetItems(filters models.ItemFilters) ([]models.InventoryItem, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 0 {
		filters.PageSize = 0
	}
	return s.itemRepo.GetItems(s.store, filters)
}

func (s *inventoryService) UpdateItem(id string, req UpdateItemRequest) (*models.InventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := checkPrice(req.PurchasePrice); err != nil {
		return nil, err
	}

	var updated *models.InventoryItem
	err := s.store.Update(func(tx *repositories.Tx) error {
		item, err := s.itemRepo.GetItemByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrItemNotFound, "getting item")
		}

		item.Name = strings.TrimSpace(req.Name)
		item.Quantity = req.Quantity
		item.PurchasePrice = req.PurchasePrice
		if req.PurchaseDate != "" {
			item.PurchaseDate = req.PurchaseDate
		}
		item.PurchasedFrom = strings.TrimSpace(req.PurchasedFrom)
		item.SerialNumber = utils.NewNullString(utils.Deref(req.SerialNumber, ""))
		item.CategoryID = utils.NewNullString(utils.Deref(req.CategoryID, ""))
		item.LocationID = utils.NewNullString(utils.Deref(req.LocationID, ""))
		item.MinStockLevel = req.MinStockLevel
		item.UpdatedAt = s.now()

		if req.Status != nil && (*req.Status == models.ItemStatusSold || *req.Status == models.ItemStatusDamaged) {
			item.Status = *req.Status
		} else {
			item.Status = models.StockStatusFor(item.Quantity, item.MinStockLevel)
		}

		if err := s.checkReferences(tx, item.CategoryID, item.LocationID); err != nil {
			return err
		}
		if err := s.itemRepo.UpdateItem(tx, item); err != nil {
			return translateNotFound(err, ErrItemNotFound, "updating item")
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) DeleteItem(id string) error {
	if err := s.itemRepo.DeleteItem(s.store, id); err != nil {
		return translateNotFound(err, ErrItemNotFound, "deleting item")
	}
	return nil
}

// SellItem records a sale and decrements the item in one store transaction,
// so the quantity check holds against concurrent sales.
func (s *inventoryService) SellItem(itemID string, req SellItemRequest) (*SaleResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SellerID) == "" {
		return nil, fmt.Errorf("%w: seller_id is required", ErrInventoryValidation)
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", ErrInventoryValidation)
	}

	now := s.now()
	soldDate := now
	if req.SoldDate != "" {
		d, err := time.Parse(time.DateOnly, req.SoldDate)
		if err != nil {
			return nil, fmt.Errorf("%w: sold_date must be YYYY-MM-DD", ErrInventoryValidation)
		}
		soldDate = d
	}

	result := &SaleResult{}
	err := s.store.Update(func(tx *repositories.Tx) error {
		item, err := s.itemRepo.GetItemByID(tx, itemID)
		if err != nil {
			return translateNotFound(err, ErrItemNotFound, "getting item")
		}
		seller, err := s.teamRepo.GetMemberByID(tx, req.SellerID)
		if err != nil {
			return translateNotFound(err, ErrMemberNotFound, "getting seller")
		}
		if req.Quantity > item.Quantity {
			return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, req.Quantity, item.Quantity)
		}

		qty := decimal.NewFromInt(int64(req.Quantity))
		unitPrice := item.PurchasePrice.Mul(DefaultMarkup).Round(2)
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		soldPrice := unitPrice.Mul(qty)
		soldTo := strings.TrimSpace(req.SoldTo)
		if soldTo == "" {
			soldTo = DefaultSoldTo
		}

		sale := &models.Sale{
			ID:              utils.GenerateID(),
			InventoryItemID: item.ID,
			QuantitySold:    req.Quantity,
			SoldPrice:       soldPrice,
			Profit:          soldPrice.Sub(item.PurchasePrice.Mul(qty)),
			SoldTo:          soldTo,
			SoldDate:        soldDate,
			SellerName:      seller.Name,
			SellerEmail:     seller.Email,
			CustomerPhone:   utils.NewNullString(utils.Deref(req.CustomerPhone, "")),
			CreatedAt:       now,
		}
		if err := s.saleRepo.CreateSale(tx, sale); err != nil {
			return fmt.Errorf("creating sale: %w", err)
		}

		item.Quantity -= req.Quantity
		item.Status = models.StockStatusFor(item.Quantity, item.MinStockLevel)
		item.UpdatedAt = now
		if err := s.itemRepo.UpdateItem(tx, item); err != nil {
			return fmt.Errorf("updating item after sale: %w", err)
		}

		result.Sale = sale
		result.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *inventoryService) GetSales(itemID string) ([]models.Sale, error) {
	return s.saleRepo.GetSales(s.store, itemID)
}

func (s *inventoryService) GetSaleByID(id string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrSaleNotFound, "getting sale")
	}
	return sale, nil
}
