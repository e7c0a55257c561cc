package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is an item a seller offers on the marketplace
type Product struct {
	shared.BaseEntity
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Quantity    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product for a seller in a category
func NewProduct(sellerID, categoryID uuid.UUID, title, unit string, unitPrice decimal.Decimal, quantity int) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SellerID:   sellerID,
		CategoryID: categoryID,
		Title:      strings.TrimSpace(title),
		Unit:       strings.TrimSpace(unit),
		UnitPrice:  unitPrice,
		Quantity:   quantity,
	}, nil
}

// UpdateListing updates the product's sale attributes
func (p *Product) UpdateListing(title, unit string, unitPrice decimal.Decimal, quantity int) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateUnit(unit); err != nil {
		return err
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	p.Title = strings.TrimSpace(title)
	p.Unit = strings.TrimSpace(unit)
	p.UnitPrice = unitPrice
	p.Quantity = quantity
	p.Touch()
	return nil
}

// SetDescription sets the long-form description shown on the detail view
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.Touch()
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// TotalValue returns quantity times unit price
func (p *Product) TotalValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Product unit cannot exceed 20 characters")
	}
	return nil
}
