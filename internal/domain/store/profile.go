package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// PersonType distinguishes natural persons from juridical ones
type PersonType string

const (
	PersonTypeNatural   PersonType = "natural"
	PersonTypeJuridical PersonType = "juridical"
)

// SellerType represents how the seller operates on the marketplace
type SellerType string

const (
	SellerTypeIndividual SellerType = "individual"
	SellerTypeCompany    SellerType = "company"
)

// StoreProfile is the business identity a user trades under.
// Each user owns at most one profile; the uniqueness constraint on UserID
// backs the duplicate-creation rejection in the serialization layer.
type StoreProfile struct {
	shared.BaseEntity
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Phone      string     `gorm:"type:varchar(50)"`
	City       string     `gorm:"type:varchar(100)"`
	Address    string     `gorm:"type:varchar(500)"`
	PersonType PersonType `gorm:"type:varchar(20);not null;default:'natural'"`
	SellerType SellerType `gorm:"type:varchar(20);not null;default:'individual'"`
}

// TableName returns the table name for GORM
func (StoreProfile) TableName() string {
	return "store_profiles"
}

// NewStoreProfile creates a profile owned by the given user
func NewStoreProfile(userID uuid.UUID) *StoreProfile {
	return &StoreProfile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		PersonType: PersonTypeNatural,
		SellerType: SellerTypeIndividual,
	}
}

// SetContact sets the profile's contact details
func (p *StoreProfile) SetContact(phone, city, address string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	p.Phone = strings.TrimSpace(phone)
	p.City = strings.TrimSpace(city)
	p.Address = strings.TrimSpace(address)
	p.Touch()
	return nil
}

// SetPersonType sets the legal person type
func (p *StoreProfile) SetPersonType(t PersonType) error {
	switch t {
	case PersonTypeNatural, PersonTypeJuridical:
		p.PersonType = t
		p.Touch()
		return nil
	default:
		return shared.NewDomainError("INVALID_PERSON_TYPE", "Person type must be natural or juridical")
	}
}

// SetSellerType sets the seller type
func (p *StoreProfile) SetSellerType(t SellerType) error {
	switch t {
	case SellerTypeIndividual, SellerTypeCompany:
		p.SellerType = t
		p.Touch()
		return nil
	default:
		return shared.NewDomainError("INVALID_SELLER_TYPE", "Seller type must be individual or company")
	}
}

// IsOwnedBy returns true if the profile belongs to the given user
func (p *StoreProfile) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
