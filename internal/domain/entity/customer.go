package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentificationType is a lookup table for customer document types (DNI, RUC, ...)
type IdentificationType struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new identification type
func (t *IdentificationType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdentificationType model
func (IdentificationType) TableName() string {
	return "identification_types"
}

// SalesChannel is a lookup table for how a customer buys (walk-in, web, ...)
type SalesChannel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sales channel
func (c *SalesChannel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesChannel model
func (SalesChannel) TableName() string {
	return "sales_channels"
}

// Customer is the buying party on an order. Customers are looked up or
// lazily created from the authenticated user's email at checkout time.
type Customer struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	IdentificationTypeID uuid.UUID      `gorm:"type:uuid;not null;index" json:"identification_type_id"`
	DocumentNumber       string         `gorm:"size:50;not null" json:"document_number"`
	Name                 string         `gorm:"size:255;not null" json:"name"`
	Email                string         `gorm:"size:255;unique;not null" json:"email"`
	ChannelID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"channel_id"`
	Active               bool           `gorm:"default:true" json:"active"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	IdentificationType IdentificationType `gorm:"foreignKey:IdentificationTypeID" json:"-"`
	Channel            SalesChannel       `gorm:"foreignKey:ChannelID" json:"-"`
	Orders             []Order            `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Salesperson is the selling party recorded on an order
type Salesperson struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new salesperson
func (s *Salesperson) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Salesperson model
func (Salesperson) TableName() string {
	return "salespersons"
}
