package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleGroup is the top level of the two-level catalog taxonomy
type ArticleGroup struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []ArticleLine `gorm:"foreignKey:GroupID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new group
func (g *ArticleGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ArticleGroup model
func (ArticleGroup) TableName() string {
	return "article_groups"
}

// ArticleLine is a product line within a group. The name is unique within
// its owning group, and the group may not change once articles reference
// the line.
type ArticleLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex:idx_line_name_group" json:"name"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_line_name_group" json:"group_id"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Group    ArticleGroup `gorm:"foreignKey:GroupID" json:"-"`
	Articles []Article    `gorm:"foreignKey:LineID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *ArticleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ArticleLine model
func (ArticleLine) TableName() string {
	return "article_lines"
}

// Article is a sellable catalog item with stock and a price list entry
type Article struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code         string         `gorm:"size:50;unique;not null" json:"code"`
	Barcode      *string        `gorm:"size:100" json:"barcode,omitempty"`
	Description  string         `gorm:"size:200;not null" json:"description"`
	Presentation *string        `gorm:"size:100" json:"presentation,omitempty"`
	GroupID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	LineID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"line_id"`
	Stock        int            `gorm:"default:0" json:"stock"`
	ReorderLevel int            `gorm:"default:10" json:"reorder_level"`
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Group ArticleGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Line  ArticleLine  `gorm:"foreignKey:LineID" json:"line,omitempty"`
	Price *PriceList   `gorm:"foreignKey:ArticleID" json:"price,omitempty"`
}

// BeforeCreate generates a UUID before creating a new article
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// CurrentPrice returns the article's primary sale price in cents, or zero
// when no price list entry is configured. Callers treat zero as "price
// missing" and fall back where the checkout contract requires it.
func (a *Article) CurrentPrice() int64 {
	if a.Price == nil {
		return 0
	}
	return a.Price.Price1
}

// IsLowStock reports whether the stock is at or below the reorder level
func (a *Article) IsLowStock() bool {
	return a.Stock <= a.ReorderLevel
}

// PriceList holds the single active price record for an article.
// All prices are stored in cents.
type PriceList struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ArticleID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"article_id"`
	Price1        int64          `gorm:"not null" json:"-"`
	Price2        *int64         `json:"-"`
	PurchasePrice *int64         `json:"-"`
	CostPrice     *int64         `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Article Article `gorm:"foreignKey:ArticleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p PriceList) MarshalJSON() ([]byte, error) {
	type Alias PriceList
	centsPtr := func(v *int64) *float64 {
		if v == nil {
			return nil
		}
		f := float64(*v) / 100
		return &f
	}
	return json.Marshal(&struct {
		Alias
		Price1        float64  `json:"price_1"`
		Price2        *float64 `json:"price_2,omitempty"`
		PurchasePrice *float64 `json:"purchase_price,omitempty"`
		CostPrice     *float64 `json:"cost_price,omitempty"`
	}{
		Alias:         Alias(p),
		Price1:        float64(p.Price1) / 100,
		Price2:        centsPtr(p.Price2),
		PurchasePrice: centsPtr(p.PurchasePrice),
		CostPrice:     centsPtr(p.CostPrice),
	})
}

// BeforeCreate generates a UUID before creating a new price list entry
func (p *PriceList) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceList model
func (PriceList) TableName() string {
	return "price_lists"
}
