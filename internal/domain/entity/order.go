package entity

import (
	"encoding/json"
	"time"

	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a customer purchase order produced by checkout.
// Orders are append-only after creation except for the status field and
// total recomputation.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number        string           `gorm:"size:100;unique;not null" json:"number"`
	OrderDate     time.Time        `gorm:"type:date;not null" json:"order_date"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	SalespersonID uuid.UUID        `gorm:"type:uuid;not null;index" json:"salesperson_id"`
	Status        enum.OrderStatus `gorm:"default:0" json:"status"`
	Total         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Notes         string           `gorm:"type:text" json:"notes"`
	CreatedByID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer    Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Salesperson Salesperson `gorm:"foreignKey:SalespersonID" json:"salesperson,omitempty"`
	CreatedBy   User        `gorm:"foreignKey:CreatedByID" json:"-"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// ItemsTotal sums the line totals of the loaded items in cents
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.Total
	}
	return sum
}

// OrderItem represents one article/quantity/price line within an order.
// ItemNo is 1-based and unique within the order.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_item_no" json:"order_id"`
	ItemNo    int            `gorm:"not null;uniqueIndex:idx_order_item_no" json:"item_no"`
	ArticleID uuid.UUID      `gorm:"type:uuid;not null;index" json:"article_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
