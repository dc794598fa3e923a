package entity

// ReceiptHeader holds the store/business header shown at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	ItemNo      int     `json:"item_no"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Receipt is a value object representing a printable order receipt.
// It is not a database entity; it is composed from order data at render time.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	OrderNumber string        `json:"order_number"`
	Date        string        `json:"date"`
	Status      string        `json:"status"`
	Customer    string        `json:"customer,omitempty"`
	Salesperson string        `json:"salesperson,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Items       []ReceiptItem `json:"items"`
	Total       float64       `json:"total"`
}
