package pdf

import (
	"bytes"
	"testing"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "Test Store",
			Address:   "123 Main St",
			Phone:     "555-0100",
			TaxID:     "20123456789",
		},
		OrderNumber: "ORD-12345",
		Date:        "2026-08-31",
		Status:      "Pending",
		Customer:    "Ada Buyer",
		Salesperson: "Default Salesperson",
		Notes:       "leave at the counter",
		Items: []entity.ReceiptItem{
			{ItemNo: 1, Code: "SODA-1", Description: "Cola 500ml", Quantity: 5, UnitPrice: 9.99, Total: 49.95},
			{ItemNo: 2, Code: "CHIPS-1", Description: "Chips", Quantity: 2, UnitPrice: 2.50, Total: 5.00},
		},
		Total: 54.95,
	}

	data, err := RenderReceipt(receipt)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A well-formed PDF starts with the %PDF magic and ends with %%EOF
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, string(data[len(data)-32:]), "%%EOF")
}

func TestRenderReceiptWithoutItems(t *testing.T) {
	receipt := &entity.Receipt{
		Header:      entity.ReceiptHeader{StoreName: "Test Store"},
		OrderNumber: "ORD-1",
		Date:        "2026-08-31",
		Status:      "Cancelled",
	}

	data, err := RenderReceipt(receipt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
