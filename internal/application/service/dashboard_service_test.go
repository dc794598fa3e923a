package service

import (
	"context"
	"strings"
	"testing"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	infraRepo "github.com/dquispe/pos-backoffice/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	svc := NewDashboardService(
		f.articleRepo,
		infraRepo.NewCustomerRepository(f.db),
		f.orderRepo,
	)

	// Stock 3 with reorder level 5 counts as low stock
	f.createArticle(t, "LOW-1", 3, 100)
	full := f.createArticle(t, "FULL-1", 50, 200)
	f.addToCart(t, full, 1, 200)
	_, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveArticles)
	assert.Equal(t, int64(1), stats.LowStock)
	assert.Equal(t, int64(1), stats.ActiveCustomers)
	assert.Equal(t, int64(1), stats.PendingOrders)
}

func TestReceiptServiceBuildsFromOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 5, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "no ice")
	require.NoError(t, err)

	svc := NewReceiptService(f.orderRepo, entity.ReceiptHeader{StoreName: "Test Store"})

	receipt, err := svc.BuildReceipt(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Store", receipt.Header.StoreName)
	assert.Equal(t, order.Number, receipt.OrderNumber)
	assert.Equal(t, "Pending", receipt.Status)
	assert.Equal(t, "Ada Buyer", receipt.Customer)
	assert.Equal(t, "no ice", receipt.Notes)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "SODA-1", receipt.Items[0].Code)
	assert.InDelta(t, 9.99, receipt.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 49.95, receipt.Total, 0.001)

	data, filename, err := svc.RenderPDF(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data[:4]), "%PDF"))
	assert.Equal(t, "receipt-"+order.Number+".pdf", filename)
}
