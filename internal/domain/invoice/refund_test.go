package invoice

import (
	"context"
	"testing"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refundFixture(t *testing.T, ctx context.Context) *Invoice {
	t.Helper()

	inv := buildInvoice(t, ctx)
	inv.ShippingCost = dec("12")
	inv.ApplyTaxes(TaxPlan{
		inv.LineItems[0].ID: {
			{Code: "GST", Name: "Goods and Services Tax", Rate: dec("0.05")},
			{Code: "PST", Name: "Provincial Sales Tax", Rate: dec("0.07")},
		},
	})

	// discounted subtotal 108, shipping 12, tax 12.96, total 132.96
	require.True(t, inv.Total().Equal(dec("132.96")))
	return inv
}

func TestAllocateRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("splits proportionally across components", func(t *testing.T) {
		inv := refundFixture(t, ctx)

		// exactly half the total
		r, err := AllocateRefund(ctx, inv, dec("66.48"), "returned", nil)
		require.NoError(t, err)

		assert.True(t, r.SubtotalRefund.Equal(dec("60")))
		assert.True(t, r.TaxRefund.Equal(dec("6.48")))
		assert.True(t, r.ShippingRefund.Equal(dec("6")))
		assert.Equal(t, inv.ID, r.InvoiceID)
	})

	t.Run("non refundable shipping is excluded", func(t *testing.T) {
		inv := refundFixture(t, ctx)
		inv.ShippingRefundable = false

		r, err := AllocateRefund(ctx, inv, dec("66.48"), "returned", nil)
		require.NoError(t, err)
		assert.True(t, r.ShippingRefund.IsZero())
	})

	t.Run("full refund covers the whole total", func(t *testing.T) {
		inv := refundFixture(t, ctx)

		r, err := AllocateRefund(ctx, inv, inv.Total(), "order cancelled", nil)
		require.NoError(t, err)
		assert.True(t, r.SubtotalRefund.Equal(dec("120")))
		assert.True(t, r.TaxRefund.Equal(dec("12.96")))
		assert.True(t, r.ShippingRefund.Equal(dec("12")))
	})

	t.Run("rejects non positive amounts", func(t *testing.T) {
		inv := refundFixture(t, ctx)

		_, err := AllocateRefund(ctx, inv, dec("0"), "nothing", nil)
		assert.True(t, ierr.IsInvalidRefundAmount(err))

		_, err = AllocateRefund(ctx, inv, dec("-5"), "nothing", nil)
		assert.True(t, ierr.IsInvalidRefundAmount(err))
	})

	t.Run("rejects amounts above the invoice total", func(t *testing.T) {
		inv := refundFixture(t, ctx)

		_, err := AllocateRefund(ctx, inv, dec("132.97"), "too much", nil)
		assert.True(t, ierr.IsInvalidRefundAmount(err))
	})

	t.Run("links to a payment when given one", func(t *testing.T) {
		inv := refundFixture(t, ctx)
		paymentID := "pay_01"

		r, err := AllocateRefund(ctx, inv, dec("10"), "partial", &paymentID)
		require.NoError(t, err)
		require.NotNil(t, r.PaymentID)
		assert.Equal(t, paymentID, *r.PaymentID)
	})
}
