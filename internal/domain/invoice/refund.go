package invoice

import (
	"context"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// Refund represents a refund against an invoice with its proportional
// breakdown across subtotal, tax and shipping. Surcharges are never refunded.
type Refund struct {
	ID             string          `json:"id"`
	InvoiceID      string          `json:"invoice_id"`
	PaymentID      *string         `json:"payment_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason,omitempty"`
	SubtotalRefund decimal.Decimal `json:"subtotal_refund"`
	TaxRefund      decimal.Decimal `json:"tax_refund"`
	ShippingRefund decimal.Decimal `json:"shipping_refund"`
	types.BaseModel
}

// AllocateRefund splits a refund amount proportionally across the invoice's
// subtotal, tax and shipping components. Shipping participates only when the
// invoice flags it refundable. The produced refund still has to pass
// Invoice.ProcessRefund, which independently validates against net payments;
// the check here against the invoice total is not redundant with it.
func AllocateRefund(ctx context.Context, inv *Invoice, amount decimal.Decimal, reason string, paymentID *string) (*Refund, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("refund amount must be greater than 0").
			WithHint("Refund amount must be greater than 0").
			Mark(ierr.ErrInvalidRefundAmount)
	}

	total := inv.Total()
	if amount.GreaterThan(total) {
		return nil, ierr.NewError("refund amount exceeds invoice total").
			WithHintf("Refund amount must not exceed the invoice total of %s", total.StringFixed(2)).
			WithReportableDetails(map[string]any{
				"refund_amount": amount,
				"invoice_total": total,
			}).
			Mark(ierr.ErrInvalidRefundAmount)
	}

	proportion := amount.Div(total)

	shippingRefund := decimal.Zero
	if inv.ShippingRefundable {
		shippingRefund = types.RoundCurrency(inv.ShippingCost.Mul(proportion))
	}

	return &Refund{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REFUND),
		InvoiceID:      inv.ID,
		PaymentID:      paymentID,
		Amount:         amount,
		Reason:         reason,
		SubtotalRefund: types.RoundCurrency(inv.TotalAfterDiscounts().Mul(proportion)),
		TaxRefund:      types.RoundCurrency(inv.TotalTax().Mul(proportion)),
		ShippingRefund: shippingRefund,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}, nil
}
