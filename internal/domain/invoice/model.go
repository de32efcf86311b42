package invoice

import (
	"context"
	"time"

	"github.com/maplebill/maplebill/internal/domain/discount"
	"github.com/maplebill/maplebill/internal/domain/tax"
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// TaxPlan maps line item IDs to their resolved taxes. It is remembered by
// the invoice so that later mutations can re-apply taxes to every line and
// keep derived totals consistent.
type TaxPlan map[string][]tax.AppliedTax

// Invoice is the aggregate root: it owns all line items, order-level
// discounts and surcharges, payments and refunds, and derives every monetary
// total from them on demand. Derived amounts are never cached.
//
// An invoice is not safe for concurrent mutation; callers sharing one across
// goroutines must serialize access.
type Invoice struct {
	ID                 string                `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	CustomerID         string                `json:"customer_id"`
	ProvinceCode       string                `json:"province_code"`
	InvoiceStatus      types.InvoiceStatus   `json:"invoice_status"`
	InvoiceDate        time.Time             `json:"invoice_date"`
	DueDate            *time.Time            `json:"due_date,omitempty"`
	ShippingCost       decimal.Decimal       `json:"shipping_cost"`
	ShippingRefundable bool                  `json:"shipping_refundable"`
	LineItems          []*LineItem           `json:"line_items,omitempty"`
	OrderDiscounts     []*discount.Discount  `json:"order_discounts,omitempty"`
	Surcharges         []*discount.Surcharge `json:"surcharges,omitempty"`
	AppliedTaxPlan     TaxPlan               `json:"applied_tax_plan,omitempty"`
	Payments           []*Payment            `json:"payments,omitempty"`
	Refunds            []*Refund             `json:"refunds,omitempty"`
	Metadata           types.Metadata        `json:"metadata,omitempty"`
	types.BaseModel
}

// New creates a draft invoice for a customer in a province
func New(ctx context.Context, customerID, provinceCode string, invoiceDate time.Time) *Invoice {
	return &Invoice{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber:      types.GenerateInvoiceNumber(),
		CustomerID:         customerID,
		ProvinceCode:       provinceCode,
		InvoiceStatus:      types.InvoiceStatusDraft,
		InvoiceDate:        invoiceDate,
		ShippingCost:       decimal.Zero,
		ShippingRefundable: true,
		AppliedTaxPlan:     make(TaxPlan),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

// Subtotal returns the sum of all line item subtotals
func (i *Invoice) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

// LineItemDiscounts returns the sum of all per-item discount totals
func (i *Invoice) LineItemDiscounts() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.DiscountTotal())
	}
	return total
}

// DiscountedSubtotal returns the subtotal after per-item discounts
func (i *Invoice) DiscountedSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.Subtotal().Sub(li.DiscountTotal()))
	}
	return total
}

// OrderDiscountTotal returns the sum of the order-level discounts, each
// evaluated independently against the discounted subtotal. Order discounts
// do not compound.
func (i *Invoice) OrderDiscountTotal() decimal.Decimal {
	base := i.DiscountedSubtotal()
	total := decimal.Zero
	for _, d := range i.OrderDiscounts {
		total = total.Add(d.AmountOn(base, i.InvoiceDate))
	}
	return total
}

// TotalAfterDiscounts returns the discounted subtotal minus order discounts
// plus shipping, clamped at zero
func (i *Invoice) TotalAfterDiscounts() decimal.Decimal {
	return types.ClampToZero(i.DiscountedSubtotal().Sub(i.OrderDiscountTotal()).Add(i.ShippingCost))
}

// TotalTax returns the sum of all line item tax totals
func (i *Invoice) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.TaxTotal())
	}
	return total
}

// TotalSurcharges returns the sum of the active surcharges, each applied to
// the post-discount, post-tax amount
func (i *Invoice) TotalSurcharges() decimal.Decimal {
	base := i.TotalAfterDiscounts().Add(i.TotalTax())
	total := decimal.Zero
	for _, s := range i.Surcharges {
		total = total.Add(s.CalculateAmount(base))
	}
	return total
}

// Total returns the amount the customer owes for this invoice
func (i *Invoice) Total() decimal.Decimal {
	return i.TotalAfterDiscounts().Add(i.TotalTax()).Add(i.TotalSurcharges())
}

// TotalPaid returns the sum of completed payment amounts
func (i *Invoice) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range i.Payments {
		if p.IsCompleted() {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// TotalRefunded returns the sum of all refund amounts
func (i *Invoice) TotalRefunded() decimal.Decimal {
	total := decimal.Zero
	for _, r := range i.Refunds {
		total = total.Add(r.Amount)
	}
	return total
}

// Balance returns total minus payments plus refunds
func (i *Invoice) Balance() decimal.Decimal {
	return i.Total().Sub(i.TotalPaid()).Add(i.TotalRefunded())
}

// AddLineItem appends a line item and re-applies the remembered tax plan to
// every line so derived totals stay consistent
func (i *Invoice) AddLineItem(li *LineItem) error {
	if err := li.Validate(); err != nil {
		return err
	}

	li.InvoiceID = i.ID
	li.SortOrder = len(i.LineItems)
	i.LineItems = append(i.LineItems, li)
	i.reapplyTaxes()
	return nil
}

// RemoveLineItem removes the line item with the given ID
func (i *Invoice) RemoveLineItem(lineItemID string) error {
	for idx, li := range i.LineItems {
		if li.ID != lineItemID {
			continue
		}
		i.LineItems = append(i.LineItems[:idx], i.LineItems[idx+1:]...)
		delete(i.AppliedTaxPlan, lineItemID)
		for order, remaining := range i.LineItems {
			remaining.SortOrder = order
		}
		i.reapplyTaxes()
		return nil
	}

	return ierr.NewError("line item not found").
		WithHintf("Line item %s is not on this invoice", lineItemID).
		WithReportableDetails(map[string]any{
			"line_item_id": lineItemID,
		}).
		Mark(ierr.ErrNotFound)
}

// AddOrderDiscount attaches an order-level discount. Discounts with any
// other scope are rejected.
func (i *Invoice) AddOrderDiscount(d *discount.Discount) error {
	if d.Scope != types.DiscountScopePerOrder {
		return ierr.NewError("discount is not order scoped").
			WithHint("Only per-order discounts can be applied to an invoice").
			WithReportableDetails(map[string]any{
				"discount_id": d.ID,
				"scope":       d.Scope,
			}).
			Mark(ierr.ErrValidation)
	}

	i.OrderDiscounts = append(i.OrderDiscounts, d)
	i.reapplyTaxes()
	return nil
}

// AddSurcharge attaches a surcharge to the invoice
func (i *Invoice) AddSurcharge(s *discount.Surcharge) error {
	if err := s.Validate(); err != nil {
		return err
	}
	i.Surcharges = append(i.Surcharges, s)
	i.reapplyTaxes()
	return nil
}

// ApplyTaxes remembers the resolved tax plan and applies it to every line
// item. This is how resolver output is pushed into the invoice; the invoice
// itself never invokes the resolver.
func (i *Invoice) ApplyTaxes(plan TaxPlan) {
	if plan == nil {
		plan = make(TaxPlan)
	}
	i.AppliedTaxPlan = plan
	i.reapplyTaxes()
}

// reapplyTaxes pushes the remembered plan into every line item. Lines with
// no plan entry get an empty tax list.
func (i *Invoice) reapplyTaxes() {
	for _, li := range i.LineItems {
		li.ApplyTaxes(i.AppliedTaxPlan[li.ID])
	}
}

// AddPayment records a payment against the invoice and updates the status
func (i *Invoice) AddPayment(p *Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	p.InvoiceID = i.ID
	i.Payments = append(i.Payments, p)
	i.UpdateStatus()
	return nil
}

// ProcessRefund records a refund. The refund amount must not exceed net
// payments (completed payments minus refunds already issued); this check is
// independent of the allocator's check against the invoice total.
func (i *Invoice) ProcessRefund(r *Refund) error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("refund amount must be greater than 0").
			WithHint("Refund amount must be greater than 0").
			Mark(ierr.ErrInvalidRefundAmount)
	}

	netPayments := i.TotalPaid().Sub(i.TotalRefunded())
	if r.Amount.GreaterThan(netPayments) {
		return ierr.NewError("refund amount exceeds net payments").
			WithHintf("Refund amount must not exceed net payments of %s", netPayments.StringFixed(2)).
			WithReportableDetails(map[string]any{
				"refund_amount": r.Amount,
				"net_payments":  netPayments,
			}).
			Mark(ierr.ErrInvalidRefundAmount)
	}

	r.InvoiceID = i.ID
	i.Refunds = append(i.Refunds, r)
	i.UpdateStatus()
	return nil
}

// MarkAsSent posts the invoice to the customer. Only draft and pending
// invoices with at least one line item can be posted.
func (i *Invoice) MarkAsSent() error {
	if !i.InvoiceStatus.CanBePosted() {
		return ierr.NewError("invoice cannot be posted").
			WithHintf("Invoice in status %s cannot be posted", i.InvoiceStatus).
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if len(i.LineItems) == 0 {
		return ierr.NewError("invoice has no line items").
			WithHint("An invoice needs at least one line item before it can be posted").
			Mark(ierr.ErrValidation)
	}

	i.InvoiceStatus = types.InvoiceStatusSent
	i.UpdateStatus()
	return nil
}

// Cancel cancels the invoice. Not permitted once any payment has completed.
func (i *Invoice) Cancel() error {
	if i.InvoiceStatus.IsTerminal() {
		return ierr.NewError("invoice is in a terminal status").
			WithHintf("Invoice in status %s cannot be cancelled", i.InvoiceStatus).
			Mark(ierr.ErrCannotCancelInvoice)
	}

	if i.TotalPaid().GreaterThan(decimal.Zero) {
		return ierr.NewError("invoice has completed payments").
			WithHint("An invoice with completed payments cannot be cancelled").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"total_paid": i.TotalPaid(),
			}).
			Mark(ierr.ErrCannotCancelInvoice)
	}

	i.InvoiceStatus = types.InvoiceStatusCancelled
	return nil
}

// UpdateStatus re-evaluates the invoice status after a balance-affecting
// mutation. The rules are ordered; the first match wins. There is no
// transition back to draft, and cancelled is terminal.
func (i *Invoice) UpdateStatus() {
	if i.InvoiceStatus == types.InvoiceStatusCancelled {
		return
	}

	total := i.Total()
	refunded := i.TotalRefunded()

	switch {
	case refunded.GreaterThanOrEqual(total) && refunded.GreaterThan(decimal.Zero):
		i.InvoiceStatus = types.InvoiceStatusRefunded
	case refunded.GreaterThan(decimal.Zero):
		i.InvoiceStatus = types.InvoiceStatusPartiallyRefunded
	case i.Balance().LessThanOrEqual(decimal.Zero):
		i.InvoiceStatus = types.InvoiceStatusPaid
	case i.DueDate != nil && i.DueDate.Before(time.Now().UTC()):
		i.InvoiceStatus = types.InvoiceStatusOverdue
	case i.InvoiceStatus == types.InvoiceStatusDraft:
		i.InvoiceStatus = types.InvoiceStatusPending
	}
}

// Validate validates the invoice and its line items
func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	if i.ShippingCost.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Shipping cost must be non negative").
			Mark(ierr.ErrValidation)
	}

	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}

	for _, li := range i.LineItems {
		if err := li.Validate(); err != nil {
			return err
		}
	}

	return nil
}
