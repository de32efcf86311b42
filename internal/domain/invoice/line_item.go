package invoice

import (
	"context"
	"time"

	"github.com/maplebill/maplebill/internal/domain/discount"
	"github.com/maplebill/maplebill/internal/domain/item"
	"github.com/maplebill/maplebill/internal/domain/tax"
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// AppliedTaxLine is one tax applied to a line item. The taxable amount is
// captured at apply time so the line's tax math survives later mutations of
// the resolver inputs.
type AppliedTaxLine struct {
	TaxCode       string          `json:"tax_code"`
	Name          string          `json:"name"`
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
}

// Amount returns the tax levied by this line, rounded to 2 decimals
func (a AppliedTaxLine) Amount() decimal.Decimal {
	return types.RoundCurrency(a.TaxableAmount.Mul(a.Rate))
}

// LineItem is one invoice line: a priced snapshot of a catalog item taken at
// add time, plus the discounts and taxes applied to it. Owned exclusively by
// one invoice.
type LineItem struct {
	ID               string               `json:"id"`
	InvoiceID        string               `json:"invoice_id"`
	ItemID           string               `json:"item_id"`
	SKU              string               `json:"sku"`
	DisplayName      string               `json:"display_name"`
	UnitPrice        decimal.Decimal      `json:"unit_price"`
	Quantity         decimal.Decimal      `json:"quantity"`
	ItemType         types.ItemType       `json:"item_type"`
	ItemCategory     string               `json:"item_category"`
	TaxCode          string               `json:"tax_code,omitempty"`
	InvoiceDate      time.Time            `json:"invoice_date"`
	SortOrder        int                  `json:"sort_order"`
	AppliedDiscounts []*discount.Discount `json:"applied_discounts,omitempty"`
	AppliedTaxes     []AppliedTaxLine     `json:"applied_taxes,omitempty"`
	types.BaseModel
}

// NewLineItem builds a line item from a catalog item's priced snapshot.
// Fails when the item has no price in effect on the invoice date or the
// quantity is not positive.
func NewLineItem(ctx context.Context, catalogItem *item.Item, quantity decimal.Decimal, invoiceDate time.Time) (*LineItem, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("invalid line item quantity").
			WithHint("Quantity must be greater than 0").
			WithReportableDetails(map[string]any{
				"quantity": quantity,
			}).
			Mark(ierr.ErrValidation)
	}

	unitPrice, ok := catalogItem.PriceOn(invoiceDate)
	if !ok {
		return nil, ierr.NewError("item has no price in effect").
			WithHintf("Item %s has no price in effect on %s", catalogItem.SKU, invoiceDate.Format(time.DateOnly)).
			WithReportableDetails(map[string]any{
				"item_id":      catalogItem.ID,
				"invoice_date": invoiceDate,
			}).
			Mark(ierr.ErrValidation)
	}

	return &LineItem{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		ItemID:       catalogItem.ID,
		SKU:          catalogItem.SKU,
		DisplayName:  catalogItem.Name,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		ItemType:     catalogItem.Type,
		ItemCategory: catalogItem.Category,
		TaxCode:      catalogItem.TaxCode,
		InvoiceDate:  invoiceDate,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}, nil
}

// Subtotal returns unit price times quantity
func (l *LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// DiscountTotal returns the cumulative amount removed by the line's per-item
// discounts. Discounts compound sequentially in list order against the
// running amount, which is clamped at zero after each step.
func (l *LineItem) DiscountTotal() decimal.Decimal {
	subtotal := l.Subtotal()
	running := subtotal
	for _, d := range l.AppliedDiscounts {
		if d.Scope != types.DiscountScopePerItem {
			continue
		}
		running = types.ClampToZero(running.Sub(d.AmountOn(running, l.InvoiceDate)))
	}
	return subtotal.Sub(running)
}

// AddDiscount attaches a per-item discount to the line
func (l *LineItem) AddDiscount(d *discount.Discount) error {
	if d.Scope != types.DiscountScopePerItem {
		return ierr.NewError("discount is not item scoped").
			WithHint("Only per-item discounts can be applied to a line item").
			WithReportableDetails(map[string]any{
				"discount_id": d.ID,
				"scope":       d.Scope,
			}).
			Mark(ierr.ErrValidation)
	}
	l.AppliedDiscounts = append(l.AppliedDiscounts, d)
	return nil
}

// ApplyTaxes replaces the line's applied taxes with the given resolved list.
// The taxable amount is the discounted subtotal at apply time.
func (l *LineItem) ApplyTaxes(taxes []tax.AppliedTax) {
	l.AppliedTaxes = l.AppliedTaxes[:0]
	taxableAmount := l.Subtotal().Sub(l.DiscountTotal())
	for _, t := range taxes {
		l.AppliedTaxes = append(l.AppliedTaxes, AppliedTaxLine{
			TaxCode:       t.Code,
			Name:          t.Name,
			Rate:          t.Rate,
			TaxableAmount: taxableAmount,
		})
	}
}

// TaxTotal returns the sum of the applied taxes' amounts
func (l *LineItem) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.AppliedTaxes {
		total = total.Add(t.Amount())
	}
	return total
}

// Total returns subtotal minus discounts plus tax
func (l *LineItem) Total() decimal.Decimal {
	return l.Subtotal().Sub(l.DiscountTotal()).Add(l.TaxTotal())
}

// Validate validates the invoice line item
func (l *LineItem) Validate() error {
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line item validation failed").
			WithHint("Unit price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if l.Quantity.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invoice line item validation failed").
			WithHint("Quantity must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	for _, t := range l.AppliedTaxes {
		if t.Rate.IsNegative() {
			return ierr.NewError("invoice line item validation failed").
				WithHint("Tax rate must be non negative").
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}
