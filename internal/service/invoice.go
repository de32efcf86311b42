package service

import (
	"context"
	"time"

	"github.com/maplebill/maplebill/internal/domain/discount"
	"github.com/maplebill/maplebill/internal/domain/invoice"
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/maplebill/maplebill/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest carries the inputs for a new draft invoice
type CreateInvoiceRequest struct {
	CustomerID   string          `json:"customer_id" validate:"required"`
	ProvinceCode string          `json:"province_code" validate:"required"`
	InvoiceDate  time.Time       `json:"invoice_date" validate:"required"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

// AddLineItemRequest adds a catalog item to an invoice
type AddLineItemRequest struct {
	InvoiceID string          `json:"invoice_id" validate:"required"`
	ItemID    string          `json:"item_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// RecordPaymentRequest records a completed payment against an invoice
type RecordPaymentRequest struct {
	InvoiceID       string                  `json:"invoice_id" validate:"required"`
	Amount          decimal.Decimal         `json:"amount" validate:"required"`
	MethodType      types.PaymentMethodType `json:"method_type" validate:"required"`
	ReferenceNumber string                  `json:"reference_number,omitempty"`
}

// ProcessRefundRequest refunds part or all of an invoice
type ProcessRefundRequest struct {
	InvoiceID string          `json:"invoice_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reason    string          `json:"reason,omitempty"`
	PaymentID *string         `json:"payment_id,omitempty"`
}

// InvoiceService orchestrates the invoice lifecycle. Every mutation persists
// the updated invoice and, where line amounts change, re-resolves taxes so
// derived totals stay consistent.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*invoice.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	AddLineItem(ctx context.Context, req AddLineItemRequest) (*invoice.Invoice, error)
	RemoveLineItem(ctx context.Context, invoiceID, lineItemID string) (*invoice.Invoice, error)
	AddItemDiscount(ctx context.Context, invoiceID, lineItemID string, d *discount.Discount) (*invoice.Invoice, error)
	AddOrderDiscount(ctx context.Context, invoiceID string, d *discount.Discount) (*invoice.Invoice, error)
	AddSurcharge(ctx context.Context, invoiceID string, s *discount.Surcharge) (*invoice.Invoice, error)
	ApplyTaxes(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*invoice.Invoice, error)
	ProcessRefund(ctx context.Context, req ProcessRefundRequest) (*invoice.Invoice, error)
	PostInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
	taxService TaxResolutionService
}

func NewInvoiceService(params ServiceParams, taxService TaxResolutionService) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		taxService:    taxService,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	inv := invoice.New(ctx, req.CustomerID, req.ProvinceCode, req.InvoiceDate)
	inv.DueDate = req.DueDate
	inv.ShippingCost = req.ShippingCost
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID)
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *invoiceService) AddLineItem(ctx context.Context, req AddLineItemRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	catalogItem, err := s.ItemRepo.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	li, err := invoice.NewLineItem(ctx, catalogItem, req.Quantity, inv.InvoiceDate)
	if err != nil {
		return nil, err
	}

	if err := inv.AddLineItem(li); err != nil {
		return nil, err
	}

	return s.resolveAndSave(ctx, inv)
}

func (s *invoiceService) RemoveLineItem(ctx context.Context, invoiceID, lineItemID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.RemoveLineItem(lineItemID); err != nil {
		return nil, err
	}

	return s.resolveAndSave(ctx, inv)
}

func (s *invoiceService) AddItemDiscount(ctx context.Context, invoiceID, lineItemID string, d *discount.Discount) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	li, err := findLineItem(inv, lineItemID)
	if err != nil {
		return nil, err
	}

	if err := li.AddDiscount(d); err != nil {
		return nil, err
	}

	// the discounted subtotal changed, taxes must be recomputed
	return s.resolveAndSave(ctx, inv)
}

func (s *invoiceService) AddOrderDiscount(ctx context.Context, invoiceID string, d *discount.Discount) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.AddOrderDiscount(d); err != nil {
		return nil, err
	}

	return s.save(ctx, inv)
}

func (s *invoiceService) AddSurcharge(ctx context.Context, invoiceID string, sc *discount.Surcharge) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.AddSurcharge(sc); err != nil {
		return nil, err
	}

	return s.save(ctx, inv)
}

func (s *invoiceService) ApplyTaxes(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return s.resolveAndSave(ctx, inv)
}

func (s *invoiceService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	p := invoice.NewPayment(ctx, req.Amount, req.MethodType, req.ReferenceNumber)
	now := time.Now().UTC()
	p.PaymentStatus = types.PaymentStatusCompleted
	p.SucceededAt = &now

	if err := inv.AddPayment(p); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded payment",
		"invoice_id", inv.ID,
		"payment_id", p.ID,
		"amount", p.Amount,
		"status", inv.InvoiceStatus)
	return s.save(ctx, inv)
}

func (s *invoiceService) ProcessRefund(ctx context.Context, req ProcessRefundRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	r, err := invoice.AllocateRefund(ctx, inv, req.Amount, req.Reason, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if err := inv.ProcessRefund(r); err != nil {
		return nil, err
	}

	s.Logger.Infow("processed refund",
		"invoice_id", inv.ID,
		"refund_id", r.ID,
		"amount", r.Amount,
		"status", inv.InvoiceStatus)
	return s.save(ctx, inv)
}

func (s *invoiceService) PostInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.MarkAsSent(); err != nil {
		return nil, err
	}

	return s.save(ctx, inv)
}

func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Cancel(); err != nil {
		return nil, err
	}

	return s.save(ctx, inv)
}

// resolveAndSave re-resolves taxes for every line item, applies the plan and
// persists the invoice
func (s *invoiceService) resolveAndSave(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	plan, err := s.taxService.ResolveInvoiceTaxes(ctx, inv)
	if err != nil {
		return nil, err
	}

	inv.ApplyTaxes(plan)
	return s.save(ctx, inv)
}

func (s *invoiceService) save(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func findLineItem(inv *invoice.Invoice, lineItemID string) (*invoice.LineItem, error) {
	for _, li := range inv.LineItems {
		if li.ID == lineItemID {
			return li, nil
		}
	}
	return nil, ierr.NewError("line item not found").
		WithHintf("Line item %s is not on this invoice", lineItemID).
		WithReportableDetails(map[string]any{
			"line_item_id": lineItemID,
		}).
		Mark(ierr.ErrNotFound)
}
