package invoice

import (
	"context"
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// Payment represents a payment recorded against an invoice. Gateway fields
// are opaque data from the processing layer; only the amount and status
// participate in invoice math.
type Payment struct {
	ID               string                  `json:"id"`
	InvoiceID        string                  `json:"invoice_id"`
	Amount           decimal.Decimal         `json:"amount"`
	MethodType       types.PaymentMethodType `json:"method_type"`
	PaymentStatus    types.PaymentStatus     `json:"payment_status"`
	ReferenceNumber  string                  `json:"reference_number,omitempty"`
	Gateway          *string                 `json:"gateway,omitempty"`
	GatewayPaymentID *string                 `json:"gateway_payment_id,omitempty"`
	SucceededAt      *time.Time              `json:"succeeded_at,omitempty"`
	FailedAt         *time.Time              `json:"failed_at,omitempty"`
	Metadata         types.Metadata          `json:"metadata,omitempty"`
	types.BaseModel
}

// NewPayment builds a pending payment for the given amount and method
func NewPayment(ctx context.Context, amount decimal.Decimal, methodType types.PaymentMethodType, referenceNumber string) *Payment {
	return &Payment{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		Amount:          amount,
		MethodType:      methodType,
		PaymentStatus:   types.PaymentStatusPending,
		ReferenceNumber: referenceNumber,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// IsCompleted reports whether the payment counts toward the invoice's paid total
func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == types.PaymentStatusCompleted
}

// Validate validates the payment
func (p *Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invalid payment amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	if err := p.MethodType.Validate(); err != nil {
		return err
	}

	return p.PaymentStatus.Validate()
}
