package types

import (
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice is being assembled and can still be modified freely
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	// InvoiceStatusPending indicates the invoice left draft after its first balance-affecting mutation
	InvoiceStatusPending InvoiceStatus = "PENDING"
	// InvoiceStatusSent indicates the invoice has been posted to the customer
	InvoiceStatusSent InvoiceStatus = "SENT"
	// InvoiceStatusPaid indicates the balance has been settled in full
	InvoiceStatusPaid InvoiceStatus = "PAID"
	// InvoiceStatusOverdue indicates the due date has passed with a balance outstanding
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	// InvoiceStatusPartiallyRefunded indicates some but not all of the total has been refunded
	InvoiceStatusPartiallyRefunded InvoiceStatus = "PARTIALLY_REFUNDED"
	// InvoiceStatusRefunded indicates the full total has been refunded. Terminal.
	InvoiceStatusRefunded InvoiceStatus = "REFUNDED"
	// InvoiceStatusCancelled indicates the invoice was cancelled before any payment. Terminal.
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusPartiallyRefunded,
		InvoiceStatusRefunded,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether no further status transitions are permitted
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusCancelled || s == InvoiceStatusRefunded
}

// CanBePosted reports whether the invoice may be marked as sent from this status
func (s InvoiceStatus) CanBePosted() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusPending
}
