package service

import (
	"context"
	"time"

	"github.com/maplebill/maplebill/internal/cache"
	"github.com/maplebill/maplebill/internal/domain/customer"
	"github.com/maplebill/maplebill/internal/domain/invoice"
	"github.com/maplebill/maplebill/internal/domain/tax"
	"github.com/maplebill/maplebill/internal/domain/taxcode"
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	taxCodeCacheExpiry = 5 * time.Minute
	profileCacheExpiry = time.Minute
)

// TaxResolutionService resolves the taxes applicable to invoice line items.
// Resolution is a chain of guards evaluated in a fixed order; customer
// exemption is checked first and short-circuits everything else.
type TaxResolutionService interface {
	// ResolveInvoiceTaxes resolves taxes for every line item on the invoice
	// and returns the per-line plan
	ResolveInvoiceTaxes(ctx context.Context, inv *invoice.Invoice) (invoice.TaxPlan, error)

	// ResolveLineItemTaxes resolves the taxes for a single line item
	ResolveLineItemTaxes(ctx context.Context, inv *invoice.Invoice, li *invoice.LineItem) ([]tax.AppliedTax, error)

	// ClassifyItem assigns a tax code to an item
	ClassifyItem(ctx context.Context, itemID, taxCode string, expiresAt *time.Time) (*taxcode.TaxClassification, error)
}

type taxResolutionService struct {
	ServiceParams
}

func NewTaxResolutionService(params ServiceParams) TaxResolutionService {
	return &taxResolutionService{
		ServiceParams: params,
	}
}

func (s *taxResolutionService) ResolveInvoiceTaxes(ctx context.Context, inv *invoice.Invoice) (invoice.TaxPlan, error) {
	profile, err := s.getTaxProfile(ctx, inv)
	if err != nil {
		return nil, err
	}

	plan := make(invoice.TaxPlan, len(inv.LineItems))
	for _, li := range inv.LineItems {
		taxes, err := s.resolve(ctx, profile, li, inv.InvoiceDate)
		if err != nil {
			return nil, err
		}
		plan[li.ID] = taxes
	}
	return plan, nil
}

func (s *taxResolutionService) ResolveLineItemTaxes(ctx context.Context, inv *invoice.Invoice, li *invoice.LineItem) ([]tax.AppliedTax, error) {
	profile, err := s.getTaxProfile(ctx, inv)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, profile, li, inv.InvoiceDate)
}

// resolve runs the guard chain for one line item:
//  1. exempt customers pay no tax, nothing else is consulted
//  2. a valid classification overrides the item's intrinsic tax code
//  3. a known, active, in-window tax code selects the treatment
//  4. anything else falls through to the province's standard taxes
func (s *taxResolutionService) resolve(ctx context.Context, profile *customer.TaxProfile, li *invoice.LineItem, date time.Time) ([]tax.AppliedTax, error) {
	if profile.QualifiesForExemption(date) {
		return []tax.AppliedTax{}, nil
	}

	code, err := s.effectiveTaxCode(ctx, li, date)
	if err != nil {
		return nil, err
	}

	standard := s.Catalog.StandardTaxes(profile.TaxProvince, date)

	if code == "" {
		return standard, nil
	}

	tc, err := s.getTaxCode(ctx, code)
	if err != nil {
		if ierr.IsNotFound(err) {
			return standard, nil
		}
		return nil, err
	}

	if !tc.Active || !tc.IsValidOn(date) {
		return standard, nil
	}

	switch tc.Treatment {
	case types.TaxTreatmentExempt, types.TaxTreatmentOutOfScope:
		return []tax.AppliedTax{}, nil
	case types.TaxTreatmentZeroRated:
		// the taxes still appear on the invoice, at a zero rate
		return lo.Map(standard, func(t tax.AppliedTax, _ int) tax.AppliedTax {
			t.Rate = decimal.Zero
			return t
		}), nil
	default:
		return standard, nil
	}
}

func (s *taxResolutionService) ClassifyItem(ctx context.Context, itemID, taxCode string, expiresAt *time.Time) (*taxcode.TaxClassification, error) {
	// TODO(catalog): classification writes need an audit trail before this
	// can be exposed; reads are live via the resolution chain
	return nil, ierr.NewError("item classification is not available").
		WithHint("Item classification is not available yet").
		Mark(ierr.ErrInvalidOperation)
}

// getTaxProfile loads the customer's tax profile. A customer without one is
// treated as a non-exempt customer taxed in the invoice's province; that
// fallback is never cached, so a profile created later takes effect.
func (s *taxResolutionService) getTaxProfile(ctx context.Context, inv *invoice.Invoice) (*customer.TaxProfile, error) {
	key := cache.GenerateKey(cache.PrefixCustomerProfile, types.GetTenantID(ctx), inv.CustomerID)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if profile, ok := cached.(*customer.TaxProfile); ok {
			return profile, nil
		}
	}

	profile, err := s.CustomerRepo.GetTaxProfile(ctx, inv.CustomerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return &customer.TaxProfile{
				CustomerID:        inv.CustomerID,
				TaxProvince:       inv.ProvinceCode,
				ExemptionEligible: false,
				EffectiveFrom:     inv.InvoiceDate,
			}, nil
		}
		return nil, err
	}

	s.Cache.Set(ctx, key, profile, profileCacheExpiry)
	return profile, nil
}

// effectiveTaxCode returns the classification's tax code when a valid one
// exists for the item, otherwise the line item's intrinsic tax code. An
// expired classification behaves like a missing one.
func (s *taxResolutionService) effectiveTaxCode(ctx context.Context, li *invoice.LineItem, date time.Time) (string, error) {
	classification, err := s.ClassificationRepo.GetByItemID(ctx, li.ItemID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return li.TaxCode, nil
		}
		return "", err
	}

	if !classification.IsValidOn(date) {
		return li.TaxCode, nil
	}
	return classification.TaxCode, nil
}

func (s *taxResolutionService) getTaxCode(ctx context.Context, code string) (*taxcode.TaxCode, error) {
	key := cache.GenerateKey(cache.PrefixTaxCode, types.GetTenantID(ctx), code)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if tc, ok := cached.(*taxcode.TaxCode); ok {
			return tc, nil
		}
	}

	tc, err := s.TaxCodeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, tc, taxCodeCacheExpiry)
	return tc, nil
}
