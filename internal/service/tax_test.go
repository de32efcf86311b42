package service

import (
	"testing"
	"time"

	"github.com/maplebill/maplebill/internal/domain/customer"
	"github.com/maplebill/maplebill/internal/domain/invoice"
	"github.com/maplebill/maplebill/internal/domain/item"
	"github.com/maplebill/maplebill/internal/domain/taxcode"
	"github.com/maplebill/maplebill/internal/testutil"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxResolutionServiceSuite struct {
	testutil.BaseServiceTestSuite
	taxService TaxResolutionService
}

func TestTaxResolutionService(t *testing.T) {
	suite.Run(t, new(TaxResolutionServiceSuite))
}

func (s *TaxResolutionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.taxService = NewTaxResolutionService(s.params())
}

func (s *TaxResolutionServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		Catalog:            s.GetCatalog(),
		Cache:              s.GetCache(),
		CustomerRepo:       stores.CustomerRepo,
		ItemRepo:           stores.ItemRepo,
		TaxCodeRepo:        stores.TaxCodeRepo,
		ClassificationRepo: stores.ClassificationRepo,
		InvoiceRepo:        stores.InvoiceRepo,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (s *TaxResolutionServiceSuite) createCustomer() *customer.Customer {
	c := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Maple Hardware Inc",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
	return c
}

func (s *TaxResolutionServiceSuite) createProfile(customerID, province string, exempt bool, from time.Time, to *time.Time) {
	p := &customer.TaxProfile{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_PROFILE),
		CustomerID:        customerID,
		TaxProvince:       province,
		ExemptionEligible: exempt,
		EffectiveFrom:     from,
		EffectiveTo:       to,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().CustomerRepo.CreateTaxProfile(s.GetContext(), p))
}

func (s *TaxResolutionServiceSuite) createItem(taxCode string) *item.Item {
	i := item.NewProduct(s.GetContext(), "WIDGET-1", "Widget", "hardware", taxCode, []item.Price{
		{Amount: dec("100"), EffectiveFrom: date(2020, 1, 1)},
	})
	s.Require().NoError(s.GetStores().ItemRepo.Create(s.GetContext(), i))
	return i
}

func (s *TaxResolutionServiceSuite) createTaxCode(code string, treatment types.TaxTreatment, active bool, from time.Time, to *time.Time) {
	tc := &taxcode.TaxCode{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_CODE),
		Code:          code,
		Treatment:     treatment,
		EffectiveFrom: from,
		EffectiveTo:   to,
		Active:        active,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().TaxCodeRepo.Create(s.GetContext(), tc))
}

func (s *TaxResolutionServiceSuite) newInvoiceWithItem(customerID, province string, invoiceDate time.Time, catalogItem *item.Item) *invoice.Invoice {
	inv := invoice.New(s.GetContext(), customerID, province, invoiceDate)
	li, err := invoice.NewLineItem(s.GetContext(), catalogItem, dec("1"), invoiceDate)
	s.Require().NoError(err)
	s.Require().NoError(inv.AddLineItem(li))
	return inv
}

func (s *TaxResolutionServiceSuite) TestStandardResolutionUsesProfileProvince() {
	c := s.createCustomer()
	s.createProfile(c.ID, "ON", false, date(2020, 1, 1), nil)
	i := s.createItem("")

	// the invoice says BC, the profile says ON; the profile wins
	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Require().Len(taxes, 1)
	s.Equal("HST", taxes[0].Code)
	s.True(taxes[0].Rate.Equal(dec("0.13")))
}

func (s *TaxResolutionServiceSuite) TestMissingProfileFallsBackToInvoiceProvince() {
	c := s.createCustomer()
	i := s.createItem("")

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Require().Len(taxes, 2)
	s.Equal("GST", taxes[0].Code)
	s.Equal("PST", taxes[1].Code)
}

func (s *TaxResolutionServiceSuite) TestExemptCustomerShortCircuits() {
	c := s.createCustomer()
	s.createProfile(c.ID, "BC", true, date(2020, 1, 1), nil)
	i := s.createItem("STD-GOODS")
	s.createTaxCode("STD-GOODS", types.TaxTreatmentStandard, true, date(2020, 1, 1), nil)

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Empty(taxes)
}

func (s *TaxResolutionServiceSuite) TestExpiredExemptionDoesNotApply() {
	c := s.createCustomer()
	expiry := date(2024, 12, 31)
	s.createProfile(c.ID, "BC", true, date(2020, 1, 1), &expiry)
	i := s.createItem("")

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Len(taxes, 2)
}

func (s *TaxResolutionServiceSuite) TestClassificationOverridesIntrinsicCode() {
	c := s.createCustomer()
	i := s.createItem("STD-GOODS")
	s.createTaxCode("STD-GOODS", types.TaxTreatmentStandard, true, date(2020, 1, 1), nil)
	s.createTaxCode("ZERO-GROCERY", types.TaxTreatmentZeroRated, true, date(2020, 1, 1), nil)

	classification := &taxcode.TaxClassification{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLASSIFICATION),
		ItemID:     i.ID,
		TaxCode:    "ZERO-GROCERY",
		AssignedAt: date(2024, 1, 1),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ClassificationRepo.Create(s.GetContext(), classification))

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)

	// zero rated keeps the tax lines but zeroes every rate
	s.Require().Len(taxes, 2)
	for _, t := range taxes {
		s.True(t.Rate.IsZero())
	}
}

func (s *TaxResolutionServiceSuite) TestExpiredClassificationFallsBackToIntrinsicCode() {
	c := s.createCustomer()
	i := s.createItem("EXEMPT-MED")
	s.createTaxCode("EXEMPT-MED", types.TaxTreatmentExempt, true, date(2020, 1, 1), nil)

	expiry := date(2024, 12, 31)
	classification := &taxcode.TaxClassification{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLASSIFICATION),
		ItemID:     i.ID,
		TaxCode:    "STD-GOODS",
		AssignedAt: date(2024, 1, 1),
		ExpiresAt:  &expiry,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ClassificationRepo.Create(s.GetContext(), classification))

	// the expired classification is ignored; the intrinsic exempt code wins
	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Empty(taxes)
}

func (s *TaxResolutionServiceSuite) TestUnknownTaxCodeFallsBackToStandard() {
	c := s.createCustomer()
	i := s.createItem("NO-SUCH-CODE")

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Len(taxes, 2)
}

func (s *TaxResolutionServiceSuite) TestInactiveTaxCodeFallsBackToStandard() {
	c := s.createCustomer()
	i := s.createItem("RETIRED")
	s.createTaxCode("RETIRED", types.TaxTreatmentExempt, false, date(2020, 1, 1), nil)

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Len(taxes, 2)
}

func (s *TaxResolutionServiceSuite) TestOutOfWindowTaxCodeFallsBackToStandard() {
	c := s.createCustomer()
	i := s.createItem("OLD-EXEMPTION")
	expiry := date(2024, 12, 31)
	s.createTaxCode("OLD-EXEMPTION", types.TaxTreatmentExempt, true, date(2020, 1, 1), &expiry)

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Len(taxes, 2)
}

func (s *TaxResolutionServiceSuite) TestExemptTreatmentYieldsNoTaxes() {
	c := s.createCustomer()
	i := s.createItem("EXEMPT-MED")
	s.createTaxCode("EXEMPT-MED", types.TaxTreatmentExempt, true, date(2020, 1, 1), nil)

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Empty(taxes)
}

func (s *TaxResolutionServiceSuite) TestNovaScotiaRateBoundary() {
	c := s.createCustomer()
	i := s.createItem("")

	inv := s.newInvoiceWithItem(c.ID, "NS", date(2025, 3, 31), i)
	taxes, err := s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Require().Len(taxes, 1)
	s.True(taxes[0].Rate.Equal(dec("0.15")))

	inv = s.newInvoiceWithItem(c.ID, "NS", date(2025, 4, 1), i)
	taxes, err = s.taxService.ResolveLineItemTaxes(s.GetContext(), inv, inv.LineItems[0])
	s.NoError(err)
	s.Require().Len(taxes, 1)
	s.True(taxes[0].Rate.Equal(dec("0.14")))
}

func (s *TaxResolutionServiceSuite) TestResolveInvoiceTaxesBuildsPerLinePlan() {
	c := s.createCustomer()
	taxable := s.createItem("")
	s.createTaxCode("EXEMPT-MED", types.TaxTreatmentExempt, true, date(2020, 1, 1), nil)

	exemptItem := item.NewProduct(s.GetContext(), "MED-1", "First aid kit", "medical", "EXEMPT-MED", []item.Price{
		{Amount: dec("50"), EffectiveFrom: date(2020, 1, 1)},
	})
	s.Require().NoError(s.GetStores().ItemRepo.Create(s.GetContext(), exemptItem))

	inv := s.newInvoiceWithItem(c.ID, "BC", date(2025, 6, 1), taxable)
	li2, err := invoice.NewLineItem(s.GetContext(), exemptItem, dec("1"), inv.InvoiceDate)
	s.Require().NoError(err)
	s.Require().NoError(inv.AddLineItem(li2))

	plan, err := s.taxService.ResolveInvoiceTaxes(s.GetContext(), inv)
	s.NoError(err)
	s.Len(plan[inv.LineItems[0].ID], 2)
	s.Empty(plan[li2.ID])
}

func (s *TaxResolutionServiceSuite) TestClassifyItemIsNotAvailable() {
	_, err := s.taxService.ClassifyItem(s.GetContext(), "item_01", "STD-GOODS", nil)
	s.Error(err)
}
