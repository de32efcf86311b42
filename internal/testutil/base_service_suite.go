package testutil

import (
	"context"
	"time"

	"github.com/maplebill/maplebill/internal/cache"
	"github.com/maplebill/maplebill/internal/config"
	"github.com/maplebill/maplebill/internal/domain/customer"
	"github.com/maplebill/maplebill/internal/domain/invoice"
	"github.com/maplebill/maplebill/internal/domain/item"
	"github.com/maplebill/maplebill/internal/domain/province"
	"github.com/maplebill/maplebill/internal/domain/taxcode"
	"github.com/maplebill/maplebill/internal/logger"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/maplebill/maplebill/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CustomerRepo       customer.Repository
	ItemRepo           item.Repository
	TaxCodeRepo        taxcode.Repository
	ClassificationRepo taxcode.ClassificationRepository
	InvoiceRepo        invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	catalog *province.Catalog
	cache   cache.Cache
	logger  *logger.Logger
	config  *config.Configuration
	now     time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelError

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.catalog = CanadianCatalog()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.cache = cache.Initialize(s.config)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		CustomerRepo:       NewInMemoryCustomerStore(),
		ItemRepo:           NewInMemoryItemStore(),
		TaxCodeRepo:        NewInMemoryTaxCodeStore(),
		ClassificationRepo: NewInMemoryClassificationStore(),
		InvoiceRepo:        NewInMemoryInvoiceStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.ItemRepo.(*InMemoryItemStore).Clear()
	s.stores.TaxCodeRepo.(*InMemoryTaxCodeStore).Clear()
	s.stores.ClassificationRepo.(*InMemoryClassificationStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCatalog returns the Canadian province catalog fixture
func (s *BaseServiceTestSuite) GetCatalog() *province.Catalog {
	return s.catalog
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
