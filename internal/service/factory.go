package service

import (
	"github.com/maplebill/maplebill/internal/cache"
	"github.com/maplebill/maplebill/internal/config"
	"github.com/maplebill/maplebill/internal/domain/customer"
	"github.com/maplebill/maplebill/internal/domain/invoice"
	"github.com/maplebill/maplebill/internal/domain/item"
	"github.com/maplebill/maplebill/internal/domain/province"
	"github.com/maplebill/maplebill/internal/domain/taxcode"
	"github.com/maplebill/maplebill/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	Catalog *province.Catalog
	Cache   cache.Cache

	// Repositories
	CustomerRepo       customer.Repository
	ItemRepo           item.Repository
	TaxCodeRepo        taxcode.Repository
	ClassificationRepo taxcode.ClassificationRepository
	InvoiceRepo        invoice.Repository
}
