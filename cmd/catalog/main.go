package main

import (
	"time"

	"github.com/maplebill/maplebill/internal/config"
	"github.com/maplebill/maplebill/internal/domain/province"
	"github.com/maplebill/maplebill/internal/logger"
	"github.com/maplebill/maplebill/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

// catalog is a lint-and-inspect tool for the tax catalog seed: it loads the
// configured catalog file, validates it, and logs every province with the
// rates in effect today. A malformed catalog fails the run.
func main() {
	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,
			config.LoadCatalog,
		),
		fx.Invoke(printCatalog),
		fx.NopLogger,
	)
	app.Run()
}

func printCatalog(catalog *province.Catalog, log *logger.Logger, shutdowner fx.Shutdowner) error {
	today := time.Now().UTC()

	for _, p := range catalog.Provinces() {
		taxes := catalog.StandardTaxes(p.Code, today)
		fields := []interface{}{
			"province", p.Code,
			"name", p.Name,
		}
		for _, t := range taxes {
			fields = append(fields, t.Code, t.Rate.String())
		}
		log.Infow("province taxes in effect", fields...)
	}

	return shutdowner.Shutdown()
}
