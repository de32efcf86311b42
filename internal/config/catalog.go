package config

import (
	"time"

	"github.com/maplebill/maplebill/internal/domain/province"
	"github.com/maplebill/maplebill/internal/domain/tax"
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// catalogFile is the on-disk shape of the tax catalog seed
type catalogFile struct {
	Provinces []provinceSeed `mapstructure:"provinces"`
}

type provinceSeed struct {
	Code  string    `mapstructure:"code"`
	Name  string    `mapstructure:"name"`
	Taxes []taxSeed `mapstructure:"taxes"`
}

type taxSeed struct {
	Code         string     `mapstructure:"code"`
	Name         string     `mapstructure:"name"`
	Jurisdiction string     `mapstructure:"jurisdiction"`
	Rates        []rateSeed `mapstructure:"rates"`
}

type rateSeed struct {
	Rate          string `mapstructure:"rate"`
	EffectiveFrom string `mapstructure:"effective_from"`
	EffectiveTo   string `mapstructure:"effective_to"`
}

// LoadCatalog reads the tax catalog seed file named by the configuration and
// builds the immutable province catalog from it
func LoadCatalog(cfg *Configuration) (*province.Catalog, error) {
	v := viper.New()
	v.SetConfigFile(cfg.Catalog.File)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not read tax catalog file %s", cfg.Catalog.File).
			Mark(ierr.ErrSystem)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not parse tax catalog file %s", cfg.Catalog.File).
			Mark(ierr.ErrValidation)
	}

	provinces := make([]*province.Province, 0, len(file.Provinces))
	for _, ps := range file.Provinces {
		taxes := make([]*tax.Tax, 0, len(ps.Taxes))
		for _, ts := range ps.Taxes {
			t, err := buildTax(ts)
			if err != nil {
				return nil, err
			}
			taxes = append(taxes, t)
		}
		provinces = append(provinces, &province.Province{
			Code:  ps.Code,
			Name:  ps.Name,
			Taxes: taxes,
		})
	}

	return province.NewCatalog(provinces)
}

func buildTax(seed taxSeed) (*tax.Tax, error) {
	t := &tax.Tax{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX),
		Code:         seed.Code,
		Name:         seed.Name,
		Jurisdiction: types.TaxJurisdiction(seed.Jurisdiction),
	}

	for _, rs := range seed.Rates {
		rate, err := buildRate(seed.Code, rs)
		if err != nil {
			return nil, err
		}
		if err := t.AddRate(rate); err != nil {
			return nil, err
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func buildRate(taxCode string, seed rateSeed) (tax.TaxRate, error) {
	value, err := decimal.NewFromString(seed.Rate)
	if err != nil {
		return tax.TaxRate{}, ierr.WithError(err).
			WithHintf("Tax %s has a malformed rate %q", taxCode, seed.Rate).
			Mark(ierr.ErrValidation)
	}

	from, err := time.Parse(time.DateOnly, seed.EffectiveFrom)
	if err != nil {
		return tax.TaxRate{}, ierr.WithError(err).
			WithHintf("Tax %s has a malformed effective date %q", taxCode, seed.EffectiveFrom).
			Mark(ierr.ErrValidation)
	}

	var to *time.Time
	if seed.EffectiveTo != "" {
		parsed, err := time.Parse(time.DateOnly, seed.EffectiveTo)
		if err != nil {
			return tax.TaxRate{}, ierr.WithError(err).
				WithHintf("Tax %s has a malformed expiry date %q", taxCode, seed.EffectiveTo).
				Mark(ierr.ErrValidation)
		}
		to = &parsed
	}

	return tax.TaxRate{
		Rate:          value,
		EffectiveFrom: from,
		EffectiveTo:   to,
	}, nil
}
