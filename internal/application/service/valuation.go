package service

import (
	"github.com/facturis/facturis-api/internal/config"
	"github.com/facturis/facturis-api/internal/domain/entity"
	"github.com/facturis/facturis-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Valuator computes invoice totals and their base-currency conversion.
// The exchange-rate table is injected at construction so rate changes are
// deterministic in tests; nothing here reads ambient globals.
type Valuator struct {
	rates map[enum.Currency]decimal.Decimal
}

// NewValuator creates a valuator from the configured rate table
func NewValuator(cfg config.CurrencyConfig) *Valuator {
	return &Valuator{
		rates: map[enum.Currency]decimal.Decimal{
			enum.CurrencyEUR: cfg.EURRate,
			enum.CurrencyUSD: cfg.USDRate,
		},
	}
}

// ComputeTotals returns the invoice total and its conversion into the
// base currency. The total is the sum of the item totals as supplied by
// the caller; item totals are trusted, not recomputed from quantity and
// price. The base currency converts at the identity rate.
func (v *Valuator) ComputeTotals(items []entity.InvoiceItem, currency enum.Currency) (total, conversion decimal.Decimal) {
	total = decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}

	rate, ok := v.rates[currency]
	if !ok {
		return total, total
	}
	return total, total.Mul(rate)
}
