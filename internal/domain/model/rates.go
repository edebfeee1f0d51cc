package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RateSnapshot maps upper-cased currency codes to exchange rates expressed as
// target currency units per one unit of the base currency. A snapshot is
// fetched fresh for every processing pass and never shared between passes.
type RateSnapshot map[string]decimal.Decimal

// Lookup finds the rate for code, case-insensitively.
func (s RateSnapshot) Lookup(code string) (decimal.Decimal, bool) {
	rate, ok := s[strings.ToUpper(code)]
	return rate, ok
}
