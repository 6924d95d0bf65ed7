package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CONVERSION_PRECISION is the fixed number of decimal places every converted
// monetary leaf is rounded to, independently per field.
const CONVERSION_PRECISION = 2

// CurrencyConfig holds display and rounding settings for a currency
type CurrencyConfig struct {
	Symbol    string
	Precision int32
}

// CURRENCY_CONFIGS is a map of 3 digit ISO currency codes to their configs
// TODO add more currencies or look for a library
var CURRENCY_CONFIGS = map[string]CurrencyConfig{
	"usd": {Symbol: "$", Precision: 2},
	"eur": {Symbol: "€", Precision: 2},
	"gbp": {Symbol: "£", Precision: 2},
	"aud": {Symbol: "AU$", Precision: 2},
	"cad": {Symbol: "CA$", Precision: 2},
	"chf": {Symbol: "CHF", Precision: 2},
	"sek": {Symbol: "kr", Precision: 2},
	"nzd": {Symbol: "NZ$", Precision: 2},
	"hkd": {Symbol: "HK$", Precision: 2},
	"sgd": {Symbol: "S$", Precision: 2},
	"jpy": {Symbol: "¥", Precision: 2},
	"cny": {Symbol: "¥", Precision: 2},
	"inr": {Symbol: "₹", Precision: 2},
	"brl": {Symbol: "R$", Precision: 2},
	"rub": {Symbol: "₽", Precision: 2},
	"mxn": {Symbol: "MX$", Precision: 2},
	"krw": {Symbol: "₩", Precision: 2},
	"try": {Symbol: "₺", Precision: 2},
	"zar": {Symbol: "R", Precision: 2},
	"myr": {Symbol: "RM", Precision: 2},
}

// GetCurrencyConfig returns the config for a given currency code.
// Unknown codes fall back to the code itself as symbol and the fixed
// conversion precision.
func GetCurrencyConfig(code string) CurrencyConfig {
	if config, ok := CURRENCY_CONFIGS[strings.ToLower(code)]; ok {
		return config
	}
	return CurrencyConfig{Symbol: code, Precision: CONVERSION_PRECISION}
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	return GetCurrencyConfig(code).Symbol
}

// RateMap maps a source currency code to its rate against the target
// currency: rates[src] is how many units of src one unit of the target
// currency buys (1 EUR = 1.10 USD reads as rates["USD"] = 1.10 when EUR is
// the target).
type RateMap map[string]decimal.Decimal

// RateFor looks up the rate for a source currency. Lookups are
// case-insensitive to match how currency codes arrive from stored sessions.
func (r RateMap) RateFor(currency string) (decimal.Decimal, bool) {
	if rate, ok := r[currency]; ok {
		return rate, true
	}
	rate, ok := r[strings.ToLower(currency)]
	if !ok {
		rate, ok = r[strings.ToUpper(currency)]
	}
	return rate, ok
}
