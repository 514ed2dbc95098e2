package model

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// minorUnits maps quote codes that price in hundredths to their ISO currency.
// Keys are matched case-sensitively: "GBp" is pence, "GBP" is pounds.
var minorUnits = map[string]string{
	"GBp": "GBP",
	"GBX": "GBP",
	"ZAc": "ZAR",
	"ZAC": "ZAR",
	"ILA": "ILS",
}

// FormatPrice renders a price in its quote currency, e.g. "R$250.000,00" for
// BRL. Prices quoted in minor units are converted to the major currency.
// Unknown or empty currency codes fall back to a plain two-digit value.
func FormatPrice(d decimal.Decimal, currency string) string {
	code := strings.TrimSpace(currency)
	if major, ok := minorUnits[code]; ok {
		code = major
		d = d.Shift(-2)
	} else {
		code = strings.ToUpper(code)
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return d.StringFixed(2)
		}
		return d.StringFixed(2) + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
