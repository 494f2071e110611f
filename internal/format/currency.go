// Package format renders amounts for people. The aggregator never formats;
// only documents and the dashboard do.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats an amount in rupees with the locale's digit grouping.
func Currency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprint(currency.Symbol(currency.INR.Amount(f)))
}

// Percent formats a GST rate such as 18 as "18%".
func Percent(rate decimal.Decimal) string {
	return rate.String() + "%"
}
