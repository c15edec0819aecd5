package output

import (
	"strconv"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var (
	centsFormat = accounting.Accounting{
		Symbol: "$", Precision: 2, Thousand: ",", Decimal: ".",
		Format: "%s%v", FormatNegative: "-%s%v", FormatZero: "%s%v",
	}
	dollarsFormat = accounting.Accounting{
		Symbol: "$", Precision: 0, Thousand: ",", Decimal: ".",
		Format: "%s%v", FormatNegative: "-%s%v", FormatZero: "%s%v",
	}
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return centsFormat.FormatMoneyDecimal(amount) }

// FormatDollars formats a decimal as whole USD.
func FormatDollars(amount decimal.Decimal) string { return dollarsFormat.FormatMoneyDecimal(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
