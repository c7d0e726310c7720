package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

// FormatUSD renders a price for templates, e.g. $1,299.99.
func FormatUSD(amount interface{}) string {
	switch v := amount.(type) {
	case decimal.Decimal:
		return usd.FormatMoneyDecimal(v)
	case float64:
		return usd.FormatMoney(v)
	case int:
		return usd.FormatMoney(v)
	case int64:
		return usd.FormatMoney(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return usd.FormatMoneyDecimal(decimal.Zero)
		}
		return usd.FormatMoneyDecimal(parsed)
	default:
		return usd.FormatMoneyDecimal(decimal.Zero)
	}
}
