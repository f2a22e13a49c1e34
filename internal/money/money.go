// Package money handles amounts in centavos and their pt-BR display form.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats centavos as a Brazilian Real string, e.g. 123456 -> "R$ 1.234,56".
// The output is stable and suitable for golden comparisons.
func BRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	formatted := printer.Sprint(number.Decimal(
		float64(cents)/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	if neg {
		return "-R$ " + formatted
	}

	return "R$ " + formatted
}

// ParseBRL converts a user-entered amount into centavos. Accepts decimal
// comma or point, an optional "R$" prefix and thousand separators:
// "1.234,56", "R$ 12,50", "30" are all valid.
func ParseBRL(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimSpace(clean)

	if strings.Contains(clean, ",") {
		// Decimal comma: dots are thousand separators.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
