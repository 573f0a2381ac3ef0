package view

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts as whole currency units with locale grouping,
// e.g. ฿12,345 for Thai baht.
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney returns a formatter for the locale and currency.
func NewMoney(tag language.Tag, unit currency.Unit) *Money {
	p := message.NewPrinter(tag)
	symbol := strings.TrimSpace(p.Sprint(currency.NarrowSymbol(unit)))
	if symbol == "" {
		symbol = unit.String() + " "
	}
	return &Money{printer: p, symbol: symbol}
}

// DefaultMoney formats Thai baht in the Thai locale.
func DefaultMoney() *Money {
	return NewMoney(language.Thai, currency.THB)
}

// Format renders v without fraction digits.
func (m *Money) Format(v float64) string {
	return m.symbol + m.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}
