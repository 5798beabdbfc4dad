// Package currency renders amounts for display. It plays no part in the
// settlement math.
package currency

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale = "vi-VN"
	DefaultCode   = "VND"
)

// Formatter formats whole-unit amounts for one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// New creates a Formatter for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Default returns the vi-VN / VND formatter.
func Default() *Formatter {
	f, err := New(DefaultLocale, DefaultCode)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders an integer amount with the currency symbol and the locale's
// digit grouping.
func (f *Formatter) Format(amount int64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}

// FormatFloat rounds v to a whole unit and formats it.
func (f *Formatter) FormatFloat(v float64) string {
	return f.Format(int64(math.Round(v)))
}

// FormatSigned is FormatFloat with an explicit "+" on positive values.
func (f *Formatter) FormatSigned(v float64) string {
	rounded := int64(math.Round(v))
	if rounded > 0 {
		return "+" + f.Format(rounded)
	}
	return f.Format(rounded)
}
