// Package format renders amounts for display.
package format

import (
	"fmt"
	"unicode"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for one locale and currency. Digit grouping and
// the decimal separator follow the locale, so en-IN prints 12,34,567 while
// en-US prints 1,234,567. A Formatter is safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

var defaultFormatter = mustNew(constants.DefaultLanguage, constants.DefaultCurrency)

// New builds a Formatter for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}

	p := message.NewPrinter(tag)
	symbol := p.Sprint(currency.NarrowSymbol(unit))
	if r := []rune(symbol); len(r) > 0 && unicode.IsLetter(r[len(r)-1]) {
		// ISO codes such as "CHF" need a gap before the digits.
		symbol += " "
	}
	return &Formatter{tag: tag, unit: unit, symbol: symbol, printer: p}, nil
}

func mustNew(locale, code string) *Formatter {
	f, err := New(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the en-IN rupee formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// CurrencyCode returns the ISO 4217 code of the formatter's currency.
func (f *Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Indian reports whether the locale uses lakh and crore grouping.
func (f *Formatter) Indian() bool {
	region, _ := f.tag.Region()
	return region.String() == "IN"
}

// Currency returns amount with the currency symbol and no fraction digits,
// rounded half away from zero (e.g., "-₹12,34,568" for en-IN).
func (f *Formatter) Currency(amount float64) string {
	return f.amount(f.symbol, amount)
}

// Number returns amount as a grouped whole number without a symbol.
func (f *Formatter) Number(amount float64) string {
	return f.amount("", amount)
}

// Percent formats a percentage with the given fraction digits (e.g., "12.50%").
func (f *Formatter) Percent(value float64, digits int32) string {
	if !mathutil.IsFinite(value) {
		return fmt.Sprint(value) + "%"
	}
	return f.fixed(value, digits) + "%"
}

// Compact abbreviates large amounts. Indian locales use crores and lakhs
// (e.g., "7.29 Cr", "2.87 L"); other locales print the full amount.
func (f *Formatter) Compact(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return fmt.Sprint(amount)
	}
	if f.Indian() {
		switch {
		case amount >= constants.Crore:
			return f.fixed(amount/constants.Crore, 2) + " Cr"
		case amount >= constants.Lakh:
			return f.fixed(amount/constants.Lakh, 2) + " L"
		}
	}
	return f.Currency(amount)
}

// fixed rounds half away from zero before printing with exactly digits
// fraction digits.
func (f *Formatter) fixed(value float64, digits int32) string {
	rounded := decimal.NewFromFloat(value).Round(digits).InexactFloat64()
	return f.printer.Sprint(number.Decimal(rounded, number.Scale(int(digits))))
}

// amount rounds first so that halves go away from zero, then lets the
// locale's printer group the digits. The sign leads the symbol.
func (f *Formatter) amount(symbol string, amount float64) string {
	if !mathutil.IsFinite(amount) {
		return fmt.Sprint(amount)
	}
	rounded := decimal.NewFromFloat(amount).Round(0)
	formatted := symbol + f.printer.Sprint(number.Decimal(rounded.Abs().IntPart()))
	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Currency formats a rupee amount with en-IN grouping.
func Currency(amount float64) string {
	return defaultFormatter.Currency(amount)
}

// Percent formats a percentage for the default locale.
func Percent(value float64, digits int32) string {
	return defaultFormatter.Percent(value, digits)
}

// Compact abbreviates a rupee amount as crores or lakhs.
func Compact(amount float64) string {
	return defaultFormatter.Compact(amount)
}
