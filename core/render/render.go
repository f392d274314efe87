// Package render - Magnitude formatters for measure output
package render

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"units-system/core/units"
	"units-system/internal/errors"
)

// Round rounds v to the given number of significant digits. Non-positive
// digits, zero and non-finite values are returned unchanged.
func Round(v float64, digits int) float64 {
	if digits <= 0 || v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	places := digits - 1 - int(math.Floor(math.Log10(math.Abs(v))))
	rounded, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	return rounded
}

// Significant formats magnitudes rounded to digits significant digits.
// Zero digits keeps full precision.
func Significant(digits int) units.MagnitudeFormatter {
	if digits <= 0 {
		return units.FormatMagnitude
	}
	return func(v float64) string {
		return strconv.FormatFloat(Round(v, digits), 'g', -1, 64)
	}
}

// Localized formats magnitudes with the decimal and grouping separators of
// a BCP 47 language tag ("de", "en-US", "fr-CH"), rounded to digits
// significant digits.
func Localized(tag string, digits int) (units.MagnitudeFormatter, error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "invalid locale %q", tag)
	}
	p := message.NewPrinter(lang)
	return func(v float64) string {
		return p.Sprintf("%v", Round(v, digits))
	}, nil
}

// Formatter picks Localized when a locale is set and Significant otherwise
func Formatter(locale string, digits int) (units.MagnitudeFormatter, error) {
	if locale == "" {
		return Significant(digits), nil
	}
	return Localized(locale, digits)
}
