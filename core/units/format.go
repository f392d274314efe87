package units

import (
	"sort"
	"strconv"
	"strings"
)

// MagnitudeFormatter renders a magnitude, e.g. rounded or localized
type MagnitudeFormatter func(float64) string

// FormatMagnitude is the default formatter: the shortest representation
// that parses back to the same float64.
func FormatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// sortedTerms orders terms by descending exponent, then symbol
func sortedTerms(u UnitMap) []Term {
	terms := make([]Term, 0, len(u))
	for _, t := range u {
		if t.Exp != 0 {
			terms = append(terms, t)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Exp != terms[j].Exp {
			return terms[i].Exp > terms[j].Exp
		}
		return terms[i].Symbol < terms[j].Symbol
	})
	return terms
}

// describeUnits renders a unit map. With names nil the compact form is
// produced (m**2*kg/s**2); otherwise names maps symbols to display names
// and the verbose form is produced (squared meter kilogram per second).
func describeUnits(u UnitMap, names func(string) string) string {
	terms := sortedTerms(u)
	long := names != nil

	var num, den []string
	for _, t := range terms {
		if t.Exp > 0 {
			num = append(num, describeTerm(t.Symbol, t.Exp, names))
		} else {
			den = append(den, describeTerm(t.Symbol, -t.Exp, names))
		}
	}

	sep := "*"
	if long {
		sep = " "
	}
	numText := strings.Join(num, sep)
	denText := strings.Join(den, sep)
	if !long {
		if len(num) > 1 && len(den) > 0 {
			numText = "(" + numText + ")"
		}
		if len(den) > 1 {
			denText = "(" + denText + ")"
		}
	}

	switch {
	case len(num) == 0 && len(den) == 0:
		return ""
	case len(num) == 0:
		return "1/" + denText
	case len(den) == 0:
		return numText
	case long:
		return numText + " per " + denText
	default:
		return numText + "/" + denText
	}
}

func describeTerm(symbol string, exp int, names func(string) string) string {
	if names == nil {
		if exp == 1 {
			return symbol
		}
		return symbol + "**" + strconv.Itoa(exp)
	}
	name := names(symbol)
	switch exp {
	case 1:
		return name
	case 2:
		return "squared " + name
	case 3:
		return "cubed " + name
	default:
		return name + " to the " + strconv.Itoa(exp) + " power"
	}
}

func (m Measure) displayName(symbol string) string {
	if m.reg == nil {
		return symbol
	}
	def, err := m.reg.Lookup(symbol)
	if err != nil || def.Name == "" {
		return symbol
	}
	return def.Name
}

// String renders the compact form: 9.81*m/s**2. Parsing it yields a
// value-equal measure.
func (m Measure) String() string {
	return m.StringWith(nil)
}

// StringWith is String with a custom magnitude formatter
func (m Measure) StringWith(f MagnitudeFormatter) string {
	if f == nil {
		f = FormatMagnitude
	}
	if m.IsMagnitude() {
		return f(m.magnitude)
	}
	return f(m.magnitude) + "*" + describeUnits(m.units, nil)
}

// Abbr renders the short form: 3 m/s, 2 (m^2 kg)/s^2
func (m Measure) Abbr() string {
	return m.AbbrWith(nil)
}

// AbbrWith is Abbr with a custom magnitude formatter
func (m Measure) AbbrWith(f MagnitudeFormatter) string {
	if f == nil {
		f = FormatMagnitude
	}
	if m.IsMagnitude() {
		return f(m.magnitude)
	}
	u := describeUnits(m.units, nil)
	u = strings.ReplaceAll(u, "**", "^")
	u = strings.ReplaceAll(u, "*", " ")
	return f(m.magnitude) + " " + u
}

// Describe renders unit display names: 1.5 meter per second. A nil
// formatter uses FormatMagnitude.
func (m Measure) Describe(f MagnitudeFormatter) string {
	if f == nil {
		f = FormatMagnitude
	}
	if m.IsMagnitude() {
		return f(m.magnitude)
	}
	return f(m.magnitude) + " " + describeUnits(m.units, m.displayName)
}
