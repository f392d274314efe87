// Package prefix - SI decimal prefix table
package prefix

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Entry is one prefix: symbol, power-of-ten factor and display name
type Entry struct {
	Symbol string
	Factor float64
	Name   string
}

var table = []Entry{
	{"y", 1e-24, "yocto"},
	{"z", 1e-21, "zepto"},
	{"a", 1e-18, "atto"},
	{"f", 1e-15, "femto"},
	{"p", 1e-12, "pico"},
	{"n", 1e-9, "nano"},
	{"µ", 1e-6, "micro"},
	{"u", 1e-6, "micro"},
	{"m", 1e-3, "milli"},
	{"c", 1e-2, "centi"},
	{"d", 1e-1, "deci"},
	{"da", 1e1, "deca"},
	{"h", 1e2, "hecto"},
	{"k", 1e3, "kilo"},
	{"M", 1e6, "mega"},
	{"G", 1e9, "giga"},
	{"T", 1e12, "tera"},
	{"P", 1e15, "peta"},
	{"E", 1e18, "exa"},
	{"Z", 1e21, "zetta"},
	{"Y", 1e24, "yotta"},
}

var (
	bySymbol    map[string]Entry
	longestLast []Entry
)

func init() {
	bySymbol = make(map[string]Entry, len(table))
	for _, e := range table {
		bySymbol[e.Symbol] = e
	}
	longestLast = make([]Entry, len(table))
	copy(longestLast, table)
	sort.SliceStable(longestLast, func(i, j int) bool {
		return utf8.RuneCountInString(longestLast[i].Symbol) > utf8.RuneCountInString(longestLast[j].Symbol)
	})
}

// All returns the table in its canonical order
func All() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Get returns the prefix with exactly this symbol
func Get(symbol string) (Entry, bool) {
	e, ok := bySymbol[symbol]
	return e, ok
}

// Split finds the longest prefix of symbol whose remainder satisfies known.
// Ties between prefixes of equal length follow table order.
func Split(symbol string, known func(string) bool) (Entry, string, bool) {
	for _, e := range longestLast {
		if len(symbol) <= len(e.Symbol) || !strings.HasPrefix(symbol, e.Symbol) {
			continue
		}
		rest := symbol[len(e.Symbol):]
		if known(rest) {
			return e, rest, true
		}
	}
	return Entry{}, "", false
}
