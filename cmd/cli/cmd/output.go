package cmd

import (
	"github.com/spf13/cobra"

	"units-system/core/render"
	"units-system/core/units"
	"units-system/internal/config"
	"units-system/internal/errors"
)

// Output styles
const (
	StyleCompact = "compact"
	StyleAbbr    = "abbr"
	StyleVerbose = "verbose"
)

var (
	precision int
	locale    string
	style     string
)

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "significant digits (0 = full precision)")
	cmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale of the magnitude (e.g. de)")
	cmd.Flags().StringVarP(&style, "style", "s", StyleAbbr, "output style (compact, abbr, verbose)")
}

// renderer resolves the render flags against the configuration: a flag
// given on the command line wins. fallback is the style used when neither
// the flag nor output.verbose selects one.
func renderer(cmd *cobra.Command, fallback string) (func(units.Measure) string, error) {
	out := config.Get().Output

	digits := out.Precision
	if cmd.Flags().Changed("precision") {
		digits = precision
	}
	loc := out.Locale
	if cmd.Flags().Changed("locale") {
		loc = locale
	}
	st := fallback
	if out.Verbose {
		st = StyleVerbose
	}
	if cmd.Flags().Changed("style") {
		st = style
	}

	f, err := render.Formatter(loc, digits)
	if err != nil {
		return nil, err
	}
	switch st {
	case StyleCompact:
		return func(m units.Measure) string { return m.StringWith(f) }, nil
	case StyleAbbr:
		return func(m units.Measure) string { return m.AbbrWith(f) }, nil
	case StyleVerbose:
		return func(m units.Measure) string { return m.Describe(f) }, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output style %q", st)
	}
}
