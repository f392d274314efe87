// Package cmd - units and constants catalog commands
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"units-system/core/units"
)

var listDimension string

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Inspect registered units",
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered units in definition order",
	Args:  cobra.NoArgs,
	RunE:  runUnitsList,
}

var unitsShowCmd = &cobra.Command{
	Use:   "show <symbol>",
	Short: "Show one unit, prefixed symbols included (km, µs)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitsShow,
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Inspect physical constants",
}

var constantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List constants in definition order",
	Args:  cobra.NoArgs,
	RunE:  runConstantsList,
}

var constantsShowCmd = &cobra.Command{
	Use:   "show <symbol>",
	Short: "Show one constant",
	Args:  cobra.ExactArgs(1),
	RunE:  runConstantsShow,
}

func init() {
	unitsCmd.AddCommand(unitsListCmd)
	unitsCmd.AddCommand(unitsShowCmd)
	constantsCmd.AddCommand(constantsListCmd)
	constantsCmd.AddCommand(constantsShowCmd)

	unitsListCmd.Flags().StringVarP(&listDimension, "dimension", "d", "", "only units of this dimension")
	addRenderFlags(constantsListCmd)
	addRenderFlags(constantsShowCmd)
}

func runUnitsList(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tDIMENSION\tFACTOR")
	for _, sym := range sys.Units.Symbols() {
		def, err := sys.Units.Lookup(sym)
		if err != nil {
			return err
		}
		if listDimension != "" && string(def.Dimension) != listDimension {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Symbol, def.Name, dimensionLabel(def.Dimension), units.FormatMagnitude(def.Factor))
	}
	return w.Flush()
}

func runUnitsShow(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}
	def, err := sys.Units.Lookup(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Symbol:\t%s\n", def.Symbol)
	if def.Name != "" {
		fmt.Fprintf(w, "Name:\t%s\n", def.Name)
	}
	fmt.Fprintf(w, "Dimension:\t%s\n", dimensionLabel(def.Dimension))
	if def.Prefix != "" {
		fmt.Fprintf(w, "Prefix:\t%s\n", def.Prefix)
	}
	fmt.Fprintf(w, "Factor:\t%s\n", units.FormatMagnitude(def.Factor))
	if def.Bias != 0 {
		fmt.Fprintf(w, "Bias:\t%s\n", units.FormatMagnitude(def.Bias))
	}
	if ref, ok := sys.Units.SIReference(def.Dimension); ok {
		fmt.Fprintf(w, "SI reference:\t%s\n", ref)
	}
	if def.Decomposition != nil {
		fmt.Fprintf(w, "Decomposition:\t%s\n", def.Decomposition)
	}
	return w.Flush()
}

func runConstantsList(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}
	show, err := renderer(cmd, StyleAbbr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tVALUE\tDESCRIPTION")
	for _, sym := range sys.Constants.Symbols() {
		e, err := sys.Constants.Lookup(sym)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Symbol, show(e.Value), e.Description)
	}
	return w.Flush()
}

func runConstantsShow(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}
	show, err := renderer(cmd, StyleAbbr)
	if err != nil {
		return err
	}
	e, err := sys.Constants.Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", e.Symbol, show(e.Value))
	if e.Description != "" {
		fmt.Fprintln(cmd.OutOrStdout(), e.Description)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dimension: %s\n", dimensionLabel(e.Value.Dimension()))
	return nil
}

func dimensionLabel(d units.Dimension) string {
	if d == units.NoDimension {
		return "-"
	}
	return string(d)
}
