// Package cmd - eval, describe and dimension commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"units-system/core/units"
)

var (
	evalWith []string
	toSI     bool
	detailed bool
	base     bool
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a unit expression",
	Long: `Evaluate a unit expression and print the resulting quantity.

Constants are available qualified (Const.c); --with brings them into
scope under their bare name, shadowing units of the same symbol.

Examples:
  units eval "3*m + 200*cm"
  units eval "sqrt(9*m**2/s**2)"
  units eval --with c,G "G*1*kg/c**2" --base
  units eval --detailed "1*kN"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <expression>",
	Short: "Evaluate an expression and spell out its units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd, args[0], StyleVerbose)
	},
}

// dimensionCmd represents the dimension command
var dimensionCmd = &cobra.Command{
	Use:   "dimension <expression>",
	Short: "Infer the dimension of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := loadSystem()
		if err != nil {
			return err
		}
		m, err := sys.Eval(context.Background(), args[0])
		if err != nil {
			return err
		}
		switch dim := m.Dimension(); {
		case m.IsMagnitude():
			fmt.Fprintln(cmd.OutOrStdout(), "dimensionless")
		case dim == units.NoDimension:
			fmt.Fprintf(cmd.OutOrStdout(), "unnamed (%s)\n", m.Units())
		default:
			fmt.Fprintln(cmd.OutOrStdout(), dim)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringSliceVar(&evalWith, "with", nil, "constants to bring into scope")
	evalCmd.Flags().BoolVar(&toSI, "si", false, "express the result in SI reference units")
	evalCmd.Flags().BoolVar(&detailed, "detailed", false, "decompose derived units one level")
	evalCmd.Flags().BoolVar(&base, "base", false, "decompose derived units down to primitive ones")
	addRenderFlags(evalCmd)

	describeCmd.Flags().StringSliceVar(&evalWith, "with", nil, "constants to bring into scope")
	addRenderFlags(describeCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	return evaluate(cmd, args[0], StyleAbbr)
}

func evaluate(cmd *cobra.Command, expression, fallback string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}
	show, err := renderer(cmd, fallback)
	if err != nil {
		return err
	}

	ctx, err := sys.WithConstants(context.Background(), evalWith...)
	if err != nil {
		return err
	}
	m, err := sys.Eval(ctx, expression)
	if err != nil {
		return err
	}
	switch {
	case base:
		m = m.Base()
	case detailed:
		m = m.DetailedUnits()
	}
	if toSI {
		if m, err = m.ToSI(); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), show(m))
	return nil
}
