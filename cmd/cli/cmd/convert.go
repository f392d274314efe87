// Package cmd - convert command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"units-system/core/units"
)

var (
	relative    bool
	convertWith []string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <expression> <target>",
	Short: "Convert a quantity into compatible units",
	Long: `Evaluate an expression and express it in the units of the target
expression. Affine scales (°C, °F) convert levels by default; --relative
converts intervals instead.

Examples:
  units convert "3*ft" m
  units convert "1*hp" "kW" -p 4
  units convert --relative "10*°C" K
  units convert --with c "Const.c" "km/s"`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVarP(&relative, "relative", "r", false, "convert intervals of affine scales")
	convertCmd.Flags().StringSliceVar(&convertWith, "with", nil, "constants to bring into scope")
	addRenderFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}
	show, err := renderer(cmd, StyleAbbr)
	if err != nil {
		return err
	}

	ctx, err := sys.WithConstants(context.Background(), convertWith...)
	if err != nil {
		return err
	}
	mode := units.Absolute
	if relative {
		mode = units.Relative
	}
	m, err := sys.Convert(ctx, args[0], args[1], mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), show(m))
	return nil
}
