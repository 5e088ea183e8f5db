package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ToolCrib/internal/calc"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a length, area, weight, temperature or angle",
	Long: `Convert a value between units of the same quantity.

Units:
  length       mm cm m in ft yd
  area         mm2 cm2 m2 in2 ft2 yd2
  weight       g kg t oz lb
  temperature  C F K
  angle        deg rad

Example:
  toolcrib convert 0.25 in mm
  toolcrib convert 45 deg rad`,
	Args: cobra.ExactArgs(3),
	// Conversion needs neither config nor state.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := convertValue(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func convertValue(value, from, to string) (string, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return "", fmt.Errorf("invalid value %q", value)
	}
	q, err := calc.QuantityForUnit(from)
	if err != nil {
		return "", err
	}
	r, err := calc.Convert(q, v, from, to)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(r, 'g', 10, 64) + " " + to, nil
}
