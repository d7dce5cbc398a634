package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camayank/startupvaluator/internal/blend"
	"github.com/camayank/startupvaluator/internal/validation"
)

var computeCmd = &cobra.Command{
	Use:   "compute <profile>",
	Short: "Compute a valuation report for a profile file",
	Long: `Reads a business profile (JSON or YAML), runs every applicable valuation
method and prints the blended report as JSON. When no method applies, the
partial report is printed and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

var validateCmd = &cobra.Command{
	Use:   "validate <profile>",
	Short: "Print validation findings and field requirements for a profile file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runCompute(cmd *cobra.Command, args []string) error {
	p, err := readProfile(args[0])
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.close()

	report, err := eng.valuation.Compute(cmd.Context(), p, nil)
	if report != nil {
		if werr := writeJSON(cmd, report); werr != nil {
			return werr
		}
	}
	if errors.Is(err, blend.ErrNoApplicableMethod) {
		return fmt.Errorf("no valuation could be blended: %w", err)
	}
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := readProfile(args[0])
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.close()

	resp, err := eng.valuation.Validate(cmd.Context(), p)
	if err != nil {
		return err
	}
	if err := writeJSON(cmd, resp); err != nil {
		return err
	}
	return validation.BlockingError(resp.Findings)
}
