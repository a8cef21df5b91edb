package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/eval"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/format"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
)

var densityFlags struct {
	in   inputFlags
	size int
}

var densityCmd = &cobra.Command{
	Use:   "density",
	Short: "Fold every conversation's path into one density field",
	RunE:  runDensity,
}

func init() {
	densityFlags.in.register(densityCmd)
	densityCmd.Flags().IntVar(&densityFlags.size, "size", 0, "Density grid size (overrides density.size)")
}

type densityOutput struct {
	RunID    string            `json:"run_id"`
	Density  field.Grid        `json:"density"`
	Contours []contour.Contour `json:"contours"`
	Summary  landscape.Summary `json:"summary"`
	Eval     eval.EvalResult   `json:"eval"`
}

func runDensity(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	if densityFlags.size > 0 {
		opts.DensitySize = densityFlags.size
	}
	batch, err := runBatch(cmd.Context(), densityFlags.in, opts)
	if err != nil {
		return err
	}
	check := eval.NewEvalHarness(eval.DefaultEvalConfig()).Run(eval.Output{Density: batch.Density})

	w := cmd.OutOrStdout()
	if m, ok := tableMode(); ok {
		fmt.Fprint(w, format.ClusterTable(batch.Summary, m))
		fmt.Fprintln(w)
		_, err := fmt.Fprintf(w, "density %dx%d, %d contours, %s\n",
			batch.Density.Size, batch.Density.Size, len(batch.DensityContours), check.Reason)
		return err
	}
	return writeJSON(w, densityOutput{
		RunID:    batch.RunID,
		Density:  batch.Density,
		Contours: batch.DensityContours,
		Summary:  batch.Summary,
		Eval:     check,
	})
}
