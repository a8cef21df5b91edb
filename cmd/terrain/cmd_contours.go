package main

import (
	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
)

var contoursFlags struct {
	in    inputFlags
	count int
}

var contoursCmd = &cobra.Command{
	Use:   "contours",
	Short: "Extract iso-elevation contours from each conversation's heightmap",
	RunE:  runContours,
}

func init() {
	contoursFlags.in.register(contoursCmd)
	contoursCmd.Flags().IntVar(&contoursFlags.count, "count", 0, "Contour interval count (overrides terrain.contour_count)")
}

type contoursOutput struct {
	ID       string            `json:"id"`
	Contours []contour.Contour `json:"contours"`
}

func runContours(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	if contoursFlags.count > 0 {
		opts.ContourCount = contoursFlags.count
	}
	batch, err := runBatch(cmd.Context(), contoursFlags.in, opts)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), batch.Results, func(r landscape.Result) any {
		return contoursOutput{ID: r.ID, Contours: r.Contours}
	})
}
