package main

import (
	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
	"github.com/danielpatrickdp/convo-terrain/internal/terrain"
)

var heightmapFlags struct {
	in   inputFlags
	size int
	mode string
}

var heightmapCmd = &cobra.Command{
	Use:   "heightmap",
	Short: "Generate the backdrop heightmap for each conversation",
	RunE:  runHeightmap,
}

func init() {
	heightmapFlags.in.register(heightmapCmd)
	f := heightmapCmd.Flags()
	f.IntVar(&heightmapFlags.size, "size", 0, "Grid size (overrides terrain.size)")
	f.StringVar(&heightmapFlags.mode, "metric", "", "Metric mode: uncertainty, affect or composite")
}

type heightmapOutput struct {
	ID        string         `json:"id"`
	Seed      int32          `json:"seed"`
	Params    terrain.Params `json:"params"`
	Heightmap field.Grid     `json:"heightmap"`
}

func runHeightmap(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	if heightmapFlags.size > 0 {
		opts.TerrainSize = heightmapFlags.size
	}
	if heightmapFlags.mode != "" {
		opts.MetricMode = terrain.ParseMetricMode(heightmapFlags.mode)
	}
	batch, err := runBatch(cmd.Context(), heightmapFlags.in, opts)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), batch.Results, func(r landscape.Result) any {
		return heightmapOutput{ID: r.ID, Seed: r.Seed, Params: r.Params, Heightmap: r.Heightmap}
	})
}
