package main

import (
	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/affect"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

var trajectoryFlags struct {
	in     inputFlags
	mode   string
	points int
}

var trajectoryCmd = &cobra.Command{
	Use:   "trajectory",
	Short: "Synthesize each conversation's path and place it on the landscape",
	RunE:  runTrajectory,
}

func init() {
	trajectoryFlags.in.register(trajectoryCmd)
	f := trajectoryCmd.Flags()
	f.StringVar(&trajectoryFlags.mode, "mode", "", "Elevation mode: affect or authority (overrides density.source)")
	f.IntVar(&trajectoryFlags.points, "points", 0, "Fixed point count; 0 means one per message")
}

type trajectoryOutput struct {
	ID          string                  `json:"id"`
	Target      trajectory.Target       `json:"target"`
	Coordinates []trajectory.Coordinate `json:"coordinates"`
	Points      []affect.PathPoint      `json:"points"`
}

func runTrajectory(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	if trajectoryFlags.mode != "" {
		opts.ElevationMode = affect.ParseMode(trajectoryFlags.mode)
	}
	if trajectoryFlags.points > 0 {
		opts.Trajectory.Count = trajectoryFlags.points
	}
	batch, err := runBatch(cmd.Context(), trajectoryFlags.in, opts)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), batch.Results, func(r landscape.Result) any {
		return trajectoryOutput{ID: r.ID, Target: r.Target, Coordinates: r.Coordinates, Points: r.Points}
	})
}
