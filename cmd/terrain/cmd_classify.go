package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/format"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
)

var classifyFlags struct {
	in inputFlags
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Assign each conversation a behavioural cluster",
	RunE:  runClassify,
}

func init() {
	classifyFlags.in.register(classifyCmd)
}

type classifyOutput struct {
	Results []classifyResult  `json:"results"`
	Summary landscape.Summary `json:"summary"`
}

type classifyResult struct {
	ID       string           `json:"id"`
	Stats    cluster.Stats    `json:"stats"`
	Decision cluster.Decision `json:"decision"`
}

func runClassify(cmd *cobra.Command, _ []string) error {
	batch, err := runBatch(cmd.Context(), classifyFlags.in, baseOptions())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if m, ok := tableMode(); ok {
		fmt.Fprint(w, format.ResultsTable(batch.Results, m))
		fmt.Fprintln(w)
		fmt.Fprint(w, format.ClusterTable(batch.Summary, m))
		fmt.Fprintln(w)
		_, err := fmt.Fprintln(w, format.TierTable(batch.Summary, m))
		return err
	}
	out := classifyOutput{Results: make([]classifyResult, len(batch.Results)), Summary: batch.Summary}
	for i, r := range batch.Results {
		out.Results[i] = classifyResult{ID: r.ID, Stats: r.Stats, Decision: r.Decision}
	}
	return writeJSON(w, out)
}
