package format

import (
	"fmt"
	"slices"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
)

// ClusterTable lists every archetype with its count and share, then any
// verbatim metadata labels outside the fixed set.
func ClusterTable(s landscape.Summary, m Mode) string {
	t := NewTable(m)
	t.Header("Cluster", "Count", "Share")
	for _, l := range cluster.Labels {
		n := s.Clusters[l]
		t.Row(string(l), n, Percent(n, s.Conversations))
	}
	var extra []string
	for l := range s.Clusters {
		if !l.Valid() {
			extra = append(extra, string(l))
		}
	}
	slices.Sort(extra)
	for _, l := range extra {
		n := s.Clusters[cluster.Label(l)]
		t.Row(l, n, Percent(n, s.Conversations))
	}
	t.Footer("TOTAL", s.Conversations, Percent(s.Conversations, s.Conversations))
	t.AlignRight(2, 3)
	return t.String()
}

// TierTable counts decisions per classification tier.
func TierTable(s landscape.Summary, m Mode) string {
	t := NewTable(m)
	t.Header("Tier", "Count")
	for _, tier := range []cluster.Tier{cluster.TierMetadata, cluster.TierAssignment, cluster.TierHeuristic, cluster.TierDefault} {
		t.Row(string(tier), s.Tiers[tier])
	}
	t.Footer("SKIPPED POINTS", s.SkippedPoints)
	t.AlignRight(2)
	return t.String()
}

// ResultsTable is one row per conversation.
func ResultsTable(results []landscape.Result, m Mode) string {
	t := NewTable(m)
	t.Header("ID", "Points", "Mean", "Variance", "Label", "Tier", "Eval")
	for _, r := range results {
		status := "-"
		if r.Eval != nil {
			status = "pass"
			if !r.Eval.Passed {
				status = "FAIL"
			}
		}
		t.Row(r.ID, len(r.Points), fmt.Sprintf("%.3f", r.Stats.Mean),
			fmt.Sprintf("%.4f", r.Stats.Variance), string(r.Decision.Label),
			string(r.Decision.Tier), status)
	}
	t.AlignRight(2, 3, 4)
	return t.String()
}
