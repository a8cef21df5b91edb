package landscape

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/convo-terrain/internal/affect"
	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/config"
	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/logging"
	"github.com/danielpatrickdp/convo-terrain/internal/terrain"
)

// #region helpers

func smallOptions() Options {
	opts := DefaultOptions()
	opts.TerrainSize = 16
	opts.DensitySize = 16
	opts.ContourCount = 5
	opts.DensityContours = 5
	opts.Workers = 2
	return opts
}

func loadFixture(t *testing.T) []conversation.Conversation {
	t.Helper()
	convs, err := LoadConversations(filepath.Join("testdata", "conversations.json"))
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	return convs
}

// #endregion helpers

// #region fixture-tests

func TestLoadConversations_Wrapped(t *testing.T) {
	convs := loadFixture(t)
	if len(convs) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(convs))
	}
	if convs[0].Classification.Pattern() != conversation.PatternQuestionAnswer {
		t.Errorf("pattern: got %q", convs[0].Classification.Pattern())
	}
	if convs[1].Metadata.Cluster != "PeakVolatile_Pattern" {
		t.Errorf("metadata cluster: got %q", convs[1].Metadata.Cluster)
	}
	if convs[2].Classification != nil {
		t.Errorf("expected nil classification, got %+v", convs[2].Classification)
	}
}

func TestLoadConversations_BareArray(t *testing.T) {
	convs, err := LoadConversations(filepath.Join("testdata", "bare_array.json"))
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	if len(convs) != 2 || convs[0].ID != "one" || len(convs[1].Messages) != 0 {
		t.Errorf("unexpected decode: %+v", convs)
	}
}

func TestLoadConversations_SchemaViolation(t *testing.T) {
	if _, err := LoadConversations(filepath.Join("testdata", "invalid.json")); err == nil {
		t.Fatal("expected schema error for message without content")
	}
}

func TestLoadConversations_Missing(t *testing.T) {
	if _, err := LoadConversations(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeConversations_Rejects(t *testing.T) {
	tests := map[string]string{
		"not-json":        `{`,
		"scalar":          `42`,
		"numeric-dim":     `[{"messages": [], "classification": {"powerDynamics": 3}}]`,
		"confidence-high": `[{"messages": [], "classification": {"powerDynamics": {"category": "x", "confidence": 2}}}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeConversations([]byte(raw)); err == nil {
				t.Errorf("expected error for %s", raw)
			}
		})
	}
}

// #endregion fixture-tests

// #region build-tests

func TestBuild_Pipeline(t *testing.T) {
	convs := loadFixture(t)
	res, err := Build(context.Background(), convs[0], smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.ID != "qa-short" || res.Seed != conversation.Seed(convs[0]) {
		t.Errorf("unexpected identity: id=%q seed=%d", res.ID, res.Seed)
	}
	if res.Heightmap.Size != 16 || len(res.Heightmap.Cells) != 256 {
		t.Errorf("heightmap size: got %d", res.Heightmap.Size)
	}
	if len(res.Coordinates) != 4 || len(res.Points) != 4 || len(res.Intensities) != 4 || len(res.Tiers) != 4 {
		t.Fatalf("expected 4 of everything, got coords=%d points=%d intensities=%d tiers=%d",
			len(res.Coordinates), len(res.Points), len(res.Intensities), len(res.Tiers))
	}
	if res.Decision.Tier != cluster.TierHeuristic {
		t.Errorf("tier: got %q, want %q", res.Decision.Tier, cluster.TierHeuristic)
	}
	if res.Eval == nil || !res.Eval.Passed {
		t.Errorf("expected eval to pass, got %+v", res.Eval)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	conv := loadFixture(t)[1]
	a, err := Build(context.Background(), conv, smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(context.Background(), conv, smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("non-deterministic result:\n%s", diff)
	}
}

func TestBuild_SequentialMatchesParallel(t *testing.T) {
	conv := loadFixture(t)[0]
	seq := smallOptions()
	seq.Workers = 1
	a, err := Build(context.Background(), conv, seq)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(context.Background(), conv, smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff(a.Heightmap, b.Heightmap); diff != "" {
		t.Errorf("heightmap differs between sequential and parallel:\n%s", diff)
	}
}

func TestBuild_MetadataTagVerbatim(t *testing.T) {
	conv := loadFixture(t)[1]
	res, err := Build(context.Background(), conv, smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Decision.Label != "PeakVolatile_Pattern" || res.Decision.Tier != cluster.TierMetadata {
		t.Errorf("got %+v", res.Decision)
	}
}

func TestBuild_EmptyConversation(t *testing.T) {
	res, err := Build(context.Background(), conversation.Conversation{ID: "empty"}, smallOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Coordinates) != 0 || len(res.Points) != 0 {
		t.Errorf("expected no path, got %d coordinates", len(res.Coordinates))
	}
	if res.Decision.Label != cluster.DefaultLabel || res.Decision.Tier != cluster.TierDefault {
		t.Errorf("expected default decision, got %+v", res.Decision)
	}
	if res.Params.Intensity != affect.DefaultIntensity {
		t.Errorf("expected default intensity, got %f", res.Params.Intensity)
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conv := loadFixture(t)[0]
	for _, workers := range []int{1, 4} {
		opts := smallOptions()
		opts.Workers = workers
		if _, err := Build(ctx, conv, opts); err == nil {
			t.Errorf("workers=%d: expected cancellation error", workers)
		}
	}
}

func TestBuild_AuthorityMode(t *testing.T) {
	conv := loadFixture(t)[0]
	opts := smallOptions()
	opts.ElevationMode = affect.ModeAuthority
	res, err := Build(context.Background(), conv, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := affect.AuthorityScore(conv.Classification)
	for i, p := range res.Points {
		if p.AffectElevationOverride == nil {
			t.Fatalf("point %d: missing override", i)
		}
		if d := *p.AffectElevationOverride - want; d > 1e-12 || d < -1e-12 {
			t.Errorf("point %d (%s): override %f, want %f", i, p.Role, *p.AffectElevationOverride, want)
		}
	}
}

func TestBuild_LogsClassification(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	if err := logging.EnsureClassificationLog(db); err != nil {
		t.Fatalf("ensure log: %v", err)
	}

	b := NewBuilder(smallOptions())
	b.LogDB = db
	batch, err := b.BuildBatch(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM classification_log WHERE run_id = ?`, batch.RunID).Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 logged classifications, got %d", n)
	}
	var label, tier string
	if err := db.QueryRow(`SELECT label, tier FROM classification_log WHERE conversation_id = ?`, "tagged-volatile").Scan(&label, &tier); err != nil {
		t.Fatalf("read row: %v", err)
	}
	if label != "PeakVolatile_Pattern" || tier != string(cluster.TierMetadata) {
		t.Errorf("got label=%q tier=%q", label, tier)
	}
}

// #endregion build-tests

// #region batch-tests

func TestBuildBatch_OrderAndSummary(t *testing.T) {
	convs := loadFixture(t)
	batch, err := BuildBatch(context.Background(), convs, smallOptions())
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}
	if batch.RunID == "" {
		t.Error("expected run id")
	}
	if len(batch.Results) != len(convs) {
		t.Fatalf("expected %d results, got %d", len(convs), len(batch.Results))
	}
	for i, r := range batch.Results {
		if r.ID != convs[i].ID {
			t.Errorf("result %d: got id %q, want %q", i, r.ID, convs[i].ID)
		}
	}
	if batch.Density.Size != 16 {
		t.Errorf("density size: got %d", batch.Density.Size)
	}
	for _, v := range batch.Density.Cells {
		if v < 0 {
			t.Fatalf("negative density cell %f", v)
		}
	}

	s := batch.Summary
	if s.Conversations != 3 || s.Points != 9 || s.SkippedPoints != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
	var total int
	for _, n := range s.Clusters {
		total += n
	}
	if total != 3 {
		t.Errorf("cluster counts sum to %d, want 3", total)
	}
	if s.Tiers[cluster.TierMetadata] != 1 || s.Tiers[cluster.TierDefault] != 1 || s.Tiers[cluster.TierHeuristic] != 1 {
		t.Errorf("unexpected tier counts %v", s.Tiers)
	}
}

func TestBuildBatch_Empty(t *testing.T) {
	batch, err := BuildBatch(context.Background(), nil, smallOptions())
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}
	if len(batch.Results) != 0 || batch.Summary.Conversations != 0 {
		t.Errorf("expected empty batch, got %+v", batch.Summary)
	}
}

func TestBuildBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildBatch(ctx, loadFixture(t), smallOptions()); err == nil {
		t.Fatal("expected cancellation error")
	}
}

// #endregion batch-tests

// #region options-tests

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Terrain.Size = 32
	cfg.Terrain.MetricMode = "affect"
	cfg.Density.Source = "authority"
	cfg.Workers = 8
	opts := OptionsFromConfig(cfg)
	if opts.TerrainSize != 32 || opts.MetricMode != terrain.ModeAffect || opts.ElevationMode != affect.ModeAuthority || opts.Workers != 8 {
		t.Errorf("unexpected options %+v", opts)
	}
}

// #endregion options-tests
