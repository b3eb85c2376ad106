package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate_WeightSumMustBeOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Semantic = 0.50
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWeights)
}

func TestConfig_Validate_WeightsMustBePositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Exact = 0
	cfg.Weights.Fuzzy = 0.45
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWeights)
}

func TestConfig_Validate_ThresholdOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.Medium = 0.70
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidThresholds)
}

func TestConfig_Validate_FloorRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FuzzyFloor = 1.2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFloor)
}

func TestConfig_Validate_MaxResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidMaxResults)
}

func TestThresholds_Level(t *testing.T) {
	thresholds := DefaultConfig().Thresholds
	assert.Equal(t, LevelHigh, thresholds.Level(0.65), "high boundary is inclusive")
	assert.Equal(t, LevelHigh, thresholds.Level(0.90))
	assert.Equal(t, LevelMedium, thresholds.Level(0.64))
	assert.Equal(t, LevelMedium, thresholds.Level(0.40))
	assert.Equal(t, LevelLow, thresholds.Level(0.39))
	assert.Equal(t, LevelLow, thresholds.Level(0.20))
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	doc := "weights:\n  exact: 0.30\n  fuzzy: 0.15\nmax_results: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, cfg.Weights.Exact, 1e-9)
	assert.InDelta(t, 0.15, cfg.Weights.Fuzzy, 1e-9)
	assert.InDelta(t, 0.35, cfg.Weights.Semantic, 1e-9, "untouched weights keep defaults")
	assert.Equal(t, 5, cfg.MaxResults)
	assert.NotEmpty(t, cfg.Synonyms, "tables keep defaults when absent from the file")
	assert.NotEmpty(t, cfg.Intents)
}

func TestLoadConfig_ReplacesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	doc := "synonyms:\n" +
		"  - head: churn\n" +
		"    synonyms: [attrition, turnover]\n" +
		"intents:\n" +
		"  - name: retention\n" +
		"    keywords: [churn, retain]\n" +
		"    categories: [Loyalty]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Synonyms, 1, "a synonyms section replaces the default table")
	assert.Equal(t, "churn", cfg.Synonyms[0].Head)
	require.Len(t, cfg.Intents, 1)
	assert.Equal(t, []string{"Loyalty"}, cfg.Intents[0].Categories)
}

func TestLoadConfig_RejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  semantic: 0.90\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWeights_For(t *testing.T) {
	weights := DefaultConfig().Weights
	assert.Equal(t, 0.20, weights.For(LayerExact))
	assert.Equal(t, 0.25, weights.For(LayerFuzzy))
	assert.Equal(t, 0.35, weights.For(LayerSemantic))
	assert.Equal(t, 0.15, weights.For(LayerDomain))
	assert.Equal(t, 0.05, weights.For(LayerIntent))
}
