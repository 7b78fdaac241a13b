package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawcast/domain/candidate"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2026-02-03", cfg.Prediction.TargetDate.Format("2006-01-02"))
	assert.Equal(t, candidate.Gaps{5, 2, 11, 10}, cfg.Prediction.Gaps)
	assert.Equal(t, 50, cfg.Prediction.MainMax)
	assert.Equal(t, 12, cfg.Prediction.StarMax)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Friday}, cfg.Prediction.Weekdays)
	assert.False(t, cfg.Refine.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TARGET_DATE", "2026-06-12")
	t.Setenv("DIST_P1_P2", "3")
	t.Setenv("MAIN_MAX", "40")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2026-06-12", cfg.Prediction.TargetDate.Format("2006-01-02"))
	assert.Equal(t, candidate.Gaps{3, 2, 11, 10}, cfg.Prediction.Gaps)
	assert.Equal(t, 40, cfg.Prediction.MainMax)
}

func TestLoad_BadTargetDate(t *testing.T) {
	t.Setenv("TARGET_DATE", "03/02/2026")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_RangeTooNarrow(t *testing.T) {
	t.Setenv("MAIN_MAX", "28") // gap span is exactly 28, leaving no room for P1

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_RefinementNeedsKey(t *testing.T) {
	t.Setenv("USE_REFINEMENT", "true")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Refine.Enabled)
}

func TestApplyFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawcast.yaml")
	content := "target_date: 2026-03-06\ngaps: [4, 3, 9, 8]\nmain_max: 45\ndata_file: history.xlsx\nrefine: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, "2026-03-06", cfg.Prediction.TargetDate.Format("2006-01-02"))
	assert.Equal(t, candidate.Gaps{4, 3, 9, 8}, cfg.Prediction.Gaps)
	assert.Equal(t, 45, cfg.Prediction.MainMax)
	assert.Equal(t, "history.xlsx", cfg.Source.DataFile)
}

func TestApplyFile_RejectsWrongGapCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gaps: [1, 2]\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Error(t, cfg.ApplyFile(path))
}
