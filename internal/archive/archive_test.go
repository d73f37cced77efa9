package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tukai/internal/model"
)

func sampleRecord() model.Record {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return model.Record{
		Stats: []model.Stat{
			{Duration: model.Duration30s, AverageWPM: 40, RawWPM: 44, Accuracy: 91.5, FinishedAt: base},
			{Duration: model.Duration60s, AverageWPM: 52, RawWPM: 55, Accuracy: 96.0, FinishedAt: base.Add(time.Hour)},
			{Duration: model.Duration30s, AverageWPM: 47, RawWPM: 50, Accuracy: 93.25, FinishedAt: base.Add(48 * time.Hour)},
		},
		TypingDuration:        model.Duration30s,
		ActiveTheme:           "rust",
		TransparentBackground: true,
		LanguageIndex:         1,
	}
}

func openTemp(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestExportAndList(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	rec := sampleRecord()
	require.NoError(t, a.Export(ctx, rec))

	got, err := a.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range rec.Stats {
		require.Equal(t, rec.Stats[i].AverageWPM, got[i].AverageWPM)
		require.Equal(t, rec.Stats[i].Duration, got[i].Duration)
		require.Equal(t, rec.Stats[i].Accuracy, got[i].Accuracy)
		require.True(t, rec.Stats[i].FinishedAt.Equal(got[i].FinishedAt))
	}

	theme, err := a.Setting(ctx, "active_theme")
	require.NoError(t, err)
	require.Equal(t, "rust", theme)
	dur, err := a.Setting(ctx, "typing_duration")
	require.NoError(t, err)
	require.Equal(t, "30s", dur)
}

func TestExportReplacesPreviousContent(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	require.NoError(t, a.Export(ctx, sampleRecord()))

	rec := sampleRecord()
	rec.Stats = rec.Stats[:1]
	rec.ActiveTheme = "goblin"
	require.NoError(t, a.Export(ctx, rec))

	got, err := a.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	theme, err := a.Setting(ctx, "active_theme")
	require.NoError(t, err)
	require.Equal(t, "goblin", theme)
}

func TestListSessionsFilters(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	rec := sampleRecord()
	require.NoError(t, a.Export(ctx, rec))

	got, err := a.ListSessions(ctx, model.StatsConfig{Duration: model.Duration30s})
	require.NoError(t, err)
	require.Len(t, got, 2)

	since := rec.Stats[0].FinishedAt.Add(30 * time.Minute)
	got, err = a.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 52, got[0].AverageWPM)

	got, err = a.ListSessions(ctx, model.StatsConfig{Last: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 47, got[0].AverageWPM)
}

func TestExportEmptyHistory(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()
	rec := sampleRecord()
	rec.Stats = nil
	require.NoError(t, a.Export(ctx, rec))

	got, err := a.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestExportTagsEachRun(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	require.NoError(t, a.Export(ctx, sampleRecord()))
	first, err := a.Setting(ctx, ExportIDKey)
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	require.NoError(t, a.Export(ctx, sampleRecord()))
	second, err := a.Setting(ctx, ExportIDKey)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
