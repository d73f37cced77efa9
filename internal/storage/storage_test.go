package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/tukai/internal/model"
)

func testStat(wpm int, finished time.Time) model.Stat {
	return model.Stat{
		Duration:   model.Duration60s,
		AverageWPM: wpm,
		RawWPM:     wpm + 5,
		Accuracy:   95.5,
		FinishedAt: finished,
	}
}

func requireSameStats(t *testing.T, expected, actual []model.Stat) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.Equal(t, expected[i].Duration, actual[i].Duration)
		require.Equal(t, expected[i].AverageWPM, actual[i].AverageWPM)
		require.Equal(t, expected[i].RawWPM, actual[i].RawWPM)
		require.Equal(t, expected[i].Accuracy, actual[i].Accuracy)
		require.True(t, expected[i].FinishedAt.Equal(actual[i].FinishedAt), "finished_at mismatch at %d", i)
	}
}

func TestLoadMissingCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tukai.bin")

	st, err := Load(path)
	require.NoError(t, err)
	require.FileExists(t, path)

	rec := st.Record()
	require.Empty(t, rec.Stats)
	require.Equal(t, model.Duration60s, rec.TypingDuration)
	require.Equal(t, DefaultTheme, rec.ActiveTheme)
	require.False(t, rec.TransparentBackground)
	require.Equal(t, 0, rec.LanguageIndex)

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, rec, again.Record())
}

func TestLoadCorruptFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tukai.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xc1, 0xff, 0x00, 0x13}, 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultRecord(), st.Record())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultRecord(), reloaded.Record())
}

func TestLoadEmptyFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tukai.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultRecord(), st.Record())
}

func TestLoadInvalidRecordFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tukai.bin")
	bad := DefaultRecord()
	bad.TypingDuration = 42
	data, err := msgpack.Marshal(&bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, model.DefaultTypingDuration, st.Record().TypingDuration)
}

func TestAppendStatPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tukai.bin")
	st, err := Load(path)
	require.NoError(t, err)

	first := testStat(40, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	second := testStat(55, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, st.AppendStat(first))
	require.NoError(t, st.AppendStat(second))

	reloaded, err := Load(path)
	require.NoError(t, err)
	requireSameStats(t, []model.Stat{first, second}, reloaded.Stats())
}

func TestSettingsMutationsFlushImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tukai.bin")
	st, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, st.SetTypingDuration(model.Duration180s))
	require.NoError(t, st.SetTheme("goblin"))
	require.NoError(t, st.SetLanguageIndex(2))
	require.NoError(t, st.SetTransparentBackground(true))

	reloaded, err := Load(path)
	require.NoError(t, err)
	rec := reloaded.Record()
	require.Equal(t, model.Duration180s, rec.TypingDuration)
	require.Equal(t, "goblin", rec.ActiveTheme)
	require.Equal(t, 2, rec.LanguageIndex)
	require.True(t, rec.TransparentBackground)
}

func TestSettersRejectInvalidValues(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "tukai.bin"))
	require.NoError(t, err)

	require.Error(t, st.SetTypingDuration(model.TypingDuration(7)))
	require.Error(t, st.SetTheme(""))
	require.Error(t, st.SetLanguageIndex(-1))
	require.Equal(t, DefaultRecord(), st.Record())
}

func TestFlushErrorIsSurfaced(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st := &Store{path: filepath.Join(blocker, "tukai.bin"), record: DefaultRecord()}
	require.Error(t, st.Flush())
	require.Error(t, st.AppendStat(testStat(10, time.Now())))
	require.Len(t, st.Stats(), 1, "the in-memory record keeps the stat")
}

func TestLoadReportsUnwritableDefault(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st, err := Load(filepath.Join(blocker, "tukai.bin"))
	require.Error(t, err)
	require.NotNil(t, st)
	require.Equal(t, DefaultRecord(), st.Record())
}

func TestStatsReturnsCopy(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "tukai.bin"))
	require.NoError(t, err)
	require.NoError(t, st.AppendStat(testStat(30, time.Now())))

	stats := st.Stats()
	stats[0].AverageWPM = 999
	require.Equal(t, 30, st.Stats()[0].AverageWPM)
}
