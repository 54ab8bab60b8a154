package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
)

func sampleSnapshot(t *testing.T) center.Snapshot {
	t.Helper()
	r, err := attendance.NewRecord("s1", "2025-03-08", attendance.SlotSatDawn, attendance.StatusPresent, "05:42")
	require.NoError(t, err)

	return center.Snapshot{
		Students: []center.StudentSnapshot{
			{ID: "s1", Name: "أحمد", Group: "مجموعة الثانوي", JoinedAt: time.Now().UTC()},
		},
		Records: []attendance.Record{r},
		Profile: center.Profile{Name: "عبدالله", Title: center.TitleSupervisor, Mosque: "مسجد النور"},
	}
}

func TestStore_MissingFileIsFirstRun(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "siraj.json"), nil)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Students)
	assert.Empty(t, snap.Records)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siraj.json")
	s := NewStore(path, nil)
	want := sampleSnapshot(t)

	require.NoError(t, s.Save(context.Background(), want))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Students, 1)
	assert.Equal(t, "أحمد", got.Students[0].Name)
	require.Len(t, got.Records, 1)
	assert.Equal(t, attendance.StatusPresent, got.Records[0].Status)
	assert.Equal(t, want.Profile, got.Profile)
}

func TestStore_SaveOverwritesInFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siraj.json")
	s := NewStore(path, nil)

	require.NoError(t, s.Save(context.Background(), sampleSnapshot(t)))
	require.NoError(t, s.Save(context.Background(), center.Snapshot{}))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Students)
	assert.Empty(t, got.Records)

	// Временных файлов после записи не остаётся.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siraj.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path, nil)
	_, err := s.Load(context.Background())
	assert.Error(t, err)
}
