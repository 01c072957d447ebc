package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/infrastructure/prefs"
)

func TestStore_RoundTripAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := prefs.NewStore(path, nil)
	require.NoError(t, s.SetPageSize(7, dashboard.TableCouncilInv, 25))
	require.NoError(t, s.SetSort(7, dashboard.TableCouncilLedger, dto.SortSpec{By: "transactionDate", Order: "desc"}))

	// A fresh store over the same file sees the persisted values.
	s2 := prefs.NewStore(path, nil)
	size, ok := s2.PageSize(7, dashboard.TableCouncilInv)
	require.True(t, ok)
	assert.Equal(t, 25, size)

	sort, ok := s2.Sort(7, dashboard.TableCouncilLedger)
	require.True(t, ok)
	assert.Equal(t, dto.SortSpec{By: "transactionDate", Order: "desc"}, sort)
}

func TestStore_ViewersDoNotShareEntries(t *testing.T) {
	s := prefs.NewStore("", nil)
	require.NoError(t, s.SetPageSize(7, dashboard.TableCouncilInv, 25))

	_, ok := s.PageSize(8, dashboard.TableCouncilInv)
	assert.False(t, ok)
	_, ok = s.PageSize(7, dashboard.TableCouncilLedger)
	assert.False(t, ok)
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "prefs.json")

	s := prefs.NewStore(path, nil)
	_, ok := s.PageSize(1, dashboard.TableCouncilInv)
	assert.False(t, ok)
	_, ok = s.Sort(1, dashboard.TableCouncilInv)
	assert.False(t, ok)
}

func TestStore_InMemoryWithoutPath(t *testing.T) {
	s := prefs.NewStore("", nil)

	require.NoError(t, s.SetPageSize(3, dashboard.TableCouncilLedger, 100))
	size, ok := s.PageSize(3, dashboard.TableCouncilLedger)
	require.True(t, ok)
	assert.Equal(t, 100, size)
}

func TestStore_CorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := prefs.NewStore(path, nil)
	_, ok := s.PageSize(7, dashboard.TableCouncilInv)
	assert.False(t, ok, "corrupt file reads as empty")

	// The next write replaces the corrupt file with a valid one.
	require.NoError(t, s.SetPageSize(7, dashboard.TableCouncilInv, 10))
	s2 := prefs.NewStore(path, nil)
	size, ok := s2.PageSize(7, dashboard.TableCouncilInv)
	require.True(t, ok)
	assert.Equal(t, 10, size)
}
