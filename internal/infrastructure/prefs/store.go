// Package prefs persists per-viewer table display preferences in a small
// JSON file, the service-side stand-in for what the browser used to keep in
// localStorage. Reads happen once per session mount, writes on change.
package prefs

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

var _ dashboard.PreferenceStore = (*Store)(nil)

// Store is a viper-backed key-value store keyed
// `<userID>.<table>.pageSize` / `<userID>.<table>.sort`. With an empty path
// it runs purely in memory (tests, ephemeral deployments). A missing or
// unreadable file degrades to empty defaults; it is never fatal.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
	log  *logger.Logger
}

// NewStore opens (or lazily creates) the preference file at path.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("prefs")

	v := viper.New()
	v.SetConfigType("json")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				log.Debug().Str("path", path).Msg("no preference file yet")
			} else {
				// Corrupt or unreadable: viewers fall back to defaults and
				// the next write replaces the file.
				log.Warn().Err(err).Str("path", path).Msg("preference file unreadable, starting empty")
				v = viper.New()
				v.SetConfigType("json")
				v.SetConfigFile(path)
			}
		}
	}
	return &Store{v: v, path: path, log: log}
}

func key(userID int64, table, field string) string {
	return fmt.Sprintf("%d.%s.%s", userID, table, field)
}

// PageSize returns the stored page size for one viewer and table.
func (s *Store) PageSize(userID int64, table string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID, table, "pageSize")
	if !s.v.IsSet(k) {
		return 0, false
	}
	size := s.v.GetInt(k)
	return size, size > 0
}

// Sort returns the stored column sort for one viewer and table.
func (s *Store) Sort(userID int64, table string) (dto.SortSpec, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.v.GetStringMapString(key(userID, table, "sort"))
	if m["by"] == "" {
		return dto.SortSpec{}, false
	}
	return dto.SortSpec{By: m["by"], Order: m["order"]}, true
}

// SetPageSize stores and flushes a page size.
func (s *Store) SetPageSize(userID int64, table string, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(key(userID, table, "pageSize"), size)
	return s.flushLocked()
}

// SetSort stores and flushes a column sort.
func (s *Store) SetSort(userID int64, table string, sort dto.SortSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(key(userID, table, "sort"), map[string]string{
		"by":    sort.By,
		"order": sort.Order,
	})
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}
