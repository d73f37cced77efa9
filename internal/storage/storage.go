// Package storage persists the session history and user settings as a single binary blob.
//
// A missing, unreadable, undecodable or invalid file is replaced by a default record.
// Startup never fails because of corrupt state.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/tukai/internal/model"
)

// DefaultTheme is the theme id used for fresh records.
const DefaultTheme = "iced"

var validate = validator.New()

// Store owns the persisted record and its file.
type Store struct {
	path   string
	record model.Record
}

// DefaultRecord returns the record used when nothing valid is on disk.
func DefaultRecord() model.Record {
	return model.Record{
		Stats:                 []model.Stat{},
		TypingDuration:        model.DefaultTypingDuration,
		ActiveTheme:           DefaultTheme,
		TransparentBackground: false,
		LanguageIndex:         0,
	}
}

// Load reads the record at path, falling back to a freshly persisted default.
// The returned store is always usable; a non-nil error means the default could not be written.
func Load(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("record path is empty")
	}
	s := &Store{path: path}
	record, ok := readRecord(path)
	if ok {
		s.record = record
		return s, nil
	}
	s.record = DefaultRecord()
	if err := s.Flush(); err != nil {
		return s, fmt.Errorf("failed to write default record: %w", err)
	}
	return s, nil
}

func readRecord(path string) (model.Record, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return model.Record{}, false
	}
	var record model.Record
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&record); err != nil {
		return model.Record{}, false
	}
	if err := validate.Struct(record); err != nil {
		return model.Record{}, false
	}
	if record.Stats == nil {
		record.Stats = []model.Stat{}
	}
	for i := range record.Stats {
		record.Stats[i].FinishedAt = record.Stats[i].FinishedAt.UTC()
	}
	return record, true
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Record returns a copy of the current record.
func (s *Store) Record() model.Record {
	out := s.record
	out.Stats = s.Stats()
	return out
}

// Stats returns a copy of the history in chronological order.
func (s *Store) Stats() []model.Stat {
	out := make([]model.Stat, len(s.record.Stats))
	copy(out, s.record.Stats)
	return out
}

// StatCount returns the number of recorded sessions.
func (s *Store) StatCount() int {
	return len(s.record.Stats)
}

// TypingDuration returns the selected session length.
func (s *Store) TypingDuration() model.TypingDuration {
	return s.record.TypingDuration
}

// ActiveTheme returns the selected theme id.
func (s *Store) ActiveTheme() string {
	return s.record.ActiveTheme
}

// LanguageIndex returns the selected language position.
func (s *Store) LanguageIndex() int {
	return s.record.LanguageIndex
}

// TransparentBackground reports whether the background is left to the terminal.
func (s *Store) TransparentBackground() bool {
	return s.record.TransparentBackground
}

// AppendStat adds a finished session and flushes.
func (s *Store) AppendStat(stat model.Stat) error {
	s.record.Stats = append(s.record.Stats, stat)
	return s.Flush()
}

// SetTypingDuration updates the duration setting and flushes.
func (s *Store) SetTypingDuration(d model.TypingDuration) error {
	if !d.Valid() {
		return fmt.Errorf("unsupported duration %d", int(d))
	}
	s.record.TypingDuration = d
	return s.Flush()
}

// SetTheme updates the active theme id and flushes.
func (s *Store) SetTheme(id string) error {
	if id == "" {
		return fmt.Errorf("theme id is empty")
	}
	s.record.ActiveTheme = id
	return s.Flush()
}

// SetLanguageIndex updates the selected language and flushes.
func (s *Store) SetLanguageIndex(idx int) error {
	if idx < 0 {
		return fmt.Errorf("language index must be >= 0")
	}
	s.record.LanguageIndex = idx
	return s.Flush()
}

// SetTransparentBackground updates the background flag and flushes.
func (s *Store) SetTransparentBackground(transparent bool) error {
	s.record.TransparentBackground = transparent
	return s.Flush()
}

// Flush serializes the whole record and atomically replaces the file.
func (s *Store) Flush() error {
	data, err := msgpack.Marshal(&s.record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create record dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "record-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync record: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close record: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace record: %w", err)
	}
	return nil
}
