package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Well-known keys
const (
	KeyCPUFreqMHz         = "cpu_freq_mhz"
	KeyDisplayBrightness  = "display_brightness"
	KeyKeyboardBrightness = "keyboard_brightness"
)

// Defaults returns a fresh copy of the built-in values
func Defaults() map[string]any {
	return map[string]any{
		KeyCPUFreqMHz:         150,
		KeyDisplayBrightness:  255,
		KeyKeyboardBrightness: 80,
	}
}

// Store holds settings in memory and persists them on Save
type Store struct {
	path   string
	codec  codec
	logger *zap.Logger

	mu     sync.RWMutex
	values map[string]any
	dirty  bool
}

// New creates a store backed by path. Call Load to read it.
func New(path string, logger *zap.Logger) (*Store, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, codec: c, logger: logger, values: Defaults()}, nil
}

// NewMemory creates a store that is never persisted
func NewMemory() *Store {
	return &Store{logger: zap.NewNop(), values: Defaults()}
}

// Path returns the backing file, empty for a memory store
func (s *Store) Path() string {
	return s.path
}

// Load replaces the values with the file's contents layered over the
// defaults. A missing file leaves the defaults in place.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("Settings file not found, using defaults", zap.String("path", s.path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	loaded := make(map[string]any)
	if err := s.codec.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decode settings %s: %w", s.path, err)
	}

	values := Defaults()
	for k, v := range loaded {
		values[k] = v
	}

	s.mu.Lock()
	s.values = values
	s.dirty = false
	s.mu.Unlock()

	s.logger.Info("Settings loaded", zap.String("path", s.path), zap.Int("keys", len(loaded)))
	return nil
}

// Save writes the values if anything changed since the last Load or Save
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	if !s.dirty {
		s.mu.RUnlock()
		return nil
	}
	data, err := s.codec.Marshal(s.values)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	s.logger.Debug("Settings saved", zap.String("path", s.path), zap.String("format", s.codec.Name()))
	return nil
}

// Get returns the raw value for key
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Int returns key as an int, or def when missing or not numeric
func (s *Store) Int(key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

// Set stores value under key
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.dirty = true
}

// Reset restores the defaults
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = Defaults()
	s.dirty = true
}

// All returns a copy of every value
func (s *Store) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns every key in sorted order
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toInt normalizes the numeric types the decoders produce
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
