package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

// ParseError reports a store file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse store %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var _ PairStore = (*FileStore)(nil)

type fileDocument struct {
	Pairs []model.PairIdentity `toml:"pairs"`
}

// FileStore keeps pair identities in a TOML file. The whole file is
// rewritten on every mutation; concurrent processes are not coordinated.
type FileStore struct {
	path      string
	logger    *zap.Logger
	recovered error

	mu    sync.Mutex
	pairs []model.PairIdentity
}

// OpenFileStore loads the store at path. A missing file is created empty.
// An unparseable file is deleted and recreated empty; the parse error is
// logged and kept for Recovered.
func OpenFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{path: path, logger: logger, pairs: []model.PairIdentity{}}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.save(); err != nil {
				return nil, err
			}
			logger.Debug("store created", zap.String("path", path))
			return s, nil
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("store path is a directory")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		parseErr := &ParseError{Path: path, Err: err}
		logger.Warn("store unreadable, recreating", zap.Error(parseErr))
		if err := os.Remove(path); err != nil {
			logger.Warn("remove corrupt store", zap.String("path", path), zap.Error(err))
		}
		if err := s.save(); err != nil {
			return nil, err
		}
		s.recovered = parseErr
		return s, nil
	}

	if doc.Pairs != nil {
		s.pairs = doc.Pairs
	}
	logger.Debug("store loaded", zap.String("path", path), zap.Int("pairs", len(s.pairs)))
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Recovered returns the parse error that caused the store to be recreated
// on open, or nil.
func (s *FileStore) Recovered() error {
	return s.recovered
}

func (s *FileStore) Exists(_ context.Context, pair model.PairIdentity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existsLocked(pair), nil
}

func (s *FileStore) existsLocked(pair model.PairIdentity) bool {
	for _, p := range s.pairs {
		if p.SameAs(pair) {
			return true
		}
	}
	return false
}

// FindByIdentifier returns the first record, in insertion order, whose token
// address, pair address, base symbol or quote symbol equals key.
func (s *FileStore) FindByIdentifier(_ context.Context, key string) (model.PairIdentity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pairs {
		if p.Matches(key) {
			return p, true, nil
		}
	}
	return model.PairIdentity{}, false, nil
}

// Append inserts pair unless a duplicate exists. Duplicates cause no write.
func (s *FileStore) Append(_ context.Context, pair model.PairIdentity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsLocked(pair) {
		return false, nil
	}
	s.pairs = append(s.pairs, pair)
	if err := s.save(); err != nil {
		s.pairs = s.pairs[:len(s.pairs)-1]
		return false, err
	}
	return true, nil
}

// Remove deletes every record that is a duplicate of pair and reports
// whether anything was removed. Nothing is written when no record matches.
func (s *FileStore) Remove(_ context.Context, pair model.PairIdentity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.PairIdentity, 0, len(s.pairs))
	for _, p := range s.pairs {
		if !p.SameAs(pair) {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(s.pairs) {
		return false, nil
	}

	previous := s.pairs
	s.pairs = kept
	if err := s.save(); err != nil {
		s.pairs = previous
		return false, err
	}
	return true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.pairs
	s.pairs = []model.PairIdentity{}
	if err := s.save(); err != nil {
		s.pairs = previous
		return err
	}
	return nil
}

func (s *FileStore) Pairs(_ context.Context) ([]model.PairIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PairIdentity, len(s.pairs))
	copy(out, s.pairs)
	return out, nil
}

func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	data, err := toml.Marshal(fileDocument{Pairs: s.pairs})
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write store tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}
