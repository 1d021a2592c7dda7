package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound means no record exists under the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists means a create hit a key that is already taken.
	ErrAlreadyExists = errors.New("record already exists")
)

// BadKeyError reports a collection or id that failed sanitation before
// any filesystem access.
type BadKeyError struct {
	Key string
}

func (e BadKeyError) Error() string {
	return fmt.Sprintf("invalid record key %q", e.Key)
}

// Store persists JSON documents as one file per record, one directory
// per collection, under a base data directory. It is single-writer by
// design: the only cross-process guarantee is that Create is exclusive.
type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir. The directory is created if
// missing.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Create writes doc to a new record. It fails with ErrAlreadyExists if
// the key is taken; the file is fully written and closed before Create
// returns.
func (s *Store) Create(collection, id string, doc any) error {
	path, err := s.recordPath(collection, id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create collection dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create record: %w", err)
	}

	if err := writeAndClose(f, doc); err != nil {
		// The half-written file must not shadow a future create.
		os.Remove(path)
		return err
	}
	return nil
}

// Read loads the record into out, which must be a pointer.
func (s *Store) Read(collection, id string, out any) error {
	path, err := s.recordPath(collection, id)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update replaces an existing record with doc in its entirety. Callers
// own the read-modify-write cycle; there is no merging and no version
// check.
func (s *Store) Update(collection, id string, doc any) error {
	path, err := s.recordPath(collection, id)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("open record for update: %w", err)
	}
	return writeAndClose(f, doc)
}

// Delete removes the record. It fails with ErrNotFound if absent.
func (s *Store) Delete(collection, id string) error {
	path, err := s.recordPath(collection, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// List returns the ids of every record in the collection, in no
// particular order. A missing or empty collection yields an empty
// slice.
func (s *Store) List(collection string) ([]string, error) {
	if !safeKey(collection) {
		return nil, BadKeyError{Key: collection}
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list collection: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func (s *Store) recordPath(collection, id string) (string, error) {
	if !safeKey(collection) {
		return "", BadKeyError{Key: collection}
	}
	if !safeKey(id) {
		return "", BadKeyError{Key: id}
	}
	return filepath.Join(s.baseDir, collection, id+".json"), nil
}

func writeAndClose(f *os.File, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		f.Close()
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close record: %w", err)
	}
	return nil
}

// safeKey restricts keys to characters that cannot escape the
// collection directory. Ids map 1:1 to filenames, so anything outside
// this set is a path-traversal risk, not just bad input.
func safeKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '@' || r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
