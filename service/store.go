package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"contractgen/model"
)

// Store abstracts the contract document so tests can substitute an in-memory
// implementation. Load must treat a missing or unreadable document as "no
// data yet" and return an empty list; Save overwrites the whole document.
type Store interface {
	Load() ([]model.Contract, error)
	Save(contracts []model.Contract) error
}

// dataFile is the persisted document layout: a single JSON object holding the
// ordered contract list.
type dataFile struct {
	Contracts []model.Contract `json:"contracts"`
}

// FileStore persists contracts as one JSON document on local disk.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document and returns the contract list in stored order.
// A missing or malformed document yields an empty list, never an error.
func (s *FileStore) Load() ([]model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("contract data file unreadable, starting empty", "path", s.path, "error", err)
		}
		return []model.Contract{}, nil
	}

	var doc dataFile
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("contract data file corrupt, starting empty", "path", s.path, "error", err)
		return []model.Contract{}, nil
	}

	if doc.Contracts == nil {
		return []model.Contract{}, nil
	}
	return doc.Contracts, nil
}

// Save overwrites the document atomically: the new content is written to a
// temp file in the same directory and renamed over the old document, so a
// crashed write never leaves a half-written file behind.
func (s *FileStore) Save(contracts []model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(dataFile{Contracts: contracts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contracts: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".contracts-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}

// MemoryStore is an in-memory Store used by tests and available as a
// non-persistent backend.
type MemoryStore struct {
	mu        sync.RWMutex
	contracts []model.Contract

	// FailSave forces Save to return an error, for storage failure tests.
	FailSave bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{contracts: []model.Contract{}}
}

func (s *MemoryStore) Load() ([]model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Contract, len(s.contracts))
	copy(out, s.contracts)
	return out, nil
}

func (s *MemoryStore) Save(contracts []model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave {
		return fmt.Errorf("memory store: save disabled")
	}

	s.contracts = make([]model.Contract, len(contracts))
	copy(s.contracts, contracts)
	return nil
}
