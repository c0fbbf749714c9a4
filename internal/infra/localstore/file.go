package localstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/history"
)

// File is a history.Store backed by a single namespaced JSON document on
// disk, the durable analog of browser local storage. A missing or corrupt
// file reads as an empty mapping; it is recreated on the next write.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) load() map[contracts.ContractID]history.ContractHistory {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return map[contracts.ContractID]history.ContractHistory{}
	}
	var m map[contracts.ContractID]history.ContractHistory
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[contracts.ContractID]history.ContractHistory{}
	}
	return m
}

func (f *File) save(m map[contracts.ContractID]history.ContractHistory) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}

func (f *File) Previous(ctx context.Context, id contracts.ContractID) (*history.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.load()[id]
	if !ok || len(h.Analyses) == 0 {
		return nil, nil
	}
	last := h.Analyses[len(h.Analyses)-1]
	return &last, nil
}

func (f *File) Record(ctx context.Context, id contracts.ContractID, displayName string, snap history.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.load()
	h := m[id]
	h.FileName = displayName
	h.Append(snap)
	m[id] = h
	return f.save(m)
}

func (f *File) History(ctx context.Context, id contracts.ContractID) ([]history.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, ok := f.load()[id]
	if !ok {
		return nil, nil
	}
	out := make([]history.Snapshot, len(h.Analyses))
	copy(out, h.Analyses)
	return out, nil
}

func (f *File) All(ctx context.Context) (map[contracts.ContractID]history.ContractHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(), nil
}

func (f *File) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
