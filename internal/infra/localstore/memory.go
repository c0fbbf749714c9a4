package localstore

import (
	"context"
	"sync"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/history"
)

// Memory is an in-process history.Store for tests and ephemeral runs.
type Memory struct {
	mu sync.Mutex
	m  map[contracts.ContractID]history.ContractHistory
}

func NewMemory() *Memory {
	return &Memory{m: map[contracts.ContractID]history.ContractHistory{}}
}

func (s *Memory) Previous(ctx context.Context, id contracts.ContractID) (*history.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.m[id]
	if !ok || len(h.Analyses) == 0 {
		return nil, nil
	}
	last := h.Analyses[len(h.Analyses)-1]
	return &last, nil
}

func (s *Memory) Record(ctx context.Context, id contracts.ContractID, displayName string, snap history.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.m[id]
	h.FileName = displayName
	h.Append(snap)
	s.m[id] = h
	return nil
}

func (s *Memory) History(ctx context.Context, id contracts.ContractID) ([]history.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	out := make([]history.Snapshot, len(h.Analyses))
	copy(out, h.Analyses)
	return out, nil
}

func (s *Memory) All(ctx context.Context) (map[contracts.ContractID]history.ContractHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[contracts.ContractID]history.ContractHistory, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

func (s *Memory) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = map[contracts.ContractID]history.ContractHistory{}
	return nil
}
