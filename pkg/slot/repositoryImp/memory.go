package repositoryImp

import (
	"context"
	"fmt"
	"sync"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/slot/repository"
)

// Memory is a process-local slot. It is exported so tests can inject write failures.
type Memory struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut error
}

var _ repository.SlotRepository = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{data: map[string][]byte{}} }

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("slot %q: %w", key, apperr.ErrSlotEmpty)
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// SetFailPut makes every following Put return err until called with nil.
func (m *Memory) SetFailPut(err error) {
	m.mu.Lock()
	m.failPut = err
	m.mu.Unlock()
}
