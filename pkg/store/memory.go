package store

import (
	"context"
	"sync"
)

// Memory is an in-memory store, used in development and in tests. It
// satisfies both UserStore and GameStore.
type Memory struct {
	defaultChips int

	mu    sync.Mutex
	chips map[string]int
	hands []*HandRecord
}

// NewMemory returns an in-memory store where every unknown player buys
// in with defaultChips
func NewMemory(defaultChips int) *Memory {
	return &Memory{
		defaultChips: defaultChips,
		chips:        make(map[string]int),
	}
}

// SetChips pins a player's buy-in
func (m *Memory) SetChips(playerID string, chips int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chips[playerID] = chips
}

// StartingChips implements UserStore
func (m *Memory) StartingChips(_ context.Context, playerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if chips, ok := m.chips[playerID]; ok {
		return chips, nil
	}

	return m.defaultChips, nil
}

// RecordHand implements GameStore
func (m *Memory) RecordHand(_ context.Context, record *HandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hands = append(m.hands, record)
	return nil
}

// Hands returns the recorded hands, oldest first
func (m *Memory) Hands() []*HandRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	hands := make([]*HandRecord, len(m.hands))
	copy(hands, m.hands)
	return hands
}
