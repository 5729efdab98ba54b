package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/page-comments-api/internal/kvstore"
)

// Clock is a manually advanced time source shared by mocks and services
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type kvEntry struct {
	value     string
	expiresAt time.Time
}

// KVPut records a single Put call
type KVPut struct {
	Key   string
	Value string
	TTL   time.Duration
}

// MockKVStore is an in-memory kvstore.Store honouring TTLs against a Clock
type MockKVStore struct {
	mu      sync.Mutex
	clock   *Clock
	entries map[string]kvEntry

	Puts    []KVPut
	GetErr  error
	PutErr  error
	PingErr error
}

// Verify interface compliance
var _ kvstore.Store = (*MockKVStore)(nil)

func NewMockKVStore(clock *Clock) *MockKVStore {
	return &MockKVStore{
		clock:   clock,
		entries: make(map[string]kvEntry),
	}
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	e, ok := m.entries[key]
	if !ok || !m.clock.Now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MockKVStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Puts = append(m.Puts, KVPut{Key: key, Value: value, TTL: ttl})
	m.entries[key] = kvEntry{value: value, expiresAt: m.clock.Now().Add(ttl)}
	return nil
}

func (m *MockKVStore) Ping(ctx context.Context) error {
	return m.PingErr
}

// PutCount returns how many writes the store has accepted
func (m *MockKVStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Puts)
}
