package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/commandhandler/infra/repository"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/google/uuid"
)

type cacheEntry struct {
	creation  *command.CreationOutcome
	transfer  *command.TransferOutcome
	expiresAt time.Time
}

// MemoryOutcomeCache is an in-process outcome cache with a fixed TTL.
type MemoryOutcomeCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryOutcomeCache creates a cache whose entries live for ttl.
func NewMemoryOutcomeCache(ttl time.Duration) *MemoryOutcomeCache {
	return &MemoryOutcomeCache{
		entries: make(map[uuid.UUID]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryOutcomeCache) lookup(id uuid.UUID) *cacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	if !ok || c.now().After(entry.expiresAt) {
		return nil
	}
	return entry
}

func (c *MemoryOutcomeCache) GetCreation(_ context.Context, commandID uuid.UUID) (*command.CreationOutcome, bool) {
	entry := c.lookup(commandID)
	if entry == nil || entry.creation == nil {
		return nil, false
	}
	o := *entry.creation
	return &o, true
}

func (c *MemoryOutcomeCache) SetCreation(_ context.Context, outcome *command.CreationOutcome) {
	o := *outcome
	c.store(outcome.CommandID, &cacheEntry{creation: &o})
}

func (c *MemoryOutcomeCache) GetTransfer(_ context.Context, commandID uuid.UUID) (*command.TransferOutcome, bool) {
	entry := c.lookup(commandID)
	if entry == nil || entry.transfer == nil {
		return nil, false
	}
	o := *entry.transfer
	return &o, true
}

func (c *MemoryOutcomeCache) SetTransfer(_ context.Context, outcome *command.TransferOutcome) {
	o := *outcome
	c.store(outcome.CommandID, &cacheEntry{transfer: &o})
}

func (c *MemoryOutcomeCache) store(id uuid.UUID, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	entry.expiresAt = now.Add(c.ttl)
	c.entries[id] = entry
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

var _ repository.OutcomeCache = (*MemoryOutcomeCache)(nil)
