// Package memory is an in-process backing store. Items live in a slot
// arena with a parent index; each transaction works on a private copy that
// replaces the live state on commit.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	models "yadisk/internal/domain/models/disk"
	"yadisk/internal/domain/repositories"
	"yadisk/internal/metrics"
)

// arena holds items by slot. Freed slots are reused by later inserts.
type arena struct {
	nodes    []models.Item
	slot     map[string]int
	children map[string]map[string]struct{}
	free     []int
	history  map[string][]models.HistoryEntry
}

func newArena() *arena {
	return &arena{
		slot:     make(map[string]int),
		children: make(map[string]map[string]struct{}),
		history:  make(map[string][]models.HistoryEntry),
	}
}

func (a *arena) clone() *arena {
	c := &arena{
		nodes:    append([]models.Item(nil), a.nodes...),
		slot:     make(map[string]int, len(a.slot)),
		children: make(map[string]map[string]struct{}, len(a.children)),
		free:     append([]int(nil), a.free...),
		history:  make(map[string][]models.HistoryEntry, len(a.history)),
	}
	for id, i := range a.slot {
		c.slot[id] = i
	}
	for parent, kids := range a.children {
		set := make(map[string]struct{}, len(kids))
		for id := range kids {
			set[id] = struct{}{}
		}
		c.children[parent] = set
	}
	for id, entries := range a.history {
		c.history[id] = append([]models.HistoryEntry(nil), entries...)
	}
	return c
}

func (a *arena) get(id string) (*models.Item, bool) {
	i, ok := a.slot[id]
	if !ok {
		return nil, false
	}
	return &a.nodes[i], true
}

func (a *arena) put(item models.Item) {
	if i, ok := a.slot[item.ID]; ok {
		old := a.nodes[i]
		if old.ParentID != nil {
			a.unlink(*old.ParentID, item.ID)
		}
		a.nodes[i] = item
	} else {
		var i int
		if n := len(a.free); n > 0 {
			i = a.free[n-1]
			a.free = a.free[:n-1]
			a.nodes[i] = item
		} else {
			i = len(a.nodes)
			a.nodes = append(a.nodes, item)
		}
		a.slot[item.ID] = i
	}

	if item.ParentID != nil {
		kids, ok := a.children[*item.ParentID]
		if !ok {
			kids = make(map[string]struct{})
			a.children[*item.ParentID] = kids
		}
		kids[item.ID] = struct{}{}
	}
}

func (a *arena) remove(id string) {
	i, ok := a.slot[id]
	if !ok {
		return
	}
	if parent := a.nodes[i].ParentID; parent != nil {
		a.unlink(*parent, id)
	}
	delete(a.slot, id)
	a.nodes[i] = models.Item{}
	a.free = append(a.free, i)
}

func (a *arena) unlink(parentID, id string) {
	kids := a.children[parentID]
	delete(kids, id)
	if len(kids) == 0 {
		delete(a.children, parentID)
	}
}

// Store owns the committed arena.
type Store struct {
	mu    sync.RWMutex
	state *arena
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newArena()}
}

// TransactionManager implements repositories.TransactionManager over a Store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx runs fn against a private copy of the arena. Transactions are
// serialized; the copy becomes the live state only when fn returns nil.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := repositories.TxFrom[*arena](ctx); ok {
		return fn(ctx)
	}

	start := time.Now()
	err := tm.exec(ctx, fn)
	metrics.RecordTx("memory", time.Since(start), err == nil)
	return err
}

func (tm *TransactionManager) exec(ctx context.Context, fn repositories.TxFn) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	work := tm.store.state.clone()
	if err := fn(repositories.WithTx(ctx, work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	tm.store.state = work
	return nil
}

// Ping always succeeds for the in-process store
func (tm *TransactionManager) Ping(ctx context.Context) error {
	return nil
}

// read runs fn against the transaction arena or, outside a transaction,
// the committed state under a read lock.
func (s *Store) read(ctx context.Context, fn func(*arena) error) error {
	if a, ok := repositories.TxFrom[*arena](ctx); ok {
		return fn(a)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write runs fn against the transaction arena or, outside a transaction,
// as its own single-statement transaction.
func (s *Store) write(ctx context.Context, fn func(*arena) error) error {
	if a, ok := repositories.TxFrom[*arena](ctx); ok {
		return fn(a)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.state = work
	return nil
}
