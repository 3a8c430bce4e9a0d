// Package store holds the local records the relay keeps about transactions
// and providers. The in-memory implementations are the system of record for
// this deployment; the interfaces keep call sites compatible with a durable
// backend.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/migishaone/xenovaPay/internal/domain"
)

// TransactionStore owns transaction records. The orchestrator is the only
// writer of transaction status. Records are never deleted.
type TransactionStore interface {
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, id string, update domain.TransactionUpdate) (*domain.Transaction, error)
	ListAll(ctx context.Context) ([]*domain.Transaction, error)
	ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error)
}

// MemoryTransactionStore keeps records in a map. The mutex only makes map
// access safe; two writers racing to set status still finish in whichever
// order their Update calls land, which is the accepted last-write-wins
// behavior.
type MemoryTransactionStore struct {
	mu  sync.RWMutex
	txs map[string]*domain.Transaction
	now func() time.Time
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		txs: make(map[string]*domain.Transaction),
		now: time.Now,
	}
}

func (s *MemoryTransactionStore) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[id]
	if !ok {
		return nil, domain.NewTransactionNotFoundError(id)
	}
	cp := *tx
	return &cp, nil
}

func (s *MemoryTransactionStore) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" {
		return nil, domain.NewMissingRequiredFieldError("id")
	}
	if !tx.Type.Valid() {
		return nil, domain.NewMissingRequiredFieldError("type")
	}
	if !tx.Status.Valid() {
		return nil, domain.NewMissingRequiredFieldError("status")
	}
	if tx.Amount == "" {
		return nil, domain.NewMissingRequiredFieldError("amount")
	}
	if tx.Currency == "" {
		return nil, domain.NewMissingRequiredFieldError("currency")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[tx.ID]; ok {
		return nil, domain.NewDuplicateTransactionError(tx.ID)
	}

	cp := *tx
	now := s.now()
	cp.Created = now
	cp.Updated = now
	s.txs[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemoryTransactionStore) Update(ctx context.Context, id string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return nil, domain.NewTransactionNotFoundError(id)
	}

	update.Apply(tx)
	tx.Updated = s.now()

	cp := *tx
	return &cp, nil
}

func (s *MemoryTransactionStore) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(*domain.Transaction) bool { return true }), nil
}

func (s *MemoryTransactionStore) ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(tx *domain.Transaction) bool { return tx.Type == txType }), nil
}

// snapshot copies matching records, newest first. Callers hold the lock.
func (s *MemoryTransactionStore) snapshot(match func(*domain.Transaction) bool) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		if match(tx) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID > out[j].ID
		}
		return out[i].Created.After(out[j].Created)
	})
	return out
}
