// Package store owns the canonical in-memory entity tables and every
// derived index over them: per-account transaction aggregates, inverted
// search tokens, and the hierarchy adjacency. Each mutation updates the
// table and all affected indexes inside a single critical section, so a
// concurrent reader can never observe a record without its index
// contributions (or the reverse).
package store

import (
	"sync"
	"time"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

type Store struct {
	mu sync.RWMutex

	accounts     map[int64]models.Account
	items        map[int64]models.CatalogItem
	transactions map[int64]models.Transaction
	nodes        map[string]models.HierarchyNode
	quotes       map[string]models.Quote

	// Derived indexes. These hold ids only; records are resolved against
	// the tables above at read time.
	txByAccount map[int64][]int64
	txByItem    map[int64][]int64
	aggregates  map[int64]models.Aggregate

	accountTokens map[string]map[int64]struct{}
	nodeTokens    map[string]map[string]struct{}

	children map[string][]string
	parents  map[string]string
}

// New returns an empty store. One instance is constructed at process start
// and passed by handle to every collaborator; tests create their own.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.accounts = make(map[int64]models.Account)
	s.items = make(map[int64]models.CatalogItem)
	s.transactions = make(map[int64]models.Transaction)
	s.nodes = make(map[string]models.HierarchyNode)
	s.quotes = make(map[string]models.Quote)
	s.txByAccount = make(map[int64][]int64)
	s.txByItem = make(map[int64][]int64)
	s.aggregates = make(map[int64]models.Aggregate)
	s.accountTokens = make(map[string]map[int64]struct{})
	s.nodeTokens = make(map[string]map[string]struct{})
	s.children = make(map[string][]string)
	s.parents = make(map[string]string)
}

// Clear drops every table and every derived index in one atomic step.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// PutAccount inserts or overwrites an account. Overwriting does not retract
// previously indexed search tokens; stale tokens only widen the candidate
// set and are screened out by the verification pass in SearchAccounts.
func (s *Store) PutAccount(a models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	s.indexAccountLocked(a)
}

func (s *Store) Account(id int64) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	return a, ok
}

func (s *Store) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out
}

func (s *Store) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func (s *Store) PutCatalogItem(it models.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *Store) CatalogItem(id int64) (models.CatalogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *Store) CatalogItems() []models.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CatalogItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out
}

func (s *Store) CatalogItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// PutTransaction inserts or overwrites a transaction and patches the
// aggregate and per-account/per-item indexes in the same critical section.
// Overwriting an existing id retracts the old contribution first, so a
// reused id never double-counts.
func (s *Store) PutTransaction(tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.transactions[tx.ID]; ok {
		s.retractTransactionLocked(old)
	}

	s.transactions[tx.ID] = tx
	s.txByAccount[tx.AccountID] = append(s.txByAccount[tx.AccountID], tx.ID)
	s.txByItem[tx.ItemID] = append(s.txByItem[tx.ItemID], tx.ID)

	agg := s.aggregates[tx.AccountID]
	agg.Count++
	agg.Total += tx.Amount
	s.aggregates[tx.AccountID] = agg
}

func (s *Store) retractTransactionLocked(old models.Transaction) {
	agg := s.aggregates[old.AccountID]
	agg.Count--
	agg.Total -= old.Amount
	s.aggregates[old.AccountID] = agg
	s.txByAccount[old.AccountID] = removeID(s.txByAccount[old.AccountID], old.ID)
	s.txByItem[old.ItemID] = removeID(s.txByItem[old.ItemID], old.ID)
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (s *Store) Transaction(id int64) (models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	return tx, ok
}

func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx)
	}
	return out
}

// TransactionsByAccount returns the account's transactions in insertion order.
func (s *Store) TransactionsByAccount(accountID int64) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveTxLocked(s.txByAccount[accountID])
}

// TransactionsByItem returns the item's transactions in insertion order.
func (s *Store) TransactionsByItem(itemID int64) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveTxLocked(s.txByItem[itemID])
}

func (s *Store) resolveTxLocked(ids []int64) []models.Transaction {
	out := make([]models.Transaction, 0, len(ids))
	for _, id := range ids {
		if tx, ok := s.transactions[id]; ok {
			out = append(out, tx)
		}
	}
	return out
}

// UpdateQuote replaces the quote for symbol with the given price, stamped
// now. Only the latest value is retained.
func (s *Store) UpdateQuote(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[symbol] = models.Quote{Symbol: symbol, Price: price, TS: time.Now()}
}

func (s *Store) Quote(symbol string) (models.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

func (s *Store) Quotes() []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	return out
}

func (s *Store) QuoteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// QuoteSnapshot returns the current quotes for the requested symbols.
// Unknown symbols are simply absent from the result. The snapshot is
// consistent per symbol, not across the whole set.
func (s *Store) QuoteSnapshot(symbols []string) map[string]models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]models.Quote, len(symbols))
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			snap[sym] = q
		}
	}
	return snap
}
