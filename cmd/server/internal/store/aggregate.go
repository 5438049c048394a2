package store

import "github.com/NOT44353/Test-Avalants-Final/pkg/models"

// AggregateFor returns the running transaction count and sum for an
// account. Unknown accounts and accounts without transactions both yield
// the zero aggregate.
func (s *Store) AggregateFor(accountID int64) models.Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregates[accountID]
}

// AccountRow merges an account with its aggregate. This is the canonical
// row shape consumed by the listing endpoints. Returns false if the
// account itself does not exist.
func (s *Store) AccountRow(accountID int64) (models.AccountRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountRowLocked(accountID)
}

func (s *Store) accountRowLocked(accountID int64) (models.AccountRow, bool) {
	a, ok := s.accounts[accountID]
	if !ok {
		return models.AccountRow{}, false
	}
	agg := s.aggregates[accountID]
	return models.AccountRow{Account: a, TxCount: agg.Count, TxTotal: agg.Total}, true
}

// AccountRows returns a row for every account, in no guaranteed order.
func (s *Store) AccountRows() []models.AccountRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AccountRow, 0, len(s.accounts))
	for id := range s.accounts {
		if row, ok := s.accountRowLocked(id); ok {
			out = append(out, row)
		}
	}
	return out
}

// AccountRowsByID resolves rows for the given ids, skipping unknown ones.
func (s *Store) AccountRowsByID(ids []int64) []models.AccountRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AccountRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.accountRowLocked(id); ok {
			out = append(out, row)
		}
	}
	return out
}
