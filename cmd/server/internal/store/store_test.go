package store_test

import (
	"sort"
	"testing"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/store"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

func TestAggregate_CountAndSum(t *testing.T) {
	s := store.New()
	s.PutAccount(models.Account{ID: 1, Name: "Alice Johnson", Contact: "alice@example.com"})

	amounts := []float64{100, 200, 150.25, 0.75}
	var want float64
	for i, amt := range amounts {
		s.PutTransaction(models.Transaction{ID: int64(i + 1), AccountID: 1, ItemID: 1, Amount: amt})
		want += amt
	}

	agg := s.AggregateFor(1)
	if agg.Count != len(amounts) {
		t.Errorf("Expected count %d, got %d", len(amounts), agg.Count)
	}
	if agg.Total != want {
		t.Errorf("Expected total %f, got %f", want, agg.Total)
	}
}

func TestAggregate_UnknownAccountIsZero(t *testing.T) {
	s := store.New()

	agg := s.AggregateFor(999)
	if agg.Count != 0 || agg.Total != 0 {
		t.Errorf("Expected zero aggregate for unknown account, got %+v", agg)
	}
	if _, ok := s.AccountRow(999); ok {
		t.Error("AccountRow should report absent for unknown account")
	}
}

func TestPutTransaction_ReusedID_NoDoubleCount(t *testing.T) {
	s := store.New()
	s.PutAccount(models.Account{ID: 1, Name: "Alice Johnson"})
	s.PutAccount(models.Account{ID: 2, Name: "Bob Smith"})

	s.PutTransaction(models.Transaction{ID: 7, AccountID: 1, ItemID: 1, Amount: 100})
	// Overwrite under the same id, now against a different account.
	s.PutTransaction(models.Transaction{ID: 7, AccountID: 2, ItemID: 1, Amount: 50})

	if agg := s.AggregateFor(1); agg.Count != 0 || agg.Total != 0 {
		t.Errorf("Old contribution not retracted: %+v", agg)
	}
	if agg := s.AggregateFor(2); agg.Count != 1 || agg.Total != 50 {
		t.Errorf("New contribution wrong: %+v", agg)
	}
	if got := s.TransactionsByAccount(1); len(got) != 0 {
		t.Errorf("Account 1 should have no transactions, got %d", len(got))
	}
	if s.TransactionCount() != 1 {
		t.Errorf("Expected 1 transaction, got %d", s.TransactionCount())
	}
}

func TestListingScenario_SortedByTotalDesc(t *testing.T) {
	s := store.New()
	s.PutAccount(models.Account{ID: 1, Name: "Alice Johnson"})
	s.PutAccount(models.Account{ID: 2, Name: "Bob Smith"})
	s.PutAccount(models.Account{ID: 3, Name: "Charlie Brown"})

	s.PutTransaction(models.Transaction{ID: 1, AccountID: 1, Amount: 100})
	s.PutTransaction(models.Transaction{ID: 2, AccountID: 1, Amount: 200})
	s.PutTransaction(models.Transaction{ID: 3, AccountID: 2, Amount: 150})

	if agg := s.AggregateFor(1); agg.Count != 2 || agg.Total != 300 {
		t.Errorf("Account 1 aggregate wrong: %+v", agg)
	}
	if agg := s.AggregateFor(2); agg.Count != 1 || agg.Total != 150 {
		t.Errorf("Account 2 aggregate wrong: %+v", agg)
	}
	if agg := s.AggregateFor(3); agg.Count != 0 || agg.Total != 0 {
		t.Errorf("Account 3 aggregate wrong: %+v", agg)
	}

	rows := s.AccountRows()
	sort.Slice(rows, func(i, j int) bool { return rows[i].TxTotal > rows[j].TxTotal })

	wantOrder := []int64{1, 2, 3}
	for i, want := range wantOrder {
		if rows[i].ID != want {
			t.Errorf("Position %d: expected account %d, got %d", i, want, rows[i].ID)
		}
	}
}

func TestTransactionsByItem(t *testing.T) {
	s := store.New()
	s.PutCatalogItem(models.CatalogItem{ID: 5, Name: "Laptop", Price: 999})
	s.PutTransaction(models.Transaction{ID: 1, AccountID: 1, ItemID: 5, Amount: 999})
	s.PutTransaction(models.Transaction{ID: 2, AccountID: 2, ItemID: 5, Amount: 999})
	s.PutTransaction(models.Transaction{ID: 3, AccountID: 1, ItemID: 6, Amount: 10})

	if got := s.TransactionsByItem(5); len(got) != 2 {
		t.Errorf("Expected 2 transactions for item 5, got %d", len(got))
	}
}

func TestClear_ResetsEverything(t *testing.T) {
	s := store.New()
	s.PutAccount(models.Account{ID: 1, Name: "Alice Johnson", Contact: "alice@example.com"})
	s.PutCatalogItem(models.CatalogItem{ID: 1, Name: "Laptop", Price: 999})
	s.PutTransaction(models.Transaction{ID: 1, AccountID: 1, ItemID: 1, Amount: 999})
	s.PutNode(models.HierarchyNode{ID: "n1", Name: "Company"})
	s.UpdateQuote("AAPL", 150)

	s.Clear()

	if s.AccountCount() != 0 || s.CatalogItemCount() != 0 || s.TransactionCount() != 0 ||
		s.NodeCount() != 0 || s.QuoteCount() != 0 {
		t.Error("Counts should all be zero after Clear")
	}
	if _, ok := s.Account(1); ok {
		t.Error("Account lookup should be absent after Clear")
	}
	if _, ok := s.Node("n1"); ok {
		t.Error("Node lookup should be absent after Clear")
	}
	if agg := s.AggregateFor(1); agg.Count != 0 {
		t.Error("Aggregates should be reset after Clear")
	}
	if ids := s.SearchAccounts("alice"); len(ids) != 0 {
		t.Error("Search index should be empty after Clear")
	}
}

func TestQuoteSnapshot(t *testing.T) {
	s := store.New()
	s.UpdateQuote("X", 10)
	s.UpdateQuote("Y", 20)

	snap := s.QuoteSnapshot([]string{"X", "Z"})
	if len(snap) != 1 {
		t.Fatalf("Expected 1 quote in snapshot, got %d", len(snap))
	}
	if snap["X"].Price != 10 {
		t.Errorf("Expected X at 10, got %f", snap["X"].Price)
	}
}

func TestQuote_OverwriteKeepsLatestOnly(t *testing.T) {
	s := store.New()
	s.UpdateQuote("AAPL", 150)
	s.UpdateQuote("AAPL", 151.5)

	q, ok := s.Quote("AAPL")
	if !ok {
		t.Fatal("Quote should exist")
	}
	if q.Price != 151.5 {
		t.Errorf("Expected latest price 151.5, got %f", q.Price)
	}
	if s.QuoteCount() != 1 {
		t.Errorf("Expected a single quote record, got %d", s.QuoteCount())
	}
}

func TestStore_ConcurrentReadWrite(t *testing.T) {
	// Run with `go test -race ./...`
	s := store.New()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			s.PutAccount(models.Account{ID: int64(i), Name: "Load Test"})
			s.PutTransaction(models.Transaction{ID: int64(i), AccountID: int64(i % 10), Amount: 1})
		}
		close(done)
	}()

	for i := 0; i < 100; i++ {
		s.AccountRows()
		s.AggregateFor(int64(i % 10))
		s.SearchAccounts("load")
	}
	<-done
}
