package models

import "time"

// Account is an immutable customer record. IDs are caller-assigned and
// trusted; the store never validates uniqueness.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
}

// CatalogItem is an immutable sellable item with a unit price.
type CatalogItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Transaction links an account to a catalog item. ItemID is not required
// to reference an existing CatalogItem; enrichment yields a nil item.
type Transaction struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	ItemID    int64     `json:"itemId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// HierarchyNode is one node of the lazily-expanded tree. An empty ParentID
// marks a root. HasChildren is a writer-supplied hint, not verified against
// actual children.
type HierarchyNode struct {
	ID          string `json:"id"`
	ParentID    string `json:"parentId,omitempty"`
	Name        string `json:"name"`
	HasChildren bool   `json:"hasChildren"`
}

// Quote is the latest price for a symbol. Mutable: each update replaces the
// previous record, no history is kept.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	TS     time.Time `json:"ts"`
}

// Aggregate is the running transaction count/sum for one account.
type Aggregate struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// AccountRow is the canonical listing representation: the account record
// merged with its transaction aggregate.
type AccountRow struct {
	Account
	TxCount int     `json:"txCount"`
	TxTotal float64 `json:"txTotal"`
}

// PathEntry is one hop of a root-to-leaf hierarchy path.
type PathEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuoteUpdate represents a single market tick for a symbol as published to
// the feed topic.
type QuoteUpdate struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"` // unix micro
	SeqID     int64   `json:"seq_id"`    // monotonic counter per symbol
}
