package api

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

var validSortKeys = map[string]bool{
	"name":      true,
	"contact":   true,
	"createdAt": true,
	"txTotal":   true,
}

// listAccounts serves the searchable/sortable/paginated table view.
func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("pageSize"), defaultPageSize)
	search := strings.TrimSpace(q.Get("search"))
	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = "name"
	}
	sortDir := q.Get("sortDir")
	if sortDir == "" {
		sortDir = "asc"
	}

	if page < 1 {
		a.fail(w, http.StatusBadRequest, "Page must be greater than 0")
		return
	}
	if pageSize < 1 || pageSize > maxPageSize {
		a.fail(w, http.StatusBadRequest, "Page size must be between 1 and 200")
		return
	}
	if !validSortKeys[sortBy] {
		a.fail(w, http.StatusBadRequest, "Invalid sortBy. Must be one of: name, contact, createdAt, txTotal")
		return
	}
	if sortDir != "asc" && sortDir != "desc" {
		a.fail(w, http.StatusBadRequest, `Invalid sortDir. Must be "asc" or "desc"`)
		return
	}

	var rows []models.AccountRow
	if search != "" {
		rows = a.store.AccountRowsByID(a.store.SearchAccounts(search))
	} else {
		rows = a.store.AccountRows()
	}

	sortRows(rows, sortBy, sortDir)

	total := len(rows)
	start, end := pageBounds(page, pageSize, total)

	a.ok(w, paginated{Items: rows[start:end], Total: total, Page: page, PageSize: pageSize})
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	row, ok := a.store.AccountRow(id)
	if !ok {
		a.fail(w, http.StatusNotFound, "Account not found")
		return
	}
	a.ok(w, row)
}

// enrichedTransaction joins a transaction with its catalog item. Item is
// nil when the referenced id was never inserted.
type enrichedTransaction struct {
	models.Transaction
	Item *models.CatalogItem `json:"item"`
}

func (a *API) accountTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	page := intParam(r.URL.Query().Get("page"), 1)
	pageSize := intParam(r.URL.Query().Get("pageSize"), defaultPageSize)
	if page < 1 || pageSize < 1 || pageSize > maxPageSize {
		a.fail(w, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	txs := a.store.TransactionsByAccount(id)
	total := len(txs)
	start, end := pageBounds(page, pageSize, total)

	items := make([]enrichedTransaction, 0, end-start)
	for _, tx := range txs[start:end] {
		items = append(items, a.enrich(tx))
	}

	a.ok(w, paginated{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (a *API) getCatalogItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, ok := a.store.CatalogItem(id)
	if !ok {
		a.fail(w, http.StatusNotFound, "Item not found")
		return
	}
	a.ok(w, item)
}

func (a *API) itemTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	txs := a.store.TransactionsByItem(id)
	a.ok(w, map[string]interface{}{"items": txs, "total": len(txs)})
}

func (a *API) accountStats(w http.ResponseWriter, r *http.Request) {
	// Computed over all transactions, including any whose account id was
	// never inserted.
	txs := a.store.Transactions()

	var revenue float64
	for _, tx := range txs {
		revenue += tx.Amount
	}
	avg := 0.0
	if len(txs) > 0 {
		avg = revenue / float64(len(txs))
	}

	a.ok(w, map[string]interface{}{
		"totalAccounts":           a.store.AccountCount(),
		"totalTransactions":       len(txs),
		"totalRevenue":            round2(revenue),
		"averageTransactionValue": round2(avg),
	})
}

func (a *API) enrich(tx models.Transaction) enrichedTransaction {
	out := enrichedTransaction{Transaction: tx}
	if item, ok := a.store.CatalogItem(tx.ItemID); ok {
		out.Item = &item
	}
	return out
}

func sortRows(rows []models.AccountRow, sortBy, sortDir string) {
	less := func(i, j int) bool {
		switch sortBy {
		case "contact":
			return strings.ToLower(rows[i].Contact) < strings.ToLower(rows[j].Contact)
		case "createdAt":
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		case "txTotal":
			return rows[i].TxTotal < rows[j].TxTotal
		default:
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		}
	}
	if sortDir == "desc" {
		sort.SliceStable(rows, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(rows, less)
	}
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
