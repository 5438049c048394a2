// Package api is the HTTP boundary layer: thin request parsing, bounds
// validation, and status-code mapping over the store's read and write
// operations. The core never re-validates what this layer accepts.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/store"
	"github.com/NOT44353/Test-Avalants-Final/pkg/config"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type API struct {
	store   *store.Store
	logger  *zap.Logger
	limiter RateLimiter
	seedCfg config.SeedConfig
}

func New(s *store.Store, logger *zap.Logger, limiter RateLimiter, seedCfg config.SeedConfig) *API {
	if limiter == nil {
		limiter = NoopRateLimiter{}
	}
	return &API{store: s, logger: logger, limiter: limiter, seedCfg: seedCfg}
}

// Routes registers every endpoint on mux, wrapped in the rate limiter.
func (a *API) Routes(mux *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, a.rateLimit(h))
	}

	handle("GET /api/accounts", a.listAccounts)
	handle("GET /api/accounts/stats", a.accountStats)
	handle("GET /api/accounts/{id}", a.getAccount)
	handle("GET /api/accounts/{id}/transactions", a.accountTransactions)

	handle("GET /api/items/{id}", a.getCatalogItem)
	handle("GET /api/items/{id}/transactions", a.itemTransactions)

	handle("GET /api/nodes/root", a.rootNodes)
	handle("GET /api/nodes/search", a.searchNodes)
	handle("GET /api/nodes/stats", a.nodeStats)
	handle("GET /api/nodes/{id}", a.getNode)
	handle("GET /api/nodes/{id}/children", a.nodeChildren)
	handle("GET /api/nodes/{id}/breadcrumb", a.nodeBreadcrumb)

	handle("GET /api/quotes", a.listQuotes)
	handle("GET /api/quotes/snapshot", a.quoteSnapshot)
	handle("GET /api/quotes/stats", a.quoteStats)
	handle("GET /api/quotes/movers", a.quoteMovers)
	handle("GET /api/quotes/{symbol}", a.getQuote)
	handle("POST /api/quotes/{symbol}", a.updateQuote)

	handle("POST /dev/seed", a.runSeed)
	handle("DELETE /dev/seed", a.clearData)
	handle("GET /dev/seed/status", a.seedStatus)
}

// response is the envelope every endpoint answers with.
type response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	RetryAfter int         `json:"retryAfter,omitempty"`
}

// paginated wraps a page of items.
type paginated struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func (a *API) ok(w http.ResponseWriter, data interface{}) {
	a.writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func (a *API) fail(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, response{Success: false, Error: msg})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// pageBounds slices [0,total) for the requested page.
func pageBounds(page, pageSize, total int) (int, int) {
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
