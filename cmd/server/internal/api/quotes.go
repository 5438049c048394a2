package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sort"
	"strings"
)

const maxSnapshotSymbols = 50

func (a *API) listQuotes(w http.ResponseWriter, r *http.Request) {
	a.ok(w, a.store.Quotes())
}

func (a *API) quoteSnapshot(w http.ResponseWriter, r *http.Request) {
	param := r.URL.Query().Get("symbols")
	if param == "" {
		a.fail(w, http.StatusBadRequest, "Symbols parameter is required")
		return
	}

	var symbols []string
	for _, s := range strings.Split(param, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		a.fail(w, http.StatusBadRequest, "At least one symbol is required")
		return
	}
	if len(symbols) > maxSnapshotSymbols {
		a.fail(w, http.StatusBadRequest, "Maximum 50 symbols allowed")
		return
	}

	a.ok(w, a.store.QuoteSnapshot(symbols))
}

func (a *API) getQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := a.store.Quote(r.PathValue("symbol"))
	if !ok {
		a.fail(w, http.StatusNotFound, "Quote not found")
		return
	}
	a.ok(w, quote)
}

func (a *API) updateQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Price < 0 {
		a.fail(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}

	a.store.UpdateQuote(symbol, body.Price)
	quote, _ := a.store.Quote(symbol)
	a.ok(w, quote)
}

func (a *API) quoteStats(w http.ResponseWriter, r *http.Request) {
	quotes := a.store.Quotes()
	if len(quotes) == 0 {
		a.ok(w, map[string]interface{}{
			"totalSymbols": 0,
			"averagePrice": 0,
			"highestPrice": 0,
			"lowestPrice":  0,
		})
		return
	}

	var sum float64
	high := quotes[0].Price
	low := quotes[0].Price
	for _, q := range quotes {
		sum += q.Price
		if q.Price > high {
			high = q.Price
		}
		if q.Price < low {
			low = q.Price
		}
	}

	a.ok(w, map[string]interface{}{
		"totalSymbols": len(quotes),
		"averagePrice": round2(sum / float64(len(quotes))),
		"highestPrice": round2(high),
		"lowestPrice":  round2(low),
	})
}

// priceChange is a demo statistic: no price history is retained, so the
// change is synthesized within ±5% of the current price.
type priceChange struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"currentPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

func (a *API) quoteMovers(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), 10)
	if limit < 1 {
		limit = 10
	}

	quotes := a.store.Quotes()
	movers := make([]priceChange, 0, len(quotes))
	for _, q := range quotes {
		if q.Price == 0 {
			continue
		}
		change := (rand.Float64() - 0.5) * q.Price * 0.1
		movers = append(movers, priceChange{
			Symbol:        q.Symbol,
			CurrentPrice:  q.Price,
			Change:        round2(change),
			ChangePercent: round2(change / q.Price * 100),
		})
	}

	sort.Slice(movers, func(i, j int) bool {
		return movers[i].ChangePercent > movers[j].ChangePercent
	})

	gainers := movers
	if len(gainers) > limit {
		gainers = gainers[:limit]
	}
	losers := make([]priceChange, 0, limit)
	for i := len(movers) - 1; i >= 0 && len(losers) < limit; i-- {
		losers = append(losers, movers[i])
	}

	a.ok(w, map[string]interface{}{
		"gainers": gainers,
		"losers":  losers,
	})
}
