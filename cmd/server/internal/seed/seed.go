// Package seed populates the store with synthetic data. The generator is
// fully deterministic: the same seed and parameters always produce a
// byte-identical entity set.
package seed

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/store"
	"github.com/NOT44353/Test-Avalants-Final/pkg/config"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

const maxNodes = 10000

// lcg is a small linear congruential generator. The constants are fixed so
// repeated runs reproduce the exact same sequence.
type lcg struct {
	seed int64
}

func (r *lcg) next() float64 {
	r.seed = (r.seed*9301 + 49297) % 233280
	return float64(r.seed) / 233280
}

func (r *lcg) intn(min, max int) int {
	return int(math.Floor(r.next()*float64(max-min+1))) + min
}

func (r *lcg) floatRange(min, max float64) float64 {
	return r.next()*(max-min) + min
}

func (r *lcg) choice(list []string) string {
	return list[r.intn(0, len(list)-1)]
}

// Result reports how many records of each kind were generated.
type Result struct {
	Accounts     int `json:"accounts"`
	CatalogItems int `json:"catalogItems"`
	Transactions int `json:"transactions"`
	Nodes        int `json:"nodes"`
	Quotes       int `json:"quotes"`
}

type Seeder struct {
	store  *store.Store
	logger *zap.Logger
	rng    *lcg
}

func NewSeeder(s *store.Store, logger *zap.Logger, seed int64) *Seeder {
	return &Seeder{store: s, logger: logger, rng: &lcg{seed: seed}}
}

// Run clears the store and regenerates every entity kind from the config.
func (sd *Seeder) Run(cfg config.SeedConfig) Result {
	start := time.Now()
	sd.store.Clear()

	var res Result
	res.Accounts = sd.SeedAccounts(cfg.Accounts)
	res.CatalogItems = sd.SeedCatalogItems(cfg.CatalogItems)
	if cfg.Accounts > 0 && cfg.CatalogItems > 0 {
		res.Transactions = sd.SeedTransactions(cfg.Transactions, cfg.Accounts, cfg.CatalogItems)
	}
	res.Nodes = sd.SeedHierarchy(cfg.Breadth, cfg.Depth)
	res.Quotes = sd.SeedQuotes(cfg.Symbols)

	sd.logger.Info("Data seeding completed",
		zap.Int("accounts", res.Accounts),
		zap.Int("catalog_items", res.CatalogItems),
		zap.Int("transactions", res.Transactions),
		zap.Int("nodes", res.Nodes),
		zap.Int("quotes", res.Quotes),
		zap.Duration("took", time.Since(start)))
	return res
}

func (sd *Seeder) SeedAccounts(count int) int {
	for i := 1; i <= count; i++ {
		first := sd.rng.choice(firstNames)
		last := sd.rng.choice(lastNames)
		sd.store.PutAccount(models.Account{
			ID:        int64(i),
			Name:      first + " " + last,
			Contact:   sd.contact(first, last),
			CreatedAt: sd.date(),
		})
	}
	return count
}

func (sd *Seeder) SeedCatalogItems(count int) int {
	for i := 1; i <= count; i++ {
		sd.store.PutCatalogItem(models.CatalogItem{
			ID:    int64(i),
			Name:  sd.itemName(),
			Price: round2(sd.rng.floatRange(10, 2000)),
		})
	}
	return count
}

func (sd *Seeder) SeedTransactions(count, accountCount, itemCount int) int {
	for i := 1; i <= count; i++ {
		accountID := int64(sd.rng.intn(1, accountCount))
		itemID := int64(sd.rng.intn(1, itemCount))

		base := sd.rng.floatRange(10, 1000)
		if item, ok := sd.store.CatalogItem(itemID); ok {
			base = item.Price
		}

		sd.store.PutTransaction(models.Transaction{
			ID:        int64(i),
			AccountID: accountID,
			ItemID:    itemID,
			Amount:    round2(base * sd.rng.floatRange(0.5, 3.0)),
			CreatedAt: sd.date(),
		})
	}
	return count
}

// SeedHierarchy builds a forest level by level: `breadth` roots, then each
// node gets 1..breadth children until `depth` levels exist or the node cap
// is hit. The HasChildren hint is set from the level, as the writer
// contract requires.
func (sd *Seeder) SeedHierarchy(breadth, depth int) int {
	if breadth <= 0 || depth <= 0 {
		return 0
	}

	nodeID := 1
	var currentLevel []string

	for i := 0; i < breadth && nodeID <= maxNodes; i++ {
		id := fmt.Sprintf("%d", nodeID)
		sd.store.PutNode(models.HierarchyNode{
			ID:          id,
			Name:        sd.nodeName(0),
			HasChildren: depth > 1,
		})
		currentLevel = append(currentLevel, id)
		nodeID++
	}

	for level := 1; level < depth && nodeID <= maxNodes; level++ {
		var nextLevel []string
		isLastLevel := level == depth-1

		for _, parentID := range currentLevel {
			childCount := sd.rng.intn(1, breadth)
			for i := 0; i < childCount && nodeID <= maxNodes; i++ {
				id := fmt.Sprintf("%d", nodeID)
				sd.store.PutNode(models.HierarchyNode{
					ID:          id,
					ParentID:    parentID,
					Name:        sd.nodeName(level),
					HasChildren: !isLastLevel,
				})
				nextLevel = append(nextLevel, id)
				nodeID++
			}
		}
		currentLevel = nextLevel
	}

	return nodeID - 1
}

func (sd *Seeder) SeedQuotes(symbols []string) int {
	for _, sym := range symbols {
		sd.store.UpdateQuote(sym, round2(sd.rng.floatRange(10, 1000)))
	}
	return len(symbols)
}

func (sd *Seeder) contact(first, last string) string {
	domain := sd.rng.choice(contactDomains)
	n := sd.rng.intn(1, 999)
	return fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), n, domain)
}

func (sd *Seeder) itemName() string {
	return fmt.Sprintf("%s %s %d",
		sd.rng.choice(itemNames), sd.rng.choice(itemCategories), sd.rng.intn(1000, 9999))
}

func (sd *Seeder) nodeName(level int) string {
	if level == 0 {
		return sd.rng.choice(rootNames)
	}
	return fmt.Sprintf("%s %s%d",
		sd.rng.choice(nodePrefixes), sd.rng.choice(nodeSuffixes), sd.rng.intn(1, 99))
}

func (sd *Seeder) date() time.Time {
	year := 2020 + sd.rng.intn(0, 4)
	month := time.Month(sd.rng.intn(1, 12))
	day := sd.rng.intn(1, 28)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
