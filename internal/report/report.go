package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"chaifi/backend/internal/cache"
	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
)

const menuSalesCacheKey = "report:menu-sales"

// Engine builds read-side reports over the transaction log. Results are
// cached; the service deletes the keys whenever transactions or the menu
// change.
type Engine struct {
	repo     store.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewEngine(repo store.Repository, cacheStore cache.Cache, cacheTTL time.Duration) *Engine {
	if cacheStore == nil {
		cacheStore = cache.Noop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &Engine{
		repo:     repo,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
	}
}

// MenuSales ranks menu items by units sold across the whole transaction log.
// Revenue is the sum of line price times quantity; items deleted from the
// menu still appear under their recorded name.
func (e *Engine) MenuSales(ctx context.Context) ([]domain.MenuItemSales, error) {
	if payload, ok, err := e.cache.Get(ctx, menuSalesCacheKey); err == nil && ok {
		var cached []domain.MenuItemSales
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	txs, err := e.repo.ListTransactions(ctx, 0)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.MenuItemSales)
	for _, tx := range txs {
		for _, line := range tx.Items {
			entry, ok := byID[line.MenuItemID]
			if !ok {
				entry = &domain.MenuItemSales{MenuItemID: line.MenuItemID, Name: line.Name}
				byID[line.MenuItemID] = entry
			}
			entry.UnitsSold += line.Quantity
			entry.Revenue += line.Price * domain.Amount(line.Quantity)
		}
	}

	for id, entry := range byID {
		menuItem, err := e.repo.GetMenuItem(ctx, id)
		if err != nil {
			continue
		}
		entry.Name = menuItem.Name
		entry.Category = menuItem.Category
	}

	sales := make([]domain.MenuItemSales, 0, len(byID))
	for _, entry := range byID {
		sales = append(sales, *entry)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].UnitsSold == sales[j].UnitsSold {
			return sales[i].Name < sales[j].Name
		}
		return sales[i].UnitsSold > sales[j].UnitsSold
	})

	if payload, err := json.Marshal(sales); err == nil {
		if err := e.cache.Set(ctx, menuSalesCacheKey, payload, e.cacheTTL); err != nil {
			log.Printf("[report] WARN: cache set failed: %v", err)
		}
	}
	return sales, nil
}

// Export bundles a summary row with its contributing transactions for the
// download endpoints.
func (e *Engine) Export(ctx context.Context, period string, key string) (*domain.SummaryExport, error) {
	switch period {
	case "daily":
		if !domain.ValidDate(key) {
			return nil, fmt.Errorf("%w: invalid date %q", store.ErrInvalidInput, key)
		}
		summary, err := e.repo.GetDailySummary(ctx, key)
		if err != nil {
			return nil, err
		}
		txs, err := e.repo.GetTransactionsByDate(ctx, key)
		if err != nil {
			return nil, err
		}
		return &domain.SummaryExport{Period: period, Key: key, Summary: summary, Transactions: txs}, nil

	case "weekly":
		if !domain.ValidDate(key) {
			return nil, fmt.Errorf("%w: invalid week start %q", store.ErrInvalidInput, key)
		}
		summary, err := e.repo.GetWeeklySummary(ctx, key)
		if err != nil {
			return nil, err
		}
		txs, err := e.repo.GetTransactionsByDateRange(ctx, summary.WeekStart, summary.WeekEnd)
		if err != nil {
			return nil, err
		}
		return &domain.SummaryExport{Period: period, Key: key, Summary: summary, Transactions: txs}, nil

	case "monthly":
		if !domain.ValidMonth(key) {
			return nil, fmt.Errorf("%w: invalid month %q", store.ErrInvalidInput, key)
		}
		summary, err := e.repo.GetMonthlySummary(ctx, key)
		if err != nil {
			return nil, err
		}
		from, to := domain.MonthRange(key)
		txs, err := e.repo.GetTransactionsByDateRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return &domain.SummaryExport{Period: period, Key: key, Summary: summary, Transactions: txs}, nil

	default:
		return nil, fmt.Errorf("%w: unknown period %q", store.ErrInvalidInput, period)
	}
}
