package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
)

func TestNewSeededLoadsDefaults(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	admin, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if admin.Password == "admin@2020" {
		t.Fatalf("seed password stored unhashed")
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatalf("expected seeded categories")
	}

	menu, err := s.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}
	if len(menu) == 0 {
		t.Fatalf("expected seeded menu items")
	}
}

func TestCategoryUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, domain.Category{Name: "Tea"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := s.CreateCategory(ctx, domain.Category{Name: "Tea"}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict for duplicate name, got %v", err)
	}

	other, err := s.CreateCategory(ctx, domain.Category{Name: "Snacks"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	other.Name = "Tea"
	if _, err := s.UpdateCategory(ctx, *other); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict renaming onto existing name, got %v", err)
	}

	// Renaming a category onto itself is allowed.
	created.SubCategories = []string{"Green"}
	if _, err := s.UpdateCategory(ctx, *created); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestMissingRowsReturnNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetCategory(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("category: got %v", err)
	}
	if _, err := s.GetMenuItem(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("menu item: got %v", err)
	}
	if _, err := s.GetTransaction(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("transaction: got %v", err)
	}
	if _, err := s.GetDailySummary(ctx, "2025-03-12"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("daily summary: got %v", err)
	}
	if _, err := s.GetInventorySessionByDate(ctx, "2025-03-12"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("session by date: got %v", err)
	}
	if err := s.DeleteMenuItem(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete menu item: got %v", err)
	}
}

func TestSummaryDeletesAreIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.DeleteDailySummary(ctx, "2025-03-12"); err != nil {
		t.Fatalf("delete missing daily summary: %v", err)
	}
	if err := s.DeleteWeeklySummary(ctx, "2025-03-10"); err != nil {
		t.Fatalf("delete missing weekly summary: %v", err)
	}
	if err := s.DeleteMonthlySummary(ctx, "2025-03"); err != nil {
		t.Fatalf("delete missing monthly summary: %v", err)
	}
}

func TestDailySummaryKeyedByDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateDailySummary(ctx, domain.DailySummary{Date: "2025-03-12", TotalAmount: 5000, OrderCount: 1})
	if err != nil {
		t.Fatalf("create daily summary: %v", err)
	}
	if _, err := s.CreateDailySummary(ctx, domain.DailySummary{Date: "2025-03-12"}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict for duplicate date, got %v", err)
	}

	updated, err := s.UpdateDailySummary(ctx, domain.DailySummary{Date: "2025-03-12", TotalAmount: 7500, OrderCount: 2})
	if err != nil {
		t.Fatalf("update daily summary: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed identity: %s vs %s", updated.ID, created.ID)
	}
	if updated.TotalAmount != 7500 || updated.OrderCount != 2 {
		t.Fatalf("update lost values: %+v", updated)
	}
}

func TestTransactionsSortNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.CreateTransaction(ctx, domain.Transaction{
			Items:     []domain.LineItem{{MenuItemID: "m", Name: "Chai", Price: 2500, Quantity: 1}},
			Date:      "2025-03-12",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create transaction %d: %v", i, err)
		}
	}

	txs, err := s.ListTransactions(ctx, 2)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected limit 2, got %d", len(txs))
	}
	if !txs[0].CreatedAt.After(txs[1].CreatedAt) {
		t.Fatalf("expected newest first, got %s then %s", txs[0].CreatedAt, txs[1].CreatedAt)
	}
}

func TestDeleteTransactionsByDateRange(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, date := range []string{"2025-03-01", "2025-03-15", "2025-04-01"} {
		if _, err := s.CreateTransaction(ctx, domain.Transaction{
			Items: []domain.LineItem{{MenuItemID: "m", Name: "Chai", Price: 2500, Quantity: 1}},
			Date:  date,
		}); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	deleted, err := s.DeleteTransactionsByDateRange(ctx, "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	rest, err := s.GetTransactionsByDateRange(ctx, "2025-01-01", "2025-12-31")
	if err != nil {
		t.Fatalf("get range: %v", err)
	}
	if len(rest) != 1 || rest[0].Date != "2025-04-01" {
		t.Fatalf("expected only the April transaction to survive, got %+v", rest)
	}
}

func TestDeleteMenuItemsReportsCount(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, _ := s.CreateMenuItem(ctx, domain.MenuItem{Name: "Chai", Category: "Tea", Price: 2500})
	b, _ := s.CreateMenuItem(ctx, domain.MenuItem{Name: "Samosa", Category: "Snacks", Price: 2000})

	deleted, err := s.DeleteMenuItems(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
}

func TestInventorySessionUniquePerDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-03-12", Status: domain.SessionBilling}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-03-12", Status: domain.SessionBilling}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict for duplicate date, got %v", err)
	}
}

func TestCalculateStockOutForSession(t *testing.T) {
	s := New()
	ctx := context.Background()

	session, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-03-12", Status: domain.SessionBilling})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	item, err := s.CreateInventoryItem(ctx, domain.InventoryItem{
		SessionID: session.ID, MenuItemID: "menu-chai", StockIn: 10, StockLeft: 10,
	})
	if err != nil {
		t.Fatalf("create inventory item: %v", err)
	}

	for _, qty := range []int{2, 3} {
		if _, err := s.CreateTransaction(ctx, domain.Transaction{
			Items: []domain.LineItem{{MenuItemID: "menu-chai", Name: "Chai", Price: 2500, Quantity: qty}},
			Date:  "2025-03-12",
		}); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	// A different day must not count.
	if _, err := s.CreateTransaction(ctx, domain.Transaction{
		Items: []domain.LineItem{{MenuItemID: "menu-chai", Name: "Chai", Price: 2500, Quantity: 9}},
		Date:  "2025-03-13",
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := s.CalculateStockOutForSession(ctx, session.ID, session.Date); err != nil {
		t.Fatalf("calculate stock out: %v", err)
	}

	got, err := s.GetInventoryItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get inventory item: %v", err)
	}
	if got.StockOut != 5 || got.StockLeft != 5 {
		t.Fatalf("expected stockOut 5 stockLeft 5, got %d/%d", got.StockOut, got.StockLeft)
	}

	if err := s.CalculateStockOutForSession(ctx, "missing", "2025-03-12"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown session, got %v", err)
	}
}

func TestClearInventoryByDateRangeRemovesItemsWithSession(t *testing.T) {
	s := New()
	ctx := context.Background()

	session, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-03-12", Status: domain.SessionBilling})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	item, err := s.CreateInventoryItem(ctx, domain.InventoryItem{SessionID: session.ID, MenuItemID: "menu-chai", StockIn: 4, StockLeft: 4})
	if err != nil {
		t.Fatalf("create inventory item: %v", err)
	}
	keep, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-04-01", Status: domain.SessionBilling})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := s.ClearInventoryByDateRange(ctx, "2025-03-01", "2025-03-31"); err != nil {
		t.Fatalf("clear range: %v", err)
	}

	if _, err := s.GetInventorySession(ctx, session.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if _, err := s.GetInventoryItem(ctx, item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected item gone with its session, got %v", err)
	}
	if _, err := s.GetInventorySession(ctx, keep.ID); err != nil {
		t.Fatalf("expected April session to survive: %v", err)
	}
}

func TestGetInventoryItemsWithMenuJoinsKnownItems(t *testing.T) {
	s := New()
	ctx := context.Background()

	menuItem, err := s.CreateMenuItem(ctx, domain.MenuItem{Name: "Chai", Category: "Tea", Price: 2500})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	session, err := s.CreateInventorySession(ctx, domain.InventorySession{Date: "2025-03-12", Status: domain.SessionBilling})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := s.CreateInventoryItem(ctx, domain.InventoryItem{SessionID: session.ID, MenuItemID: menuItem.ID, StockIn: 3, StockLeft: 3}); err != nil {
		t.Fatalf("create inventory item: %v", err)
	}
	// Item whose menu entry was deleted later still lists, without a join.
	if _, err := s.CreateInventoryItem(ctx, domain.InventoryItem{SessionID: session.ID, MenuItemID: "gone", StockIn: 1, StockLeft: 1}); err != nil {
		t.Fatalf("create inventory item: %v", err)
	}

	joined, err := s.GetInventoryItemsWithMenu(ctx, session.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(joined))
	}
	var withMenu, without int
	for _, row := range joined {
		if row.MenuItem != nil {
			withMenu++
			if row.MenuItem.Name != "Chai" {
				t.Fatalf("joined wrong menu item: %+v", row.MenuItem)
			}
		} else {
			without++
		}
	}
	if withMenu != 1 || without != 1 {
		t.Fatalf("expected one joined and one orphan row, got %d/%d", withMenu, without)
	}
}

func TestReturnedTransactionsAreIsolatedCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, domain.Transaction{
		Items: []domain.LineItem{{MenuItemID: "m", Name: "Chai", Price: 2500, Quantity: 1}},
		Date:  "2025-03-12",
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	created.Items[0].Quantity = 99

	stored, err := s.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if stored.Items[0].Quantity != 1 {
		t.Fatalf("caller mutation leaked into the store")
	}
}
