package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chaifi/backend/internal/cache"
	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
	"chaifi/backend/internal/store/memory"
)

// testClock is a Wednesday so week bounds land mid-week.
var testClock = time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

func newTestService() (*Service, *memory.Store) {
	repo := memory.NewSeeded()
	svc := New(repo, cache.Noop{})
	svc.now = func() time.Time { return testClock }
	return svc, repo
}

func mustRecord(t *testing.T, svc *Service, req domain.TransactionCreateRequest) *domain.Transaction {
	t.Helper()
	tx, err := svc.RecordTransaction(context.Background(), req)
	if err != nil {
		t.Fatalf("record transaction: %v", err)
	}
	return tx
}

func cashTransaction(date string, total string) domain.TransactionCreateRequest {
	return domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Masala Chai", Price: domain.MustAmount(total), Quantity: 1},
		},
		TotalAmount:   domain.MustAmount(total),
		PaymentMethod: domain.PaymentCash,
		Date:          date,
	}
}

func TestRecordTransactionFoldsAllThreeLevels(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRecord(t, svc, cashTransaction("2025-03-12", "50.00"))
	mustRecord(t, svc, cashTransaction("2025-03-12", "25.00"))

	daily, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if daily.TotalAmount != domain.MustAmount("75.00") {
		t.Fatalf("expected daily total 75.00, got %s", daily.TotalAmount)
	}
	if daily.CashAmount != domain.MustAmount("75.00") {
		t.Fatalf("expected daily cash 75.00, got %s", daily.CashAmount)
	}
	if daily.OrderCount != 2 {
		t.Fatalf("expected daily order count 2, got %d", daily.OrderCount)
	}

	// 2025-03-12 falls in the Monday-start week of 2025-03-10.
	weekly, err := svc.WeeklySummary(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if weekly.WeekEnd != "2025-03-16" {
		t.Fatalf("expected week end 2025-03-16, got %s", weekly.WeekEnd)
	}
	if weekly.TotalAmount != domain.MustAmount("75.00") {
		t.Fatalf("expected weekly total 75.00, got %s", weekly.TotalAmount)
	}

	monthly, err := svc.MonthlySummary(ctx, "2025-03")
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if monthly.TotalAmount != domain.MustAmount("75.00") {
		t.Fatalf("expected monthly total 75.00, got %s", monthly.TotalAmount)
	}
	if monthly.OrderCount != 2 {
		t.Fatalf("expected monthly order count 2, got %d", monthly.OrderCount)
	}
}

func TestSplitPaymentFillsBothBuckets(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Cappuccino", Price: domain.MustAmount("50.00"), Quantity: 1},
		},
		TotalAmount:   domain.MustAmount("50.00"),
		PaymentMethod: domain.PaymentSplit,
		SplitPayment:  &domain.SplitPayment{GpayAmount: domain.MustAmount("30.00"), CashAmount: domain.MustAmount("20.00")},
		Date:          "2025-03-12",
	})

	daily, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if daily.GpayAmount != domain.MustAmount("30.00") {
		t.Fatalf("expected gpay 30.00, got %s", daily.GpayAmount)
	}
	if daily.CashAmount != domain.MustAmount("20.00") {
		t.Fatalf("expected cash 20.00, got %s", daily.CashAmount)
	}
}

func TestCreditorAccruesToTotalOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Veg Sandwich", Price: domain.MustAmount("60.00"), Quantity: 1},
		},
		TotalAmount:   domain.MustAmount("60.00"),
		PaymentMethod: domain.PaymentCreditor,
		Creditor:      &domain.CreditorInfo{Name: "Ravi", TotalAmount: domain.MustAmount("60.00"), BalanceAmount: domain.MustAmount("60.00")},
		Date:          "2025-03-12",
	})

	daily, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if daily.TotalAmount != domain.MustAmount("60.00") {
		t.Fatalf("expected total 60.00, got %s", daily.TotalAmount)
	}
	if daily.GpayAmount != 0 || daily.CashAmount != 0 {
		t.Fatalf("expected credit sale to leave gpay and cash at zero, got %s / %s", daily.GpayAmount, daily.CashAmount)
	}
}

func TestPaymentVariantValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*domain.TransactionCreateRequest)
	}{
		{"cash with split details", func(req *domain.TransactionCreateRequest) {
			req.SplitPayment = &domain.SplitPayment{GpayAmount: 1, CashAmount: 1}
		}},
		{"cash with creditor details", func(req *domain.TransactionCreateRequest) {
			req.Creditor = &domain.CreditorInfo{Name: "Ravi"}
		}},
		{"split without amounts", func(req *domain.TransactionCreateRequest) {
			req.PaymentMethod = domain.PaymentSplit
		}},
		{"split with negative amount", func(req *domain.TransactionCreateRequest) {
			req.PaymentMethod = domain.PaymentSplit
			req.SplitPayment = &domain.SplitPayment{GpayAmount: -1, CashAmount: 1}
		}},
		{"creditor without name", func(req *domain.TransactionCreateRequest) {
			req.PaymentMethod = domain.PaymentCreditor
			req.Creditor = &domain.CreditorInfo{}
		}},
		{"unknown method", func(req *domain.TransactionCreateRequest) {
			req.PaymentMethod = "upi"
		}},
		{"no items", func(req *domain.TransactionCreateRequest) {
			req.Items = nil
		}},
		{"zero quantity", func(req *domain.TransactionCreateRequest) {
			req.Items[0].Quantity = 0
		}},
		{"invalid date", func(req *domain.TransactionCreateRequest) {
			req.Date = "12-03-2025"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := cashTransaction("2025-03-12", "50.00")
			tc.mutate(&req)
			_, err := svc.RecordTransaction(context.Background(), req)
			if !errors.Is(err, store.ErrInvalidInput) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestTotalComputedFromLinesAndExtras(t *testing.T) {
	svc, _ := newTestService()

	tx := mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Masala Chai", Price: domain.MustAmount("25.00"), Quantity: 2},
			{MenuItemID: "menu-b", Name: "Samosa", Price: domain.MustAmount("20.00"), Quantity: 1},
		},
		Extras:        []domain.Extra{{Name: "Parcel charge", Amount: domain.MustAmount("5.00")}},
		PaymentMethod: domain.PaymentGpay,
		Date:          "2025-03-12",
	})

	if tx.TotalAmount != domain.MustAmount("75.00") {
		t.Fatalf("expected computed total 75.00, got %s", tx.TotalAmount)
	}
}

func TestRecordTransactionDefaults(t *testing.T) {
	svc, _ := newTestService()

	tx := mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Masala Chai", Price: domain.MustAmount("25.00"), Quantity: 1},
		},
		PaymentMethod: domain.PaymentCash,
	})

	if tx.Date != "2025-03-12" {
		t.Fatalf("expected date to default to today, got %s", tx.Date)
	}
	if tx.DayName != "Wednesday" {
		t.Fatalf("expected day name Wednesday, got %s", tx.DayName)
	}
	if tx.BillerName != "Sriram" {
		t.Fatalf("expected default biller, got %s", tx.BillerName)
	}
	if tx.Time == "" {
		t.Fatalf("expected clock time to be filled in")
	}
}

func TestClearDaySubtractsFromWeekAndMonth(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Two days in the same week and month.
	mustRecord(t, svc, cashTransaction("2025-03-11", "40.00"))
	mustRecord(t, svc, cashTransaction("2025-03-12", "50.00"))

	if err := svc.ClearData(ctx, "day", "2025-03-11"); err != nil {
		t.Fatalf("clear day: %v", err)
	}

	if _, err := svc.DailySummary(ctx, "2025-03-11"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected cleared daily summary to be gone, got %v", err)
	}
	txs, err := svc.TransactionsByDate(ctx, "2025-03-11")
	if err != nil {
		t.Fatalf("transactions by date: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected cleared day to have no transactions, got %d", len(txs))
	}

	weekly, err := svc.WeeklySummary(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if weekly.TotalAmount != domain.MustAmount("50.00") {
		t.Fatalf("expected weekly total 50.00 after subtraction, got %s", weekly.TotalAmount)
	}
	if weekly.OrderCount != 1 {
		t.Fatalf("expected weekly order count 1, got %d", weekly.OrderCount)
	}

	monthly, err := svc.MonthlySummary(ctx, "2025-03")
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if monthly.TotalAmount != domain.MustAmount("50.00") {
		t.Fatalf("expected monthly total 50.00 after subtraction, got %s", monthly.TotalAmount)
	}

	other, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if other.TotalAmount != domain.MustAmount("50.00") {
		t.Fatalf("expected untouched daily total 50.00, got %s", other.TotalAmount)
	}
}

func TestClearDayWithoutSummaryStillDeletesTransactions(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// A transaction written below the service never created a summary.
	_, err := repo.CreateTransaction(ctx, domain.Transaction{
		Items: []domain.LineItem{
			{MenuItemID: "menu-a", Name: "Masala Chai", Price: domain.MustAmount("25.00"), Quantity: 1},
		},
		TotalAmount:   domain.MustAmount("25.00"),
		PaymentMethod: domain.PaymentCash,
		BillerName:    "Sriram",
		Date:          "2025-03-11",
		DayName:       "Tuesday",
		Time:          "09:00 AM",
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.ClearData(ctx, "day", "2025-03-11"); err != nil {
		t.Fatalf("clear day without summary: %v", err)
	}

	txs, err := svc.TransactionsByDate(ctx, "2025-03-11")
	if err != nil {
		t.Fatalf("transactions by date: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected transactions to be deleted, got %d", len(txs))
	}
	if _, err := svc.WeeklySummary(ctx, "2025-03-10"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no weekly summary to have appeared, got %v", err)
	}
}

func TestClearWeekSubtractsFromMonth(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Two different weeks of the same month.
	mustRecord(t, svc, cashTransaction("2025-03-05", "30.00"))
	mustRecord(t, svc, cashTransaction("2025-03-12", "50.00"))

	if err := svc.ClearData(ctx, "week", "2025-03-10"); err != nil {
		t.Fatalf("clear week: %v", err)
	}

	if _, err := svc.WeeklySummary(ctx, "2025-03-10"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected cleared weekly summary to be gone, got %v", err)
	}
	if _, err := svc.DailySummary(ctx, "2025-03-12"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected daily summary inside cleared week to be gone, got %v", err)
	}

	monthly, err := svc.MonthlySummary(ctx, "2025-03")
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if monthly.TotalAmount != domain.MustAmount("30.00") {
		t.Fatalf("expected monthly total 30.00 after week clear, got %s", monthly.TotalAmount)
	}

	weekly, err := svc.WeeklySummary(ctx, "2025-03-03")
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if weekly.TotalAmount != domain.MustAmount("30.00") {
		t.Fatalf("expected untouched weekly total 30.00, got %s", weekly.TotalAmount)
	}
}

func TestClearMonthRemovesAllLevels(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRecord(t, svc, cashTransaction("2025-03-05", "30.00"))
	mustRecord(t, svc, cashTransaction("2025-03-12", "50.00"))

	if err := svc.ClearData(ctx, "month", "2025-03"); err != nil {
		t.Fatalf("clear month: %v", err)
	}

	if _, err := svc.MonthlySummary(ctx, "2025-03"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected monthly summary to be gone, got %v", err)
	}
	if _, err := svc.WeeklySummary(ctx, "2025-03-03"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected weekly summary to be gone, got %v", err)
	}
	if _, err := svc.DailySummary(ctx, "2025-03-12"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected daily summary to be gone, got %v", err)
	}

	txs, err := svc.TransactionsByDateRange(ctx, "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("transactions by range: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected all month transactions to be deleted, got %d", len(txs))
	}
}

func TestClearDataRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.ClearData(ctx, "year", "2025"); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown period, got %v", err)
	}
	if err := svc.ClearData(ctx, "day", "not-a-date"); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed date, got %v", err)
	}
	if err := svc.ClearData(ctx, "month", "2025-13"); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed month, got %v", err)
	}
}

func TestInventoryLifecycle(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	menu, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}
	if len(menu) < 2 {
		t.Fatalf("expected seeded menu items, got %d", len(menu))
	}
	first, second := menu[0], menu[1]

	session, items, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{
			{MenuItemID: first.ID, StockIn: 10},
			{MenuItemID: second.ID, StockIn: 5},
		},
	})
	if err != nil {
		t.Fatalf("start day: %v", err)
	}
	if session.Status != domain.SessionBilling {
		t.Fatalf("expected billing status, got %s", session.Status)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 inventory items, got %d", len(items))
	}
	for _, item := range items {
		if item.StockLeft != item.StockIn {
			t.Fatalf("expected stock left to equal stock in before sales, got %d/%d", item.StockLeft, item.StockIn)
		}
	}

	if _, _, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{{MenuItemID: first.ID, StockIn: 1}},
	}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict for second session on same date, got %v", err)
	}

	mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: first.ID, Name: first.Name, Price: first.Price, Quantity: 3},
			{MenuItemID: second.ID, Name: second.Name, Price: second.Price, Quantity: 1},
		},
		PaymentMethod: domain.PaymentCash,
	})

	ended, err := svc.EndDay(ctx, session.ID)
	if err != nil {
		t.Fatalf("end day: %v", err)
	}
	if ended.Status != domain.SessionEnded {
		t.Fatalf("expected ended status, got %s", ended.Status)
	}
	if ended.EndTime == nil {
		t.Fatalf("expected end time to be set")
	}

	got, err := svc.SessionItems(ctx, session.ID)
	if err != nil {
		t.Fatalf("session items: %v", err)
	}
	byMenu := make(map[string]domain.InventoryItemWithMenu, len(got))
	for _, item := range got {
		byMenu[item.MenuItemID] = item
	}
	if item := byMenu[first.ID]; item.StockOut != 3 || item.StockLeft != 7 {
		t.Fatalf("expected first item stockOut 3 stockLeft 7, got %d/%d", item.StockOut, item.StockLeft)
	}
	if item := byMenu[second.ID]; item.StockOut != 1 || item.StockLeft != 4 {
		t.Fatalf("expected second item stockOut 1 stockLeft 4, got %d/%d", item.StockOut, item.StockLeft)
	}

	if _, err := svc.EndDay(ctx, session.ID); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict ending twice, got %v", err)
	}
	if _, err := svc.UpdateStockIn(ctx, got[0].ID, 20); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict editing item of ended session, got %v", err)
	}
}

func TestEndDayRejectsMismatchedSessionID(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	menu, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}

	if _, _, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{{MenuItemID: menu[0].ID, StockIn: 10}},
	}); err != nil {
		t.Fatalf("start day: %v", err)
	}

	if _, err := svc.EndDay(ctx, "some-other-session"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for mismatched session id, got %v", err)
	}
}

func TestUpdateStockInRecomputesStockLeft(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	menu, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}

	_, items, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{{MenuItemID: menu[0].ID, StockIn: 10}},
	})
	if err != nil {
		t.Fatalf("start day: %v", err)
	}

	updated, err := svc.UpdateStockIn(ctx, items[0].ID, 15)
	if err != nil {
		t.Fatalf("update stock in: %v", err)
	}
	if updated.StockIn != 15 || updated.StockLeft != 15 {
		t.Fatalf("expected stockIn 15 stockLeft 15, got %d/%d", updated.StockIn, updated.StockLeft)
	}

	if _, err := svc.UpdateStockIn(ctx, items[0].ID, -1); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative stockIn, got %v", err)
	}
}

func TestStockLeftMayGoNegative(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	menu, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}

	session, _, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{{MenuItemID: menu[0].ID, StockIn: 2}},
	})
	if err != nil {
		t.Fatalf("start day: %v", err)
	}

	// Sold more than was stocked; the shortfall stays visible.
	mustRecord(t, svc, domain.TransactionCreateRequest{
		Items: []domain.LineItem{
			{MenuItemID: menu[0].ID, Name: menu[0].Name, Price: menu[0].Price, Quantity: 5},
		},
		PaymentMethod: domain.PaymentCash,
	})

	if _, err := svc.EndDay(ctx, session.ID); err != nil {
		t.Fatalf("end day: %v", err)
	}

	got, err := svc.SessionItems(ctx, session.ID)
	if err != nil {
		t.Fatalf("session items: %v", err)
	}
	if got[0].StockLeft != -3 {
		t.Fatalf("expected stockLeft -3, got %d", got[0].StockLeft)
	}
}

func TestUpdateSessionTimeValidation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	menu, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("list menu: %v", err)
	}

	session, _, err := svc.StartDay(ctx, domain.StartDayRequest{
		Items: []domain.StartDayItem{{MenuItemID: menu[0].ID, StockIn: 3}},
	})
	if err != nil {
		t.Fatalf("start day: %v", err)
	}

	updated, err := svc.UpdateSessionTime(ctx, session.ID, "2025-03-12T06:00:00Z")
	if err != nil {
		t.Fatalf("update session time: %v", err)
	}
	if !updated.StartTime.Equal(time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start time 06:00 UTC, got %s", updated.StartTime)
	}

	if _, err := svc.UpdateSessionTime(ctx, session.ID, "yesterday at six"); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed start time, got %v", err)
	}
}

func TestSummaryReadsAreIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustRecord(t, svc, cashTransaction("2025-03-12", "50.00"))

	before, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	after, err := svc.DailySummary(ctx, "2025-03-12")
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if before.TotalAmount != after.TotalAmount || before.OrderCount != after.OrderCount {
		t.Fatalf("expected summary reads not to mutate state")
	}
}
