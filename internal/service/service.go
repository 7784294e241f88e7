package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chaifi/backend/internal/cache"
	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
)

const defaultBillerName = "Sriram"

const (
	cacheKeyMenuSales = "report:menu-sales"
	cacheKeyMenuList  = "menu:list"
)

type Service struct {
	repo  store.Repository
	cache cache.Cache
	now   func() time.Time
}

func New(repo store.Repository, cacheStore cache.Cache) *Service {
	if cacheStore == nil {
		cacheStore = cache.Noop{}
	}
	return &Service{
		repo:  repo,
		cache: cacheStore,
		now:   time.Now,
	}
}

func (s *Service) today() string {
	return s.now().UTC().Format(domain.DateLayout)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", store.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *Service) invalidateReports(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyMenuSales, cacheKeyMenuList); err != nil {
		log.Printf("[service] WARN: cache invalidation failed: %v", err)
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CategoryCreateRequest) (*domain.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, invalidf("category name is required")
	}
	if req.SubCategories == nil {
		req.SubCategories = []string{}
	}

	return s.repo.CreateCategory(ctx, domain.Category{
		Name:          req.Name,
		SubCategories: req.SubCategories,
		CreatedAt:     s.now().UTC(),
	})
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req domain.CategoryUpdateRequest) (*domain.Category, error) {
	existing, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidf("category name is required")
		}
		existing.Name = name
	}
	if req.SubCategories != nil {
		existing.SubCategories = *req.SubCategories
	}

	return s.repo.UpdateCategory(ctx, *existing)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *Service) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *Service) CreateMenuItem(ctx context.Context, req domain.MenuItemCreateRequest) (*domain.MenuItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" {
		return nil, invalidf("menu item name is required")
	}
	if req.Category == "" {
		return nil, invalidf("menu item category is required")
	}
	if req.Price < 1 {
		return nil, invalidf("menu item price must be positive")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	created, err := s.repo.CreateMenuItem(ctx, domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Image:       req.Image,
		Available:   available,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return created, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id string, req domain.MenuItemUpdateRequest) (*domain.MenuItem, error) {
	existing, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidf("menu item name is required")
		}
		existing.Name = name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 1 {
			return nil, invalidf("menu item price must be positive")
		}
		existing.Price = *req.Price
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, invalidf("menu item category is required")
		}
		existing.Category = category
	}
	if req.SubCategory != nil {
		existing.SubCategory = *req.SubCategory
	}
	if req.Image != nil {
		existing.Image = *req.Image
	}
	if req.Available != nil {
		existing.Available = *req.Available
	}

	updated, err := s.repo.UpdateMenuItem(ctx, *existing)
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return updated, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

func (s *Service) DeleteMenuItems(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, invalidf("no menu item ids given")
	}
	deleted, err := s.repo.DeleteMenuItems(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.invalidateReports(ctx)
	return deleted, nil
}

func (s *Service) DeleteAllMenuItems(ctx context.Context) (int, error) {
	deleted, err := s.repo.DeleteAllMenuItems(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidateReports(ctx)
	return deleted, nil
}

// RecordTransaction persists a sale and folds it into the daily, weekly and
// monthly summaries. The three folds are independent writes; if one fails the
// transaction is already stored and the error reports the partial state.
func (s *Service) RecordTransaction(ctx context.Context, req domain.TransactionCreateRequest) (*domain.Transaction, error) {
	tx, err := s.buildTransaction(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTransaction(ctx, *tx)
	if err != nil {
		return nil, err
	}

	if err := s.foldIntoSummaries(ctx, *created); err != nil {
		log.Printf("[service] WARN: summary update failed for transaction %s: %v", created.ID, err)
		return created, fmt.Errorf("transaction %s recorded but summary update failed: %w", created.ID, err)
	}

	s.invalidateReports(ctx)
	return created, nil
}

func (s *Service) buildTransaction(req domain.TransactionCreateRequest) (*domain.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, invalidf("transaction requires at least one item")
	}
	for i, line := range req.Items {
		if line.MenuItemID == "" || line.Name == "" {
			return nil, invalidf("transaction item %d is missing id or name", i)
		}
		if line.Quantity < 1 {
			return nil, invalidf("transaction item %d has non-positive quantity", i)
		}
		if line.Price < 0 {
			return nil, invalidf("transaction item %d has negative price", i)
		}
	}

	switch req.PaymentMethod {
	case domain.PaymentGpay, domain.PaymentCash:
		if req.SplitPayment != nil || req.Creditor != nil {
			return nil, invalidf("%s payment must not carry split or creditor details", req.PaymentMethod)
		}
	case domain.PaymentSplit:
		if req.SplitPayment == nil {
			return nil, invalidf("split payment requires gpay and cash amounts")
		}
		if req.SplitPayment.GpayAmount < 0 || req.SplitPayment.CashAmount < 0 {
			return nil, invalidf("split payment amounts must not be negative")
		}
		if req.Creditor != nil {
			return nil, invalidf("split payment must not carry creditor details")
		}
	case domain.PaymentCreditor:
		if req.Creditor == nil || req.Creditor.Name == "" {
			return nil, invalidf("creditor payment requires creditor details")
		}
		if req.SplitPayment != nil {
			return nil, invalidf("creditor payment must not carry split details")
		}
	default:
		return nil, invalidf("unknown payment method %q", req.PaymentMethod)
	}

	for _, extra := range req.Extras {
		if extra.Name == "" {
			return nil, invalidf("extra charge requires a name")
		}
	}

	total := req.TotalAmount
	if total == 0 {
		for _, line := range req.Items {
			total += line.Price * domain.Amount(line.Quantity)
		}
		for _, extra := range req.Extras {
			total += extra.Amount
		}
	}
	if total < 0 {
		return nil, invalidf("transaction total must not be negative")
	}

	now := s.now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format(domain.DateLayout)
	} else if !domain.ValidDate(date) {
		return nil, invalidf("invalid transaction date %q", date)
	}

	dayName := req.DayName
	clock := req.Time
	if dayName == "" || clock == "" {
		day, _ := time.Parse(domain.DateLayout, date)
		if dayName == "" {
			dayName = domain.DayName(day)
		}
		if clock == "" {
			clock = domain.ClockTime(now)
		}
	}

	billerName := strings.TrimSpace(req.BillerName)
	if billerName == "" {
		billerName = defaultBillerName
	}

	return &domain.Transaction{
		Items:         req.Items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		BillerName:    billerName,
		SplitPayment:  req.SplitPayment,
		Extras:        req.Extras,
		Creditor:      req.Creditor,
		CreatedAt:     now,
		Date:          date,
		DayName:       dayName,
		Time:          clock,
	}, nil
}

// paymentContribution derives the gpay/cash buckets for a transaction.
// Creditor sales accrue to the total only: the money is owed, not collected,
// so a day with credit sales intentionally has total != gpay + cash.
func paymentContribution(tx domain.Transaction) (gpay, cash domain.Amount) {
	switch tx.PaymentMethod {
	case domain.PaymentGpay:
		return tx.TotalAmount, 0
	case domain.PaymentCash:
		return 0, tx.TotalAmount
	case domain.PaymentSplit:
		if tx.SplitPayment != nil {
			return tx.SplitPayment.GpayAmount, tx.SplitPayment.CashAmount
		}
	}
	return 0, 0
}

func (s *Service) foldIntoSummaries(ctx context.Context, tx domain.Transaction) error {
	gpay, cash := paymentContribution(tx)

	if err := s.foldDaily(ctx, tx.Date, tx.TotalAmount, gpay, cash); err != nil {
		return fmt.Errorf("daily: %w", err)
	}

	weekStart, weekEnd, err := domain.WeekBounds(tx.Date)
	if err != nil {
		return err
	}
	if err := s.foldWeekly(ctx, weekStart, weekEnd, tx.TotalAmount, gpay, cash); err != nil {
		return fmt.Errorf("weekly: %w", err)
	}

	if err := s.foldMonthly(ctx, domain.MonthKey(tx.Date), tx.TotalAmount, gpay, cash); err != nil {
		return fmt.Errorf("monthly: %w", err)
	}
	return nil
}

func (s *Service) foldDaily(ctx context.Context, date string, total, gpay, cash domain.Amount) error {
	existing, err := s.repo.GetDailySummary(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		_, err := s.repo.CreateDailySummary(ctx, domain.DailySummary{
			Date:        date,
			TotalAmount: total,
			GpayAmount:  gpay,
			CashAmount:  cash,
			OrderCount:  1,
			CreatedAt:   s.now().UTC(),
		})
		return err
	}
	if err != nil {
		return err
	}

	existing.TotalAmount += total
	existing.GpayAmount += gpay
	existing.CashAmount += cash
	existing.OrderCount++
	_, err = s.repo.UpdateDailySummary(ctx, *existing)
	return err
}

func (s *Service) foldWeekly(ctx context.Context, weekStart, weekEnd string, total, gpay, cash domain.Amount) error {
	existing, err := s.repo.GetWeeklySummary(ctx, weekStart)
	if errors.Is(err, store.ErrNotFound) {
		_, err := s.repo.CreateWeeklySummary(ctx, domain.WeeklySummary{
			WeekStart:   weekStart,
			WeekEnd:     weekEnd,
			TotalAmount: total,
			GpayAmount:  gpay,
			CashAmount:  cash,
			OrderCount:  1,
			CreatedAt:   s.now().UTC(),
		})
		return err
	}
	if err != nil {
		return err
	}

	existing.TotalAmount += total
	existing.GpayAmount += gpay
	existing.CashAmount += cash
	existing.OrderCount++
	_, err = s.repo.UpdateWeeklySummary(ctx, *existing)
	return err
}

func (s *Service) foldMonthly(ctx context.Context, month string, total, gpay, cash domain.Amount) error {
	existing, err := s.repo.GetMonthlySummary(ctx, month)
	if errors.Is(err, store.ErrNotFound) {
		_, err := s.repo.CreateMonthlySummary(ctx, domain.MonthlySummary{
			Month:       month,
			TotalAmount: total,
			GpayAmount:  gpay,
			CashAmount:  cash,
			OrderCount:  1,
			CreatedAt:   s.now().UTC(),
		})
		return err
	}
	if err != nil {
		return err
	}

	existing.TotalAmount += total
	existing.GpayAmount += gpay
	existing.CashAmount += cash
	existing.OrderCount++
	_, err = s.repo.UpdateMonthlySummary(ctx, *existing)
	return err
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, limit)
}

func (s *Service) TransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	if !domain.ValidDate(date) {
		return nil, invalidf("invalid date %q", date)
	}
	return s.repo.GetTransactionsByDate(ctx, date)
}

func (s *Service) TransactionsByDateRange(ctx context.Context, from, to string) ([]domain.Transaction, error) {
	if !domain.ValidDate(from) || !domain.ValidDate(to) {
		return nil, invalidf("invalid date range %q..%q", from, to)
	}
	if from > to {
		return nil, invalidf("range start %s is after end %s", from, to)
	}
	return s.repo.GetTransactionsByDateRange(ctx, from, to)
}

func (s *Service) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	if !domain.ValidDate(date) {
		return nil, invalidf("invalid date %q", date)
	}
	return s.repo.GetDailySummary(ctx, date)
}

func (s *Service) DailySummaries(ctx context.Context, limit int) ([]domain.DailySummary, error) {
	return s.repo.ListDailySummaries(ctx, limit)
}

func (s *Service) WeeklySummary(ctx context.Context, weekStart string) (*domain.WeeklySummary, error) {
	if !domain.ValidDate(weekStart) {
		return nil, invalidf("invalid week start %q", weekStart)
	}
	return s.repo.GetWeeklySummary(ctx, weekStart)
}

func (s *Service) WeeklySummaries(ctx context.Context, limit int) ([]domain.WeeklySummary, error) {
	return s.repo.ListWeeklySummaries(ctx, limit)
}

func (s *Service) MonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error) {
	if !domain.ValidMonth(month) {
		return nil, invalidf("invalid month %q", month)
	}
	return s.repo.GetMonthlySummary(ctx, month)
}

func (s *Service) MonthlySummaries(ctx context.Context, limit int) ([]domain.MonthlySummary, error) {
	return s.repo.ListMonthlySummaries(ctx, limit)
}

// ClearData deletes a period's transactions, inventory and summaries, and
// subtracts the period's snapshot from the enclosing summaries so the
// remaining aggregates stay consistent with the remaining transactions.
func (s *Service) ClearData(ctx context.Context, period string, date string) error {
	switch period {
	case "day":
		return s.clearByDay(ctx, date)
	case "week":
		return s.clearByWeek(ctx, date)
	case "month":
		return s.clearByMonth(ctx, date)
	default:
		return invalidf("unknown period %q", period)
	}
}

func (s *Service) clearByDay(ctx context.Context, date string) error {
	if !domain.ValidDate(date) {
		return invalidf("invalid date %q", date)
	}

	// Snapshot before any mutation: this is the amount to subtract upward.
	snapshot, err := s.repo.GetDailySummary(ctx, date)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.repo.DeleteTransactionsByDate(ctx, date); err != nil {
		return err
	}
	if err := s.repo.ClearInventoryByDate(ctx, date); err != nil {
		return err
	}

	if snapshot != nil {
		weekStart, _, err := domain.WeekBounds(date)
		if err != nil {
			return err
		}
		if err := s.subtractFromWeekly(ctx, weekStart, snapshot.TotalAmount, snapshot.GpayAmount, snapshot.CashAmount, snapshot.OrderCount); err != nil {
			return err
		}
		if err := s.subtractFromMonthly(ctx, domain.MonthKey(date), snapshot.TotalAmount, snapshot.GpayAmount, snapshot.CashAmount, snapshot.OrderCount); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteDailySummary(ctx, date); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	log.Printf("[service] cleared day %s", date)
	return nil
}

func (s *Service) clearByWeek(ctx context.Context, weekStart string) error {
	if !domain.ValidDate(weekStart) {
		return invalidf("invalid week start %q", weekStart)
	}
	start, _ := time.Parse(domain.DateLayout, weekStart)
	weekEnd := start.AddDate(0, 0, 6).Format(domain.DateLayout)

	snapshot, err := s.repo.GetWeeklySummary(ctx, weekStart)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.repo.DeleteTransactionsByDateRange(ctx, weekStart, weekEnd); err != nil {
		return err
	}
	if err := s.repo.ClearInventoryByDateRange(ctx, weekStart, weekEnd); err != nil {
		return err
	}
	if err := s.repo.DeleteDailySummariesInRange(ctx, weekStart, weekEnd); err != nil {
		return err
	}

	if snapshot != nil {
		if err := s.subtractFromMonthly(ctx, domain.MonthKey(weekStart), snapshot.TotalAmount, snapshot.GpayAmount, snapshot.CashAmount, snapshot.OrderCount); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteWeeklySummary(ctx, weekStart); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	log.Printf("[service] cleared week %s..%s", weekStart, weekEnd)
	return nil
}

func (s *Service) clearByMonth(ctx context.Context, month string) error {
	if !domain.ValidMonth(month) {
		return invalidf("invalid month %q", month)
	}
	from, to := domain.MonthRange(month)

	if _, err := s.repo.DeleteTransactionsByDateRange(ctx, from, to); err != nil {
		return err
	}
	if err := s.repo.ClearInventoryByDateRange(ctx, from, to); err != nil {
		return err
	}
	if err := s.repo.DeleteDailySummariesInRange(ctx, from, to); err != nil {
		return err
	}
	if err := s.repo.DeleteWeeklySummariesInRange(ctx, from, to); err != nil {
		return err
	}
	// No coarser level exists above months, so nothing is subtracted upward.
	if err := s.repo.DeleteMonthlySummary(ctx, month); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	log.Printf("[service] cleared month %s", month)
	return nil
}

func (s *Service) subtractFromWeekly(ctx context.Context, weekStart string, total, gpay, cash domain.Amount, orders int) error {
	existing, err := s.repo.GetWeeklySummary(ctx, weekStart)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	existing.TotalAmount -= total
	existing.GpayAmount -= gpay
	existing.CashAmount -= cash
	existing.OrderCount -= orders
	_, err = s.repo.UpdateWeeklySummary(ctx, *existing)
	return err
}

func (s *Service) subtractFromMonthly(ctx context.Context, month string, total, gpay, cash domain.Amount, orders int) error {
	existing, err := s.repo.GetMonthlySummary(ctx, month)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	existing.TotalAmount -= total
	existing.GpayAmount -= gpay
	existing.CashAmount -= cash
	existing.OrderCount -= orders
	_, err = s.repo.UpdateMonthlySummary(ctx, *existing)
	return err
}

// StartDay opens today's inventory session in billing state and records the
// opening stock counts. There is at most one session per calendar date.
func (s *Service) StartDay(ctx context.Context, req domain.StartDayRequest) (*domain.InventorySession, []domain.InventoryItem, error) {
	if len(req.Items) == 0 {
		return nil, nil, invalidf("inventory session requires at least one item")
	}
	for i, item := range req.Items {
		if item.MenuItemID == "" {
			return nil, nil, invalidf("inventory item %d is missing menuItemId", i)
		}
		if item.StockIn < 0 {
			return nil, nil, invalidf("inventory item %d has negative stockIn", i)
		}
	}

	today := s.today()
	if _, err := s.repo.GetInventorySessionByDate(ctx, today); err == nil {
		return nil, nil, fmt.Errorf("%w: inventory session already exists for %s", store.ErrConflict, today)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}

	session, err := s.repo.CreateInventorySession(ctx, domain.InventorySession{
		Date:      today,
		Status:    domain.SessionBilling,
		StartTime: s.now().UTC(),
	})
	if err != nil {
		return nil, nil, err
	}

	items := make([]domain.InventoryItem, 0, len(req.Items))
	for _, in := range req.Items {
		created, err := s.repo.CreateInventoryItem(ctx, domain.InventoryItem{
			SessionID:  session.ID,
			MenuItemID: in.MenuItemID,
			StockIn:    in.StockIn,
			StockOut:   0,
			StockLeft:  in.StockIn,
		})
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *created)
	}

	log.Printf("[service] inventory session started date=%s items=%d", today, len(items))
	return session, items, nil
}

// EndDay freezes today's session: stock-out is derived by replaying the
// day's transactions, then the session becomes terminal.
func (s *Service) EndDay(ctx context.Context, sessionID string) (*domain.InventorySession, error) {
	today := s.today()
	session, err := s.repo.GetInventorySessionByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	if sessionID != "" && session.ID != sessionID {
		return nil, store.ErrNotFound
	}
	if session.Status == domain.SessionEnded {
		return nil, fmt.Errorf("%w: inventory session for %s already ended", store.ErrConflict, today)
	}

	if err := s.repo.CalculateStockOutForSession(ctx, session.ID, session.Date); err != nil {
		return nil, err
	}

	endTime := s.now().UTC()
	session.Status = domain.SessionEnded
	session.EndTime = &endTime
	updated, err := s.repo.UpdateInventorySession(ctx, *session)
	if err != nil {
		return nil, err
	}

	log.Printf("[service] inventory session ended date=%s id=%s", today, session.ID)
	return updated, nil
}

func (s *Service) CurrentSession(ctx context.Context) (*domain.InventorySession, error) {
	return s.repo.GetInventorySessionByDate(ctx, s.today())
}

func (s *Service) SessionByDate(ctx context.Context, date string) (*domain.InventorySession, error) {
	if !domain.ValidDate(date) {
		return nil, invalidf("invalid date %q", date)
	}
	return s.repo.GetInventorySessionByDate(ctx, date)
}

func (s *Service) Sessions(ctx context.Context, limit int) ([]domain.InventorySession, error) {
	return s.repo.ListInventorySessions(ctx, limit)
}

func (s *Service) SessionItems(ctx context.Context, sessionID string) ([]domain.InventoryItemWithMenu, error) {
	return s.repo.GetInventoryItemsWithMenu(ctx, sessionID)
}

// UpdateStockIn edits the opening count of one item while the session is
// still live. Stock-left is recomputed from the already-recorded stock-out.
func (s *Service) UpdateStockIn(ctx context.Context, itemID string, stockIn int) (*domain.InventoryItem, error) {
	if stockIn < 0 {
		return nil, invalidf("stockIn must not be negative")
	}

	item, err := s.repo.GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetInventorySession(ctx, item.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionEnded {
		return nil, fmt.Errorf("%w: inventory session %s already ended", store.ErrConflict, session.ID)
	}

	item.StockIn = stockIn
	item.StockLeft = stockIn - item.StockOut
	return s.repo.UpdateInventoryItem(ctx, *item)
}

func (s *Service) UpdateSessionTime(ctx context.Context, sessionID string, startTime string) (*domain.InventorySession, error) {
	parsed, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, invalidf("invalid startTime %q", startTime)
	}

	session, err := s.repo.GetInventorySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionEnded {
		return nil, fmt.Errorf("%w: inventory session %s already ended", store.ErrConflict, sessionID)
	}

	session.StartTime = parsed.UTC()
	return s.repo.UpdateInventorySession(ctx, *session)
}

func (s *Service) ClearInventoryByDate(ctx context.Context, date string) error {
	if !domain.ValidDate(date) {
		return invalidf("invalid date %q", date)
	}
	return s.repo.ClearInventoryByDate(ctx, date)
}
