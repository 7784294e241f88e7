package memory

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
	"chaifi/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	usersByID       map[string]domain.User
	userIDByName    map[string]string
	categories      map[string]domain.Category
	menuItems       map[string]domain.MenuItem
	transactions    map[string]domain.Transaction
	dailyByDate     map[string]domain.DailySummary
	weeklyByStart   map[string]domain.WeeklySummary
	monthlyByMonth  map[string]domain.MonthlySummary
	sessionsByID    map[string]domain.InventorySession
	sessionIDByDate map[string]string
	inventoryItems  map[string]domain.InventoryItem
}

func New() *Store {
	return &Store{
		usersByID:       make(map[string]domain.User),
		userIDByName:    make(map[string]string),
		categories:      make(map[string]domain.Category),
		menuItems:       make(map[string]domain.MenuItem),
		transactions:    make(map[string]domain.Transaction),
		dailyByDate:     make(map[string]domain.DailySummary),
		weeklyByStart:   make(map[string]domain.WeeklySummary),
		monthlyByMonth:  make(map[string]domain.MonthlySummary),
		sessionsByID:    make(map[string]domain.InventorySession),
		sessionIDByDate: make(map[string]string),
		inventoryItems:  make(map[string]domain.InventoryItem),
	}
}

// NewSeeded returns a store preloaded with the stall's default accounts,
// categories, and menu.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	for _, u := range store.SeedCredentials() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.Username, err)
		}
		id := xid.New("usr")
		s.usersByID[id] = domain.User{ID: id, Username: u.Username, Password: string(hash), CreatedAt: now}
		s.userIDByName[u.Username] = id
	}

	for _, name := range store.DefaultCategoryNames() {
		id := xid.New("cat")
		s.categories[id] = domain.Category{ID: id, Name: name, SubCategories: []string{}, CreatedAt: now}
	}

	for _, m := range store.DefaultMenuItems() {
		m.ID = xid.New("menu")
		s.menuItems[m.ID] = m
	}

	return s
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userIDByName[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	user := s.usersByID[id]
	return &user, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Username == "" || user.Password == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.userIDByName[user.Username]; exists {
		return nil, store.ErrConflict
	}

	if user.ID == "" {
		user.ID = xid.New("usr")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.usersByID[user.ID] = user
	s.userIDByName[user.Username] = user.ID
	created := user
	return &created, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, cloneCategory(c))
	}
	slices.SortFunc(categories, func(a, b domain.Category) int {
		return cmpString(a.Name, b.Name)
	})
	return categories, nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cloned := cloneCategory(category)
	return &cloned, nil
}

func (s *Store) CreateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.Name == "" {
		return nil, store.ErrInvalidInput
	}
	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return nil, store.ErrConflict
		}
	}

	if category.ID == "" {
		category.ID = xid.New("cat")
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	if category.SubCategories == nil {
		category.SubCategories = []string{}
	}
	s.categories[category.ID] = cloneCategory(category)
	created := cloneCategory(category)
	return &created, nil
}

func (s *Store) UpdateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.categories[category.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if category.Name == "" {
		return nil, store.ErrInvalidInput
	}
	for id, existing := range s.categories {
		if id != category.ID && existing.Name == category.Name {
			return nil, store.ErrConflict
		}
	}

	category.CreatedAt = current.CreatedAt
	if category.SubCategories == nil {
		category.SubCategories = []string{}
	}
	s.categories[category.ID] = cloneCategory(category)
	updated := cloneCategory(category)
	return &updated, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.MenuItem, 0, len(s.menuItems))
	for _, m := range s.menuItems {
		items = append(items, m)
	}
	slices.SortFunc(items, func(a, b domain.MenuItem) int {
		if a.Category == b.Category {
			return cmpString(a.Name, b.Name)
		}
		return cmpString(a.Category, b.Category)
	})
	return items, nil
}

func (s *Store) GetMenuItem(_ context.Context, id string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.menuItems[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Name == "" || item.Category == "" || item.Price < 1 {
		return nil, store.ErrInvalidInput
	}

	if item.ID == "" {
		item.ID = xid.New("menu")
	}
	s.menuItems[item.ID] = item
	created := item
	return &created, nil
}

func (s *Store) UpdateMenuItem(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[item.ID]; !ok {
		return nil, store.ErrNotFound
	}
	if item.Name == "" || item.Category == "" || item.Price < 1 {
		return nil, store.ErrInvalidInput
	}
	s.menuItems[item.ID] = item
	updated := item
	return &updated, nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.menuItems, id)
	return nil
}

func (s *Store) DeleteMenuItems(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if _, ok := s.menuItems[id]; ok {
			delete(s.menuItems, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) DeleteAllMenuItems(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := len(s.menuItems)
	s.menuItems = make(map[string]domain.MenuItem)
	return deleted, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(tx.Items) == 0 || tx.Date == "" {
		return nil, store.ErrInvalidInput
	}

	if tx.ID == "" {
		tx.ID = xid.New("txn")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	s.transactions[tx.ID] = cloneTransaction(tx)
	created := cloneTransaction(tx)
	return &created, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cloned := cloneTransaction(tx)
	return &cloned, nil
}

func (s *Store) ListTransactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]domain.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		txs = append(txs, cloneTransaction(tx))
	}
	sortTransactionsNewest(txs)
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (s *Store) GetTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	return s.GetTransactionsByDateRange(ctx, date, date)
}

func (s *Store) GetTransactionsByDateRange(_ context.Context, from string, to string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]domain.Transaction, 0, 16)
	for _, tx := range s.transactions {
		if tx.Date >= from && tx.Date <= to {
			txs = append(txs, cloneTransaction(tx))
		}
	}
	sortTransactionsNewest(txs)
	return txs, nil
}

func (s *Store) DeleteTransactionsByDate(ctx context.Context, date string) (int, error) {
	return s.DeleteTransactionsByDateRange(ctx, date, date)
}

func (s *Store) DeleteTransactionsByDateRange(_ context.Context, from string, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, tx := range s.transactions {
		if tx.Date >= from && tx.Date <= to {
			delete(s.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) GetDailySummary(_ context.Context, date string) (*domain.DailySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.dailyByDate[date]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &summary, nil
}

func (s *Store) ListDailySummaries(_ context.Context, limit int) ([]domain.DailySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.DailySummary, 0, len(s.dailyByDate))
	for _, summary := range s.dailyByDate {
		summaries = append(summaries, summary)
	}
	slices.SortFunc(summaries, func(a, b domain.DailySummary) int {
		return cmpString(b.Date, a.Date)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *Store) CreateDailySummary(_ context.Context, summary domain.DailySummary) (*domain.DailySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary.Date == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.dailyByDate[summary.Date]; exists {
		return nil, store.ErrConflict
	}

	if summary.ID == "" {
		summary.ID = xid.New("day")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	s.dailyByDate[summary.Date] = summary
	created := summary
	return &created, nil
}

func (s *Store) UpdateDailySummary(_ context.Context, summary domain.DailySummary) (*domain.DailySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.dailyByDate[summary.Date]
	if !ok {
		return nil, store.ErrNotFound
	}
	summary.ID = current.ID
	summary.CreatedAt = current.CreatedAt
	s.dailyByDate[summary.Date] = summary
	updated := summary
	return &updated, nil
}

func (s *Store) DeleteDailySummary(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dailyByDate, date)
	return nil
}

func (s *Store) DeleteDailySummariesInRange(_ context.Context, from string, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for date := range s.dailyByDate {
		if date >= from && date <= to {
			delete(s.dailyByDate, date)
		}
	}
	return nil
}

func (s *Store) GetWeeklySummary(_ context.Context, weekStart string) (*domain.WeeklySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.weeklyByStart[weekStart]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &summary, nil
}

func (s *Store) ListWeeklySummaries(_ context.Context, limit int) ([]domain.WeeklySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.WeeklySummary, 0, len(s.weeklyByStart))
	for _, summary := range s.weeklyByStart {
		summaries = append(summaries, summary)
	}
	slices.SortFunc(summaries, func(a, b domain.WeeklySummary) int {
		return cmpString(b.WeekStart, a.WeekStart)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *Store) CreateWeeklySummary(_ context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary.WeekStart == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.weeklyByStart[summary.WeekStart]; exists {
		return nil, store.ErrConflict
	}

	if summary.ID == "" {
		summary.ID = xid.New("week")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	s.weeklyByStart[summary.WeekStart] = summary
	created := summary
	return &created, nil
}

func (s *Store) UpdateWeeklySummary(_ context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.weeklyByStart[summary.WeekStart]
	if !ok {
		return nil, store.ErrNotFound
	}
	summary.ID = current.ID
	summary.CreatedAt = current.CreatedAt
	s.weeklyByStart[summary.WeekStart] = summary
	updated := summary
	return &updated, nil
}

func (s *Store) DeleteWeeklySummary(_ context.Context, weekStart string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.weeklyByStart, weekStart)
	return nil
}

func (s *Store) DeleteWeeklySummariesInRange(_ context.Context, from string, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for weekStart := range s.weeklyByStart {
		if weekStart >= from && weekStart <= to {
			delete(s.weeklyByStart, weekStart)
		}
	}
	return nil
}

func (s *Store) GetMonthlySummary(_ context.Context, month string) (*domain.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.monthlyByMonth[month]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &summary, nil
}

func (s *Store) ListMonthlySummaries(_ context.Context, limit int) ([]domain.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.MonthlySummary, 0, len(s.monthlyByMonth))
	for _, summary := range s.monthlyByMonth {
		summaries = append(summaries, summary)
	}
	slices.SortFunc(summaries, func(a, b domain.MonthlySummary) int {
		return cmpString(b.Month, a.Month)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *Store) CreateMonthlySummary(_ context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary.Month == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.monthlyByMonth[summary.Month]; exists {
		return nil, store.ErrConflict
	}

	if summary.ID == "" {
		summary.ID = xid.New("month")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	s.monthlyByMonth[summary.Month] = summary
	created := summary
	return &created, nil
}

func (s *Store) UpdateMonthlySummary(_ context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.monthlyByMonth[summary.Month]
	if !ok {
		return nil, store.ErrNotFound
	}
	summary.ID = current.ID
	summary.CreatedAt = current.CreatedAt
	s.monthlyByMonth[summary.Month] = summary
	updated := summary
	return &updated, nil
}

func (s *Store) DeleteMonthlySummary(_ context.Context, month string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.monthlyByMonth, month)
	return nil
}

func (s *Store) CreateInventorySession(_ context.Context, session domain.InventorySession) (*domain.InventorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Date == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.sessionIDByDate[session.Date]; exists {
		return nil, store.ErrConflict
	}

	if session.ID == "" {
		session.ID = xid.New("ses")
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now().UTC()
	}
	s.sessionsByID[session.ID] = cloneSession(session)
	s.sessionIDByDate[session.Date] = session.ID
	created := cloneSession(session)
	return &created, nil
}

func (s *Store) GetInventorySession(_ context.Context, id string) (*domain.InventorySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessionsByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cloned := cloneSession(session)
	return &cloned, nil
}

func (s *Store) GetInventorySessionByDate(_ context.Context, date string) (*domain.InventorySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessionIDByDate[date]
	if !ok {
		return nil, store.ErrNotFound
	}
	session := cloneSession(s.sessionsByID[id])
	return &session, nil
}

func (s *Store) ListInventorySessions(_ context.Context, limit int) ([]domain.InventorySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.InventorySession, 0, len(s.sessionsByID))
	for _, session := range s.sessionsByID {
		sessions = append(sessions, cloneSession(session))
	}
	slices.SortFunc(sessions, func(a, b domain.InventorySession) int {
		return cmpString(b.Date, a.Date)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (s *Store) UpdateInventorySession(_ context.Context, session domain.InventorySession) (*domain.InventorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessionsByID[session.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	session.Date = current.Date
	s.sessionsByID[session.ID] = cloneSession(session)
	updated := cloneSession(session)
	return &updated, nil
}

func (s *Store) CreateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.SessionID == "" || item.MenuItemID == "" || item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	if _, ok := s.sessionsByID[item.SessionID]; !ok {
		return nil, store.ErrNotFound
	}

	if item.ID == "" {
		item.ID = xid.New("inv")
	}
	s.inventoryItems[item.ID] = item
	created := item
	return &created, nil
}

func (s *Store) GetInventoryItem(_ context.Context, id string) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.inventoryItems[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *Store) GetInventoryItemsBySession(_ context.Context, sessionID string) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, 16)
	for _, item := range s.inventoryItems {
		if item.SessionID == sessionID {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b domain.InventoryItem) int {
		return cmpString(a.ID, b.ID)
	})
	return items, nil
}

func (s *Store) GetInventoryItemsWithMenu(ctx context.Context, sessionID string) ([]domain.InventoryItemWithMenu, error) {
	items, err := s.GetInventoryItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := make([]domain.InventoryItemWithMenu, 0, len(items))
	for _, item := range items {
		row := domain.InventoryItemWithMenu{InventoryItem: item}
		if menuItem, ok := s.menuItems[item.MenuItemID]; ok {
			m := menuItem
			row.MenuItem = &m
		}
		joined = append(joined, row)
	}
	return joined, nil
}

func (s *Store) UpdateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.inventoryItems[item.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	item.SessionID = current.SessionID
	item.MenuItemID = current.MenuItemID
	s.inventoryItems[item.ID] = item
	updated := item
	return &updated, nil
}

// CalculateStockOutForSession replays the day's transactions and freezes
// stock-out and stock-left on every item of the session. Stock-left may go
// negative when sales exceed the recorded stock-in.
func (s *Store) CalculateStockOutForSession(_ context.Context, sessionID string, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessionsByID[sessionID]; !ok {
		return store.ErrNotFound
	}

	soldByMenuItem := make(map[string]int)
	for _, tx := range s.transactions {
		if tx.Date != date {
			continue
		}
		for _, line := range tx.Items {
			soldByMenuItem[line.MenuItemID] += line.Quantity
		}
	}

	for id, item := range s.inventoryItems {
		if item.SessionID != sessionID {
			continue
		}
		item.StockOut = soldByMenuItem[item.MenuItemID]
		item.StockLeft = item.StockIn - item.StockOut
		s.inventoryItems[id] = item
	}
	return nil
}

func (s *Store) ClearInventoryByDate(ctx context.Context, date string) error {
	return s.ClearInventoryByDateRange(ctx, date, date)
}

func (s *Store) ClearInventoryByDateRange(_ context.Context, from string, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for date, sessionID := range s.sessionIDByDate {
		if date < from || date > to {
			continue
		}
		for id, item := range s.inventoryItems {
			if item.SessionID == sessionID {
				delete(s.inventoryItems, id)
			}
		}
		delete(s.sessionsByID, sessionID)
		delete(s.sessionIDByDate, date)
	}
	return nil
}

func sortTransactionsNewest(txs []domain.Transaction) {
	slices.SortFunc(txs, func(a, b domain.Transaction) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
}

func cmpString(a string, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func cloneCategory(src domain.Category) domain.Category {
	out := src
	out.SubCategories = slices.Clone(src.SubCategories)
	return out
}

func cloneTransaction(src domain.Transaction) domain.Transaction {
	out := src
	out.Items = slices.Clone(src.Items)
	out.Extras = slices.Clone(src.Extras)
	if src.SplitPayment != nil {
		sp := *src.SplitPayment
		out.SplitPayment = &sp
	}
	if src.Creditor != nil {
		cr := *src.Creditor
		out.Creditor = &cr
	}
	return out
}

func cloneSession(src domain.InventorySession) domain.InventorySession {
	out := src
	if src.EndTime != nil {
		t := *src.EndTime
		out.EndTime = &t
	}
	return out
}
