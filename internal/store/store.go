package store

import (
	"context"
	"errors"

	"chaifi/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Repository is the storage port for the stall. Three backends satisfy it:
// the in-process map store, the MongoDB store, and the Postgres store. It is
// pure storage: summary folding and rollback arithmetic live in the service,
// except CalculateStockOutForSession which replays the day's transactions
// inside the backend so the item updates stay close to the data.
type Repository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	DeleteMenuItems(ctx context.Context, ids []string) (int, error)
	DeleteAllMenuItems(ctx context.Context) (int, error)

	CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
	GetTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error)
	GetTransactionsByDateRange(ctx context.Context, from string, to string) ([]domain.Transaction, error)

	GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error)
	ListDailySummaries(ctx context.Context, limit int) ([]domain.DailySummary, error)
	CreateDailySummary(ctx context.Context, summary domain.DailySummary) (*domain.DailySummary, error)
	UpdateDailySummary(ctx context.Context, summary domain.DailySummary) (*domain.DailySummary, error)
	DeleteDailySummary(ctx context.Context, date string) error
	DeleteDailySummariesInRange(ctx context.Context, from string, to string) error

	GetWeeklySummary(ctx context.Context, weekStart string) (*domain.WeeklySummary, error)
	ListWeeklySummaries(ctx context.Context, limit int) ([]domain.WeeklySummary, error)
	CreateWeeklySummary(ctx context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error)
	UpdateWeeklySummary(ctx context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error)
	DeleteWeeklySummary(ctx context.Context, weekStart string) error
	DeleteWeeklySummariesInRange(ctx context.Context, from string, to string) error

	GetMonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error)
	ListMonthlySummaries(ctx context.Context, limit int) ([]domain.MonthlySummary, error)
	CreateMonthlySummary(ctx context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error)
	UpdateMonthlySummary(ctx context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error)
	DeleteMonthlySummary(ctx context.Context, month string) error

	DeleteTransactionsByDate(ctx context.Context, date string) (int, error)
	DeleteTransactionsByDateRange(ctx context.Context, from string, to string) (int, error)

	CreateInventorySession(ctx context.Context, session domain.InventorySession) (*domain.InventorySession, error)
	GetInventorySession(ctx context.Context, id string) (*domain.InventorySession, error)
	GetInventorySessionByDate(ctx context.Context, date string) (*domain.InventorySession, error)
	ListInventorySessions(ctx context.Context, limit int) ([]domain.InventorySession, error)
	UpdateInventorySession(ctx context.Context, session domain.InventorySession) (*domain.InventorySession, error)
	CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	GetInventoryItemsBySession(ctx context.Context, sessionID string) ([]domain.InventoryItem, error)
	GetInventoryItemsWithMenu(ctx context.Context, sessionID string) ([]domain.InventoryItemWithMenu, error)
	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	CalculateStockOutForSession(ctx context.Context, sessionID string, date string) error
	ClearInventoryByDate(ctx context.Context, date string) error
	ClearInventoryByDateRange(ctx context.Context, from string, to string) error
}
