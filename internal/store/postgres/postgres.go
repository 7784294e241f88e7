package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
	"chaifi/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.seedDefaults(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			sub_categories JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_paise BIGINT NOT NULL,
			category TEXT NOT NULL,
			sub_category TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			items JSONB NOT NULL,
			total_paise BIGINT NOT NULL,
			payment_method TEXT NOT NULL,
			biller_name TEXT NOT NULL,
			split_payment JSONB,
			extras JSONB NOT NULL DEFAULT '[]',
			creditor JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			date TEXT NOT NULL,
			day_name TEXT NOT NULL,
			bill_time TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions (date)`,
		`CREATE TABLE IF NOT EXISTS daily_summaries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			total_paise BIGINT NOT NULL,
			gpay_paise BIGINT NOT NULL,
			cash_paise BIGINT NOT NULL,
			order_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS weekly_summaries (
			id TEXT PRIMARY KEY,
			week_start TEXT NOT NULL UNIQUE,
			week_end TEXT NOT NULL,
			total_paise BIGINT NOT NULL,
			gpay_paise BIGINT NOT NULL,
			cash_paise BIGINT NOT NULL,
			order_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS monthly_summaries (
			id TEXT PRIMARY KEY,
			month TEXT NOT NULL UNIQUE,
			total_paise BIGINT NOT NULL,
			gpay_paise BIGINT NOT NULL,
			cash_paise BIGINT NOT NULL,
			order_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_sessions (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES inventory_sessions(id) ON DELETE CASCADE,
			menu_item_id TEXT NOT NULL,
			stock_in INT NOT NULL,
			stock_out INT NOT NULL,
			stock_left INT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS inventory_items_session_idx ON inventory_items (session_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedDefaults(ctx context.Context) error {
	now := time.Now().UTC()

	var userCount int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&userCount); err != nil {
		return err
	}
	if userCount == 0 {
		for _, u := range store.SeedCredentials() {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			_, err = s.db.ExecContext(ctx, `
				INSERT INTO users (id, username, password, created_at)
				VALUES ($1,$2,$3,$4)
			`, xid.New("usr"), u.Username, string(hash), now)
			if err != nil {
				return err
			}
		}
		log.Println("[postgres-store] seeded default users")
	}

	var categoryCount int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM categories`).Scan(&categoryCount); err != nil {
		return err
	}
	if categoryCount == 0 {
		for _, name := range store.DefaultCategoryNames() {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO categories (id, name, sub_categories, created_at)
				VALUES ($1,$2,'[]',$3)
			`, xid.New("cat"), name, now)
			if err != nil {
				return err
			}
		}
	}

	var menuCount int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM menu_items`).Scan(&menuCount); err != nil {
		return err
	}
	if menuCount == 0 {
		for _, item := range store.DefaultMenuItems() {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO menu_items (id, name, description, price_paise, category, sub_category, image, available)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			`, xid.New("menu"), item.Name, item.Description, int64(item.Price), item.Category, item.SubCategory, item.Image, item.Available)
			if err != nil {
				return err
			}
		}
		log.Println("[postgres-store] seeded default menu")
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *Store) getUser(ctx context.Context, column string, value string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, username, password, created_at
		FROM users
		WHERE %s = $1
	`, column), value).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Username == "" || user.Password == "" {
		return nil, store.ErrInvalidInput
	}
	if user.ID == "" {
		user.ID = xid.New("usr")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, created_at)
		VALUES ($1,$2,$3,$4)
	`, user.ID, user.Username, user.Password, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sub_categories, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, 8)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sub_categories, created_at
		FROM categories
		WHERE id = $1
	`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, store.ErrInvalidInput
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
	subs, err := json.Marshal(category.SubCategories)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, sub_categories, created_at)
		VALUES ($1,$2,$3,$4)
	`, category.ID, category.Name, subs, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if category.SubCategories == nil {
		category.SubCategories = []string{}
	}
	subs, err := json.Marshal(category.SubCategories)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $2, sub_categories = $3
		WHERE id = $1
	`, category.ID, category.Name, subs)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, category.ID)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price_paise, category, sub_category, image, available
		FROM menu_items
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0, 32)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category, &item.SubCategory, &item.Image, &item.Available); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_paise, category, sub_category, image, available
		FROM menu_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category, &item.SubCategory, &item.Image, &item.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" || item.Category == "" || item.Price < 1 {
		return nil, store.ErrInvalidInput
	}
	if item.ID == "" {
		item.ID = xid.New("menu")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, price_paise, category, sub_category, image, available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, item.ID, item.Name, item.Description, int64(item.Price), item.Category, item.SubCategory, item.Image, item.Available)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" || item.Category == "" || item.Price < 1 {
		return nil, store.ErrInvalidInput
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price_paise = $4, category = $5, sub_category = $6, image = $7, available = $8
		WHERE id = $1
	`, item.ID, item.Name, item.Description, int64(item.Price), item.Category, item.SubCategory, item.Image, item.Available)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteMenuItems(ctx context.Context, ids []string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (s *Store) DeleteAllMenuItems(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_items`)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if len(tx.Items) == 0 || tx.Date == "" {
		return nil, store.ErrInvalidInput
	}
	if tx.ID == "" {
		tx.ID = xid.New("txn")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	if tx.Extras == nil {
		tx.Extras = []domain.Extra{}
	}

	items, err := json.Marshal(tx.Items)
	if err != nil {
		return nil, err
	}
	extras, err := json.Marshal(tx.Extras)
	if err != nil {
		return nil, err
	}
	split, err := jsonOrNull(tx.SplitPayment)
	if err != nil {
		return nil, err
	}
	creditor, err := jsonOrNull(tx.Creditor)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, items, total_paise, payment_method, biller_name, split_payment, extras, creditor, created_at, date, day_name, bill_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, tx.ID, items, int64(tx.TotalAmount), tx.PaymentMethod, tx.BillerName, split, extras, creditor, tx.CreatedAt, tx.Date, tx.DayName, tx.Time)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &tx, nil
}

const transactionColumns = `id, items, total_paise, payment_method, biller_name, split_payment, extras, creditor, created_at, date, day_name, bill_time`

func (s *Store) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
	`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (s *Store) GetTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	return s.GetTransactionsByDateRange(ctx, date, date)
}

func (s *Store) GetTransactionsByDateRange(ctx context.Context, from string, to string) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE date >= $1 AND date <= $2
		ORDER BY created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (s *Store) DeleteTransactionsByDate(ctx context.Context, date string) (int, error) {
	return s.DeleteTransactionsByDateRange(ctx, date, date)
}

func (s *Store) DeleteTransactionsByDateRange(ctx context.Context, from string, to string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE date >= $1 AND date <= $2`, from, to)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (s *Store) GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	var summary domain.DailySummary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM daily_summaries
		WHERE date = $1
	`, date).Scan(&summary.ID, &summary.Date, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) ListDailySummaries(ctx context.Context, limit int) ([]domain.DailySummary, error) {
	query := `
		SELECT id, date, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM daily_summaries
		ORDER BY date DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.DailySummary, 0, 32)
	for rows.Next() {
		var summary domain.DailySummary
		if err := rows.Scan(&summary.ID, &summary.Date, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) CreateDailySummary(ctx context.Context, summary domain.DailySummary) (*domain.DailySummary, error) {
	if summary.Date == "" {
		return nil, store.ErrInvalidInput
	}
	if summary.ID == "" {
		summary.ID = xid.New("day")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_summaries (id, date, total_paise, gpay_paise, cash_paise, order_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, summary.ID, summary.Date, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount, summary.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) UpdateDailySummary(ctx context.Context, summary domain.DailySummary) (*domain.DailySummary, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE daily_summaries
		SET total_paise = $2, gpay_paise = $3, cash_paise = $4, order_count = $5
		WHERE date = $1
	`, summary.Date, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetDailySummary(ctx, summary.Date)
}

func (s *Store) DeleteDailySummary(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_summaries WHERE date = $1`, date)
	return err
}

func (s *Store) DeleteDailySummariesInRange(ctx context.Context, from string, to string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_summaries WHERE date >= $1 AND date <= $2`, from, to)
	return err
}

func (s *Store) GetWeeklySummary(ctx context.Context, weekStart string) (*domain.WeeklySummary, error) {
	var summary domain.WeeklySummary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, week_start, week_end, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM weekly_summaries
		WHERE week_start = $1
	`, weekStart).Scan(&summary.ID, &summary.WeekStart, &summary.WeekEnd, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) ListWeeklySummaries(ctx context.Context, limit int) ([]domain.WeeklySummary, error) {
	query := `
		SELECT id, week_start, week_end, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM weekly_summaries
		ORDER BY week_start DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.WeeklySummary, 0, 16)
	for rows.Next() {
		var summary domain.WeeklySummary
		if err := rows.Scan(&summary.ID, &summary.WeekStart, &summary.WeekEnd, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) CreateWeeklySummary(ctx context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error) {
	if summary.WeekStart == "" {
		return nil, store.ErrInvalidInput
	}
	if summary.ID == "" {
		summary.ID = xid.New("week")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weekly_summaries (id, week_start, week_end, total_paise, gpay_paise, cash_paise, order_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, summary.ID, summary.WeekStart, summary.WeekEnd, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount, summary.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) UpdateWeeklySummary(ctx context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE weekly_summaries
		SET total_paise = $2, gpay_paise = $3, cash_paise = $4, order_count = $5
		WHERE week_start = $1
	`, summary.WeekStart, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetWeeklySummary(ctx, summary.WeekStart)
}

func (s *Store) DeleteWeeklySummary(ctx context.Context, weekStart string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM weekly_summaries WHERE week_start = $1`, weekStart)
	return err
}

func (s *Store) DeleteWeeklySummariesInRange(ctx context.Context, from string, to string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM weekly_summaries WHERE week_start >= $1 AND week_start <= $2`, from, to)
	return err
}

func (s *Store) GetMonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error) {
	var summary domain.MonthlySummary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, month, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM monthly_summaries
		WHERE month = $1
	`, month).Scan(&summary.ID, &summary.Month, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) ListMonthlySummaries(ctx context.Context, limit int) ([]domain.MonthlySummary, error) {
	query := `
		SELECT id, month, total_paise, gpay_paise, cash_paise, order_count, created_at
		FROM monthly_summaries
		ORDER BY month DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.MonthlySummary, 0, 12)
	for rows.Next() {
		var summary domain.MonthlySummary
		if err := rows.Scan(&summary.ID, &summary.Month, &summary.TotalAmount, &summary.GpayAmount, &summary.CashAmount, &summary.OrderCount, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) CreateMonthlySummary(ctx context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error) {
	if summary.Month == "" {
		return nil, store.ErrInvalidInput
	}
	if summary.ID == "" {
		summary.ID = xid.New("month")
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monthly_summaries (id, month, total_paise, gpay_paise, cash_paise, order_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, summary.ID, summary.Month, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount, summary.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Store) UpdateMonthlySummary(ctx context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE monthly_summaries
		SET total_paise = $2, gpay_paise = $3, cash_paise = $4, order_count = $5
		WHERE month = $1
	`, summary.Month, int64(summary.TotalAmount), int64(summary.GpayAmount), int64(summary.CashAmount), summary.OrderCount)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetMonthlySummary(ctx, summary.Month)
}

func (s *Store) DeleteMonthlySummary(ctx context.Context, month string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM monthly_summaries WHERE month = $1`, month)
	return err
}

func (s *Store) CreateInventorySession(ctx context.Context, session domain.InventorySession) (*domain.InventorySession, error) {
	if session.Date == "" {
		return nil, store.ErrInvalidInput
	}
	if session.ID == "" {
		session.ID = xid.New("ses")
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_sessions (id, date, status, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5)
	`, session.ID, session.Date, session.Status, session.StartTime, nullTime(session.EndTime))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &session, nil
}

func (s *Store) GetInventorySession(ctx context.Context, id string) (*domain.InventorySession, error) {
	return s.getSession(ctx, "id", id)
}

func (s *Store) GetInventorySessionByDate(ctx context.Context, date string) (*domain.InventorySession, error) {
	return s.getSession(ctx, "date", date)
}

func (s *Store) getSession(ctx context.Context, column string, value string) (*domain.InventorySession, error) {
	var session domain.InventorySession
	var endTime sql.NullTime
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, date, status, start_time, end_time
		FROM inventory_sessions
		WHERE %s = $1
	`, column), value).Scan(&session.ID, &session.Date, &session.Status, &session.StartTime, &endTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		session.EndTime = &t
	}
	return &session, nil
}

func (s *Store) ListInventorySessions(ctx context.Context, limit int) ([]domain.InventorySession, error) {
	query := `
		SELECT id, date, status, start_time, end_time
		FROM inventory_sessions
		ORDER BY date DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.InventorySession, 0, 16)
	for rows.Next() {
		var session domain.InventorySession
		var endTime sql.NullTime
		if err := rows.Scan(&session.ID, &session.Date, &session.Status, &session.StartTime, &endTime); err != nil {
			return nil, err
		}
		if endTime.Valid {
			t := endTime.Time
			session.EndTime = &t
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) UpdateInventorySession(ctx context.Context, session domain.InventorySession) (*domain.InventorySession, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory_sessions
		SET status = $2, start_time = $3, end_time = $4
		WHERE id = $1
	`, session.ID, session.Status, session.StartTime, nullTime(session.EndTime))
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetInventorySession(ctx, session.ID)
}

func (s *Store) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.SessionID == "" || item.MenuItemID == "" || item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	if item.ID == "" {
		item.ID = xid.New("inv")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (id, session_id, menu_item_id, stock_in, stock_out, stock_left)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, item.ID, item.SessionID, item.MenuItemID, item.StockIn, item.StockOut, item.StockLeft)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, menu_item_id, stock_in, stock_out, stock_left
		FROM inventory_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.SessionID, &item.MenuItemID, &item.StockIn, &item.StockOut, &item.StockLeft)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetInventoryItemsBySession(ctx context.Context, sessionID string) ([]domain.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, menu_item_id, stock_in, stock_out, stock_left
		FROM inventory_items
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 16)
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.SessionID, &item.MenuItemID, &item.StockIn, &item.StockOut, &item.StockLeft); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetInventoryItemsWithMenu(ctx context.Context, sessionID string) ([]domain.InventoryItemWithMenu, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.session_id, i.menu_item_id, i.stock_in, i.stock_out, i.stock_left,
		       m.id, m.name, m.description, m.price_paise, m.category, m.sub_category, m.image, m.available
		FROM inventory_items i
		LEFT JOIN menu_items m ON m.id = i.menu_item_id
		WHERE i.session_id = $1
		ORDER BY i.id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	joined := make([]domain.InventoryItemWithMenu, 0, 16)
	for rows.Next() {
		var row domain.InventoryItemWithMenu
		var menuID, menuName, menuDescription, menuCategory, menuSubCategory, menuImage sql.NullString
		var menuPrice sql.NullInt64
		var menuAvailable sql.NullBool
		err := rows.Scan(
			&row.ID, &row.SessionID, &row.MenuItemID, &row.StockIn, &row.StockOut, &row.StockLeft,
			&menuID, &menuName, &menuDescription, &menuPrice, &menuCategory, &menuSubCategory, &menuImage, &menuAvailable,
		)
		if err != nil {
			return nil, err
		}
		if menuID.Valid {
			row.MenuItem = &domain.MenuItem{
				ID:          menuID.String,
				Name:        menuName.String,
				Description: menuDescription.String,
				Price:       domain.Amount(menuPrice.Int64),
				Category:    menuCategory.String,
				SubCategory: menuSubCategory.String,
				Image:       menuImage.String,
				Available:   menuAvailable.Bool,
			}
		}
		joined = append(joined, row)
	}
	return joined, rows.Err()
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET stock_in = $2, stock_out = $3, stock_left = $4
		WHERE id = $1
	`, item.ID, item.StockIn, item.StockOut, item.StockLeft)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetInventoryItem(ctx, item.ID)
}

// CalculateStockOutForSession replays the day's transactions and freezes
// stock-out and stock-left on every item of the session.
func (s *Store) CalculateStockOutForSession(ctx context.Context, sessionID string, date string) error {
	if _, err := s.GetInventorySession(ctx, sessionID); err != nil {
		return err
	}

	txs, err := s.GetTransactionsByDate(ctx, date)
	if err != nil {
		return err
	}
	soldByMenuItem := make(map[string]int)
	for _, tx := range txs {
		for _, line := range tx.Items {
			soldByMenuItem[line.MenuItemID] += line.Quantity
		}
	}

	items, err := s.GetInventoryItemsBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, item := range items {
		stockOut := soldByMenuItem[item.MenuItemID]
		_, err := s.db.ExecContext(ctx, `
			UPDATE inventory_items
			SET stock_out = $2, stock_left = $3
			WHERE id = $1
		`, item.ID, stockOut, item.StockIn-stockOut)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ClearInventoryByDate(ctx context.Context, date string) error {
	return s.ClearInventoryByDateRange(ctx, date, date)
}

func (s *Store) ClearInventoryByDateRange(ctx context.Context, from string, to string) error {
	// inventory_items rows go with their session via ON DELETE CASCADE.
	_, err := s.db.ExecContext(ctx, `DELETE FROM inventory_sessions WHERE date >= $1 AND date <= $2`, from, to)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	var subs []byte
	if err := row.Scan(&category.ID, &category.Name, &subs, &category.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subs, &category.SubCategories); err != nil {
		return nil, err
	}
	return &category, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var items, extras []byte
	var split, creditor []byte
	err := row.Scan(&tx.ID, &items, &tx.TotalAmount, &tx.PaymentMethod, &tx.BillerName, &split, &extras, &creditor, &tx.CreatedAt, &tx.Date, &tx.DayName, &tx.Time)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &tx.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(extras, &tx.Extras); err != nil {
		return nil, err
	}
	if len(split) > 0 {
		tx.SplitPayment = new(domain.SplitPayment)
		if err := json.Unmarshal(split, tx.SplitPayment); err != nil {
			return nil, err
		}
	}
	if len(creditor) > 0 {
		tx.Creditor = new(domain.CreditorInfo)
		if err := json.Unmarshal(creditor, tx.Creditor); err != nil {
			return nil, err
		}
	}
	return &tx, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0, 64)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func jsonOrNull(v any) (any, error) {
	switch val := v.(type) {
	case *domain.SplitPayment:
		if val == nil {
			return nil, nil
		}
	case *domain.CreditorInfo:
		if val == nil {
			return nil, nil
		}
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func nullTime(val *time.Time) any {
	if val == nil {
		return nil
	}
	return *val
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
