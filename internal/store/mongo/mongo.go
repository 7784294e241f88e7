package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/store"
	"chaifi/backend/internal/xid"
)

type Store struct {
	client            *mongo.Client
	users             *mongo.Collection
	categories        *mongo.Collection
	menuItems         *mongo.Collection
	transactions      *mongo.Collection
	dailySummaries    *mongo.Collection
	weeklySummaries   *mongo.Collection
	monthlySummaries  *mongo.Collection
	inventorySessions *mongo.Collection
	inventoryItems    *mongo.Collection
}

// New connects, ensures indexes, and seeds default data into an empty
// database. A connection failure is returned to the caller; there is no
// silent fallback.
func New(ctx context.Context, uri string, databaseName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	s := &Store{
		client:            client,
		users:             db.Collection("users"),
		categories:        db.Collection("categories"),
		menuItems:         db.Collection("menu_items"),
		transactions:      db.Collection("transactions"),
		dailySummaries:    db.Collection("daily_summaries"),
		weeklySummaries:   db.Collection("weekly_summaries"),
		monthlySummaries:  db.Collection("monthly_summaries"),
		inventorySessions: db.Collection("inventory_sessions"),
		inventoryItems:    db.Collection("inventory_items"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	if err := s.seedDefaults(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := s.users.Indexes().CreateOne(ctx, unique("username")); err != nil {
		return err
	}
	if _, err := s.categories.Indexes().CreateOne(ctx, unique("name")); err != nil {
		return err
	}
	if _, err := s.transactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return err
	}
	if _, err := s.dailySummaries.Indexes().CreateOne(ctx, unique("date")); err != nil {
		return err
	}
	if _, err := s.weeklySummaries.Indexes().CreateOne(ctx, unique("weekStart")); err != nil {
		return err
	}
	if _, err := s.monthlySummaries.Indexes().CreateOne(ctx, unique("month")); err != nil {
		return err
	}
	if _, err := s.inventorySessions.Indexes().CreateOne(ctx, unique("date")); err != nil {
		return err
	}
	_, err := s.inventoryItems.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}},
	})
	return err
}

func (s *Store) seedDefaults(ctx context.Context) error {
	now := time.Now().UTC()

	userCount, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if userCount == 0 {
		for _, u := range store.SeedCredentials() {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			_, err = s.users.InsertOne(ctx, domain.User{
				ID:        xid.New("usr"),
				Username:  u.Username,
				Password:  string(hash),
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
		}
		log.Println("[mongo-store] seeded default users")
	}

	categoryCount, err := s.categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if categoryCount == 0 {
		for _, name := range store.DefaultCategoryNames() {
			_, err := s.categories.InsertOne(ctx, domain.Category{
				ID:            xid.New("cat"),
				Name:          name,
				SubCategories: []string{},
				CreatedAt:     now,
			})
			if err != nil {
				return err
			}
		}
	}

	menuCount, err := s.menuItems.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if menuCount == 0 {
		for _, item := range store.DefaultMenuItems() {
			item.ID = xid.New("menu")
			if _, err := s.menuItems.InsertOne(ctx, item); err != nil {
				return err
			}
		}
		log.Println("[mongo-store] seeded default menu")
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
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
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, 8)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	if err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, mapErr(err)
	}
	return &category, nil
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
	if _, err := s.categories.InsertOne(ctx, category); err != nil {
		return nil, mapErr(err)
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
	res, err := s.categories.UpdateOne(ctx, bson.M{"_id": category.ID}, bson.M{"$set": bson.M{
		"name":          category.Name,
		"subCategories": category.SubCategories,
	}})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetCategory(ctx, category.ID)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	cursor, err := s.menuItems.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "name", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, 32)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := s.menuItems.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, mapErr(err)
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
	if _, err := s.menuItems.InsertOne(ctx, item); err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" || item.Category == "" || item.Price < 1 {
		return nil, store.ErrInvalidInput
	}
	res, err := s.menuItems.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	res, err := s.menuItems.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMenuItems(ctx context.Context, ids []string) (int, error) {
	res, err := s.menuItems.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (s *Store) DeleteAllMenuItems(ctx context.Context) (int, error) {
	res, err := s.menuItems.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
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
	if _, err := s.transactions.InsertOne(ctx, tx); err != nil {
		return nil, mapErr(err)
	}
	return &tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := s.transactions.FindOne(ctx, bson.M{"_id": id}).Decode(&tx); err != nil {
		return nil, mapErr(err)
	}
	return &tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.transactions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, 64)
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Store) GetTransactionsByDate(ctx context.Context, date string) ([]domain.Transaction, error) {
	return s.GetTransactionsByDateRange(ctx, date, date)
}

func (s *Store) GetTransactionsByDateRange(ctx context.Context, from string, to string) ([]domain.Transaction, error) {
	cursor, err := s.transactions.Find(ctx,
		bson.M{"date": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, 16)
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Store) DeleteTransactionsByDate(ctx context.Context, date string) (int, error) {
	return s.DeleteTransactionsByDateRange(ctx, date, date)
}

func (s *Store) DeleteTransactionsByDateRange(ctx context.Context, from string, to string) (int, error) {
	res, err := s.transactions.DeleteMany(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (s *Store) GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	var summary domain.DailySummary
	if err := s.dailySummaries.FindOne(ctx, bson.M{"date": date}).Decode(&summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) ListDailySummaries(ctx context.Context, limit int) ([]domain.DailySummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.dailySummaries.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.DailySummary, 0, 32)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
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
	if _, err := s.dailySummaries.InsertOne(ctx, summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) UpdateDailySummary(ctx context.Context, summary domain.DailySummary) (*domain.DailySummary, error) {
	res, err := s.dailySummaries.UpdateOne(ctx, bson.M{"date": summary.Date}, bson.M{"$set": bson.M{
		"totalAmount": summary.TotalAmount,
		"gpayAmount":  summary.GpayAmount,
		"cashAmount":  summary.CashAmount,
		"orderCount":  summary.OrderCount,
	}})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetDailySummary(ctx, summary.Date)
}

func (s *Store) DeleteDailySummary(ctx context.Context, date string) error {
	_, err := s.dailySummaries.DeleteOne(ctx, bson.M{"date": date})
	return err
}

func (s *Store) DeleteDailySummariesInRange(ctx context.Context, from string, to string) error {
	_, err := s.dailySummaries.DeleteMany(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
	return err
}

func (s *Store) GetWeeklySummary(ctx context.Context, weekStart string) (*domain.WeeklySummary, error) {
	var summary domain.WeeklySummary
	if err := s.weeklySummaries.FindOne(ctx, bson.M{"weekStart": weekStart}).Decode(&summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) ListWeeklySummaries(ctx context.Context, limit int) ([]domain.WeeklySummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.weeklySummaries.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.WeeklySummary, 0, 16)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
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
	if _, err := s.weeklySummaries.InsertOne(ctx, summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) UpdateWeeklySummary(ctx context.Context, summary domain.WeeklySummary) (*domain.WeeklySummary, error) {
	res, err := s.weeklySummaries.UpdateOne(ctx, bson.M{"weekStart": summary.WeekStart}, bson.M{"$set": bson.M{
		"totalAmount": summary.TotalAmount,
		"gpayAmount":  summary.GpayAmount,
		"cashAmount":  summary.CashAmount,
		"orderCount":  summary.OrderCount,
	}})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetWeeklySummary(ctx, summary.WeekStart)
}

func (s *Store) DeleteWeeklySummary(ctx context.Context, weekStart string) error {
	_, err := s.weeklySummaries.DeleteOne(ctx, bson.M{"weekStart": weekStart})
	return err
}

func (s *Store) DeleteWeeklySummariesInRange(ctx context.Context, from string, to string) error {
	_, err := s.weeklySummaries.DeleteMany(ctx, bson.M{"weekStart": bson.M{"$gte": from, "$lte": to}})
	return err
}

func (s *Store) GetMonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error) {
	var summary domain.MonthlySummary
	if err := s.monthlySummaries.FindOne(ctx, bson.M{"month": month}).Decode(&summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) ListMonthlySummaries(ctx context.Context, limit int) ([]domain.MonthlySummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.monthlySummaries.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.MonthlySummary, 0, 12)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
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
	if _, err := s.monthlySummaries.InsertOne(ctx, summary); err != nil {
		return nil, mapErr(err)
	}
	return &summary, nil
}

func (s *Store) UpdateMonthlySummary(ctx context.Context, summary domain.MonthlySummary) (*domain.MonthlySummary, error) {
	res, err := s.monthlySummaries.UpdateOne(ctx, bson.M{"month": summary.Month}, bson.M{"$set": bson.M{
		"totalAmount": summary.TotalAmount,
		"gpayAmount":  summary.GpayAmount,
		"cashAmount":  summary.CashAmount,
		"orderCount":  summary.OrderCount,
	}})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetMonthlySummary(ctx, summary.Month)
}

func (s *Store) DeleteMonthlySummary(ctx context.Context, month string) error {
	_, err := s.monthlySummaries.DeleteOne(ctx, bson.M{"month": month})
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
	if _, err := s.inventorySessions.InsertOne(ctx, session); err != nil {
		return nil, mapErr(err)
	}
	return &session, nil
}

func (s *Store) GetInventorySession(ctx context.Context, id string) (*domain.InventorySession, error) {
	var session domain.InventorySession
	if err := s.inventorySessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		return nil, mapErr(err)
	}
	return &session, nil
}

func (s *Store) GetInventorySessionByDate(ctx context.Context, date string) (*domain.InventorySession, error) {
	var session domain.InventorySession
	if err := s.inventorySessions.FindOne(ctx, bson.M{"date": date}).Decode(&session); err != nil {
		return nil, mapErr(err)
	}
	return &session, nil
}

func (s *Store) ListInventorySessions(ctx context.Context, limit int) ([]domain.InventorySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.inventorySessions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.InventorySession, 0, 16)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) UpdateInventorySession(ctx context.Context, session domain.InventorySession) (*domain.InventorySession, error) {
	update := bson.M{
		"status":    session.Status,
		"startTime": session.StartTime,
	}
	if session.EndTime != nil {
		update["endTime"] = *session.EndTime
	}
	res, err := s.inventorySessions.UpdateOne(ctx, bson.M{"_id": session.ID}, bson.M{"$set": update})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetInventorySession(ctx, session.ID)
}

func (s *Store) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.SessionID == "" || item.MenuItemID == "" || item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	if _, err := s.GetInventorySession(ctx, item.SessionID); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = xid.New("inv")
	}
	if _, err := s.inventoryItems.InsertOne(ctx, item); err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := s.inventoryItems.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (s *Store) GetInventoryItemsBySession(ctx context.Context, sessionID string) ([]domain.InventoryItem, error) {
	cursor, err := s.inventoryItems.Find(ctx,
		bson.M{"sessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	items := make([]domain.InventoryItem, 0, 16)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetInventoryItemsWithMenu(ctx context.Context, sessionID string) ([]domain.InventoryItemWithMenu, error) {
	items, err := s.GetInventoryItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	joined := make([]domain.InventoryItemWithMenu, 0, len(items))
	for _, item := range items {
		row := domain.InventoryItemWithMenu{InventoryItem: item}
		menuItem, err := s.GetMenuItem(ctx, item.MenuItemID)
		if err == nil {
			row.MenuItem = menuItem
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		joined = append(joined, row)
	}
	return joined, nil
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.StockIn < 0 {
		return nil, store.ErrInvalidInput
	}
	res, err := s.inventoryItems.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": bson.M{
		"stockIn":   item.StockIn,
		"stockOut":  item.StockOut,
		"stockLeft": item.StockLeft,
	}})
	if err != nil {
		return nil, mapErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
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
		_, err := s.inventoryItems.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": bson.M{
			"stockOut":  stockOut,
			"stockLeft": item.StockIn - stockOut,
		}})
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
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	cursor, err := s.inventorySessions.Find(ctx, filter)
	if err != nil {
		return err
	}
	sessions := make([]domain.InventorySession, 0, 8)
	if err := cursor.All(ctx, &sessions); err != nil {
		return err
	}

	for _, session := range sessions {
		if _, err := s.inventoryItems.DeleteMany(ctx, bson.M{"sessionId": session.ID}); err != nil {
			return err
		}
	}
	_, err = s.inventorySessions.DeleteMany(ctx, filter)
	return err
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return err
}
