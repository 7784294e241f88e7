package domain

import "time"

type User struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Category struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	SubCategories []string  `json:"subCategories" bson:"subCategories"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type MenuItem struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Price       Amount `json:"price" bson:"price"`
	Category    string `json:"category" bson:"category"`
	SubCategory string `json:"subCategory,omitempty" bson:"subCategory,omitempty"`
	Image       string `json:"image" bson:"image"`
	Available   bool   `json:"available" bson:"available"`
}

type LineItem struct {
	MenuItemID string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Price      Amount `json:"price" bson:"price"`
	Quantity   int    `json:"quantity" bson:"quantity"`
}

type SplitPayment struct {
	GpayAmount Amount `json:"gpayAmount" bson:"gpayAmount"`
	CashAmount Amount `json:"cashAmount" bson:"cashAmount"`
}

type CreditorInfo struct {
	Name          string `json:"name" bson:"name"`
	TotalAmount   Amount `json:"totalAmount" bson:"totalAmount"`
	PaidAmount    Amount `json:"paidAmount" bson:"paidAmount"`
	BalanceAmount Amount `json:"balanceAmount" bson:"balanceAmount"`
}

type Extra struct {
	Name   string `json:"name" bson:"name"`
	Amount Amount `json:"amount" bson:"amount"`
}

type Transaction struct {
	ID            string        `json:"id" bson:"_id"`
	Items         []LineItem    `json:"items" bson:"items"`
	TotalAmount   Amount        `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod string        `json:"paymentMethod" bson:"paymentMethod"`
	BillerName    string        `json:"billerName" bson:"billerName"`
	SplitPayment  *SplitPayment `json:"splitPayment,omitempty" bson:"splitPayment,omitempty"`
	Extras        []Extra       `json:"extras,omitempty" bson:"extras,omitempty"`
	Creditor      *CreditorInfo `json:"creditor,omitempty" bson:"creditor,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	Date          string        `json:"date" bson:"date"`
	DayName       string        `json:"dayName" bson:"dayName"`
	Time          string        `json:"time" bson:"time"`
}

type DailySummary struct {
	ID          string    `json:"id" bson:"_id"`
	Date        string    `json:"date" bson:"date"`
	TotalAmount Amount    `json:"totalAmount" bson:"totalAmount"`
	GpayAmount  Amount    `json:"gpayAmount" bson:"gpayAmount"`
	CashAmount  Amount    `json:"cashAmount" bson:"cashAmount"`
	OrderCount  int       `json:"orderCount" bson:"orderCount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type WeeklySummary struct {
	ID          string    `json:"id" bson:"_id"`
	WeekStart   string    `json:"weekStart" bson:"weekStart"`
	WeekEnd     string    `json:"weekEnd" bson:"weekEnd"`
	TotalAmount Amount    `json:"totalAmount" bson:"totalAmount"`
	GpayAmount  Amount    `json:"gpayAmount" bson:"gpayAmount"`
	CashAmount  Amount    `json:"cashAmount" bson:"cashAmount"`
	OrderCount  int       `json:"orderCount" bson:"orderCount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type MonthlySummary struct {
	ID          string    `json:"id" bson:"_id"`
	Month       string    `json:"month" bson:"month"`
	TotalAmount Amount    `json:"totalAmount" bson:"totalAmount"`
	GpayAmount  Amount    `json:"gpayAmount" bson:"gpayAmount"`
	CashAmount  Amount    `json:"cashAmount" bson:"cashAmount"`
	OrderCount  int       `json:"orderCount" bson:"orderCount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type InventorySession struct {
	ID        string     `json:"id" bson:"_id"`
	Date      string     `json:"date" bson:"date"`
	Status    string     `json:"status" bson:"status"`
	StartTime time.Time  `json:"startTime" bson:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty" bson:"endTime,omitempty"`
}

type InventoryItem struct {
	ID         string `json:"id" bson:"_id"`
	SessionID  string `json:"sessionId" bson:"sessionId"`
	MenuItemID string `json:"menuItemId" bson:"menuItemId"`
	StockIn    int    `json:"stockIn" bson:"stockIn"`
	StockOut   int    `json:"stockOut" bson:"stockOut"`
	StockLeft  int    `json:"stockLeft" bson:"stockLeft"`
}

// InventoryItemWithMenu joins a stock row with its menu item. MenuItem is nil
// when the menu item was deleted after the session started.
type InventoryItemWithMenu struct {
	InventoryItem
	MenuItem *MenuItem `json:"menuItem,omitempty"`
}

const (
	PaymentGpay     = "gpay"
	PaymentCash     = "cash"
	PaymentSplit    = "split"
	PaymentCreditor = "creditor"
)

const (
	SessionPreBilling = "pre-billing"
	SessionBilling    = "billing"
	SessionEnded      = "ended"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CategoryCreateRequest struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"subCategories"`
}

type CategoryUpdateRequest struct {
	Name          *string   `json:"name,omitempty"`
	SubCategories *[]string `json:"subCategories,omitempty"`
}

type MenuItemCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory,omitempty"`
	Image       string `json:"image"`
	Available   *bool  `json:"available,omitempty"`
}

type MenuItemUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Amount `json:"price,omitempty"`
	Category    *string `json:"category,omitempty"`
	SubCategory *string `json:"subCategory,omitempty"`
	Image       *string `json:"image,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type MenuBulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type TransactionCreateRequest struct {
	Items         []LineItem    `json:"items"`
	TotalAmount   Amount        `json:"totalAmount"`
	PaymentMethod string        `json:"paymentMethod"`
	BillerName    string        `json:"billerName"`
	SplitPayment  *SplitPayment `json:"splitPayment,omitempty"`
	Extras        []Extra       `json:"extras,omitempty"`
	Creditor      *CreditorInfo `json:"creditor,omitempty"`
	Date          string        `json:"date,omitempty"`
	DayName       string        `json:"dayName,omitempty"`
	Time          string        `json:"time,omitempty"`
}

type StartDayItem struct {
	MenuItemID string `json:"menuItemId"`
	StockIn    int    `json:"stockIn"`
}

type StartDayRequest struct {
	Items []StartDayItem `json:"items"`
}

type EndDayRequest struct {
	SessionID string `json:"sessionId"`
}

type StockInUpdateRequest struct {
	StockIn int `json:"stockIn"`
}

type SessionTimeUpdateRequest struct {
	SessionID string `json:"sessionId"`
	StartTime string `json:"startTime"`
}

type MenuItemSales struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	UnitsSold  int    `json:"unitsSold"`
	Revenue    Amount `json:"revenue"`
}

type SummaryExport struct {
	Period       string        `json:"period"`
	Key          string        `json:"key"`
	Summary      any           `json:"summary"`
	Transactions []Transaction `json:"transactions"`
}
