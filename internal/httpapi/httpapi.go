package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"chaifi/backend/internal/domain"
	"chaifi/backend/internal/report"
	"chaifi/backend/internal/service"
	"chaifi/backend/internal/store"
)

type API struct {
	service       *service.Service
	reports       *report.Engine
	auth          *AuthManager
	allowedOrigin string
	loginLimiter  *attemptLimiter
}

func New(svc *service.Service, reports *report.Engine, auth *AuthManager, allowedOrigin string) *API {
	return &API{
		service:       svc,
		reports:       reports,
		auth:          auth,
		allowedOrigin: allowedOrigin,
		loginLimiter:  newAttemptLimiter(5, time.Minute),
	}
}

type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &attemptLimiter{max: max, window: window, entries: make(map[string][]time.Time)}
}

func (l *attemptLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.entries[key]
	kept := make([]time.Time, 0, len(history)+1)
	for _, ts := range history {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	kept = append(kept, now)
	l.entries[key] = kept
	return true
}

func clientKey(r *http.Request) string {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return "unknown"
	}
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/auth/login", a.handleLogin)

	mux.HandleFunc("/api/categories", a.requireAuth(a.handleCategories))
	mux.HandleFunc("/api/categories/", a.requireAuth(a.handleCategoryActions))
	mux.HandleFunc("/api/menu", a.requireAuth(a.handleMenu))
	mux.HandleFunc("/api/menu/", a.requireAuth(a.handleMenuActions))

	mux.HandleFunc("/api/transactions", a.requireAuth(a.handleTransactions))
	mux.HandleFunc("/api/transactions/", a.requireAuth(a.handleTransactionActions))
	mux.HandleFunc("/api/summaries/", a.requireAuth(a.handleSummaries))
	mux.HandleFunc("/api/data/clear", a.requireAuth(a.handleClearData))
	mux.HandleFunc("/api/download/", a.requireAuth(a.handleDownload))

	mux.HandleFunc("/api/inventory/start-day", a.requireAuth(a.handleStartDay))
	mux.HandleFunc("/api/inventory/end-day", a.requireAuth(a.handleEndDay))
	mux.HandleFunc("/api/inventory/current", a.requireAuth(a.handleCurrentSession))
	mux.HandleFunc("/api/inventory/sessions", a.requireAuth(a.handleSessions))
	mux.HandleFunc("/api/inventory/sessions/", a.requireAuth(a.handleSessionActions))
	mux.HandleFunc("/api/inventory/items/", a.requireAuth(a.handleInventoryItemActions))
	mux.HandleFunc("/api/inventory/session-time", a.requireAuth(a.handleSessionTime))

	return a.withMiddleware(mux)
}

func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		if _, err := a.auth.ParseToken(token); err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		next(w, r)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.loginLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many login attempts"))
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := a.service.ListCategories(r.Context())
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
	case http.MethodPost:
		var req domain.CategoryCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		category, err := a.service.CreateCategory(r.Context(), req)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"category": category})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCategoryActions(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/api/categories/")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("category id required"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		category, err := a.service.GetCategory(r.Context(), id)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"category": category})
	case http.MethodPut:
		var req domain.CategoryUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		category, err := a.service.UpdateCategory(r.Context(), id, req)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"category": category})
	case http.MethodDelete:
		if err := a.service.DeleteCategory(r.Context(), id); err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMenu(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := a.service.ListMenuItems(r.Context())
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"menuItems": items})
	case http.MethodPost:
		var req domain.MenuItemCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		item, err := a.service.CreateMenuItem(r.Context(), req)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"menuItem": item})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleMenuActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/menu/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("menu item id required"))
		return
	}

	switch tail {
	case "all":
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w)
			return
		}
		deleted, err := a.service.DeleteAllMenuItems(r.Context())
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
		return
	case "bulk-delete":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}
		var req domain.MenuBulkDeleteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		deleted, err := a.service.DeleteMenuItems(r.Context(), req.IDs)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
		return
	case "sales":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w)
			return
		}
		sales, err := a.reports.MenuSales(r.Context())
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sales": sales})
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := a.service.GetMenuItem(r.Context(), tail)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"menuItem": item})
	case http.MethodPut:
		var req domain.MenuItemUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		item, err := a.service.UpdateMenuItem(r.Context(), tail, req)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"menuItem": item})
	case http.MethodDelete:
		if err := a.service.DeleteMenuItem(r.Context(), tail); err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := parsePositiveLimit(r.URL.Query().Get("limit"), 0, 1000)
		txs, err := a.service.ListTransactions(r.Context(), limit)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
	case http.MethodPost:
		var req domain.TransactionCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		tx, err := a.service.RecordTransaction(r.Context(), req)
		if err != nil {
			// A summary fold failure still records the transaction.
			if tx != nil {
				writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx, "warning": err.Error()})
				return
			}
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleTransactionActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	tail := pathTail(r.URL.Path, "/api/transactions/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("transaction id required"))
		return
	}

	if date, ok := strings.CutPrefix(tail, "date/"); ok {
		txs, err := a.service.TransactionsByDate(r.Context(), strings.Trim(date, "/"))
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
		return
	}

	if tail == "range" {
		from := strings.TrimSpace(r.URL.Query().Get("from"))
		to := strings.TrimSpace(r.URL.Query().Get("to"))
		txs, err := a.service.TransactionsByDateRange(r.Context(), from, to)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
		return
	}

	tx, err := a.service.GetTransaction(r.Context(), tail)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

func (a *API) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	tail := pathTail(r.URL.Path, "/api/summaries/")
	period, key, _ := strings.Cut(tail, "/")
	key = strings.Trim(key, "/")
	limit := parsePositiveLimit(r.URL.Query().Get("limit"), 0, 1000)

	switch period {
	case "daily":
		if key == "" {
			summaries, err := a.service.DailySummaries(r.Context(), limit)
			if err != nil {
				writeError(w, errStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"summaries": summaries})
			return
		}
		summary, err := a.service.DailySummary(r.Context(), key)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
	case "weekly":
		if key == "" {
			summaries, err := a.service.WeeklySummaries(r.Context(), limit)
			if err != nil {
				writeError(w, errStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"summaries": summaries})
			return
		}
		summary, err := a.service.WeeklySummary(r.Context(), key)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
	case "monthly":
		if key == "" {
			summaries, err := a.service.MonthlySummaries(r.Context(), limit)
			if err != nil {
				writeError(w, errStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"summaries": summaries})
			return
		}
		summary, err := a.service.MonthlySummary(r.Context(), key)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
	default:
		writeError(w, http.StatusBadRequest, errors.New("unknown summary period"))
	}
}

func (a *API) handleClearData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}

	period := strings.TrimSpace(r.URL.Query().Get("period"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if err := a.service.ClearData(r.Context(), period, date); err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *API) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	tail := pathTail(r.URL.Path, "/api/download/")
	period, key, ok := strings.Cut(tail, "/")
	key = strings.Trim(key, "/")
	if !ok || key == "" {
		writeError(w, http.StatusBadRequest, errors.New("download period and key required"))
		return
	}

	export, err := a.reports.Export(r.Context(), period, key)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%s.csv\"", period, key))
		_, _ = w.Write([]byte(exportToCSV(export)))
		return
	}
	writeJSON(w, http.StatusOK, export)
}

func (a *API) handleStartDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.StartDayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, items, err := a.service.StartDay(r.Context(), req)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session": session, "items": items})
}

func (a *API) handleEndDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.EndDayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := a.service.EndDay(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (a *API) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	session, err := a.service.CurrentSession(r.Context())
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (a *API) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	limit := parsePositiveLimit(r.URL.Query().Get("limit"), 0, 1000)
	sessions, err := a.service.Sessions(r.Context(), limit)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (a *API) handleSessionActions(w http.ResponseWriter, r *http.Request) {
	tail := pathTail(r.URL.Path, "/api/inventory/sessions/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("session id required"))
		return
	}

	if date, ok := strings.CutPrefix(tail, "date/"); ok {
		date = strings.Trim(date, "/")
		switch r.Method {
		case http.MethodGet:
			session, err := a.service.SessionByDate(r.Context(), date)
			if err != nil {
				writeError(w, errStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"session": session})
		case http.MethodDelete:
			if err := a.service.ClearInventoryByDate(r.Context(), date); err != nil {
				writeError(w, errStatus(err), err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"cleared": date})
		default:
			writeMethodNotAllowed(w)
		}
		return
	}

	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	if sessionID, ok := strings.CutSuffix(tail, "/items"); ok {
		sessionID = strings.Trim(sessionID, "/")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, errors.New("session id required"))
			return
		}
		items, err := a.service.SessionItems(r.Context(), sessionID)
		if err != nil {
			writeError(w, errStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
		return
	}

	writeError(w, http.StatusBadRequest, errors.New("unknown session action"))
}

func (a *API) handleInventoryItemActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w)
		return
	}

	tail := pathTail(r.URL.Path, "/api/inventory/items/")
	itemID, ok := strings.CutSuffix(tail, "/stock-in")
	itemID = strings.Trim(itemID, "/")
	if !ok || itemID == "" {
		writeError(w, http.StatusBadRequest, errors.New("inventory item id required"))
		return
	}

	var req domain.StockInUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := a.service.UpdateStockIn(r.Context(), itemID, req.StockIn)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (a *API) handleSessionTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.SessionTimeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := a.service.UpdateSessionTime(r.Context(), req.SessionID, req.StartTime)
	if err != nil {
		writeError(w, errStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if (r.Method == http.MethodPost || r.Method == http.MethodPut) && strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

func exportToCSV(export *domain.SummaryExport) string {
	lines := []string{
		"section,key,value",
		fmt.Sprintf("export,period,%s", export.Period),
		fmt.Sprintf("export,key,%s", export.Key),
	}
	switch summary := export.Summary.(type) {
	case *domain.DailySummary:
		lines = append(lines,
			fmt.Sprintf("summary,totalAmount,%s", summary.TotalAmount),
			fmt.Sprintf("summary,gpayAmount,%s", summary.GpayAmount),
			fmt.Sprintf("summary,cashAmount,%s", summary.CashAmount),
			fmt.Sprintf("summary,orderCount,%d", summary.OrderCount),
		)
	case *domain.WeeklySummary:
		lines = append(lines,
			fmt.Sprintf("summary,weekEnd,%s", summary.WeekEnd),
			fmt.Sprintf("summary,totalAmount,%s", summary.TotalAmount),
			fmt.Sprintf("summary,gpayAmount,%s", summary.GpayAmount),
			fmt.Sprintf("summary,cashAmount,%s", summary.CashAmount),
			fmt.Sprintf("summary,orderCount,%d", summary.OrderCount),
		)
	case *domain.MonthlySummary:
		lines = append(lines,
			fmt.Sprintf("summary,totalAmount,%s", summary.TotalAmount),
			fmt.Sprintf("summary,gpayAmount,%s", summary.GpayAmount),
			fmt.Sprintf("summary,cashAmount,%s", summary.CashAmount),
			fmt.Sprintf("summary,orderCount,%d", summary.OrderCount),
		)
	}
	lines = append(lines, "transaction,id,date,time,paymentMethod,billerName,totalAmount")
	for _, tx := range export.Transactions {
		lines = append(lines, fmt.Sprintf("transaction,%s,%s,%s,%s,%s,%s",
			tx.ID, tx.Date, tx.Time, tx.PaymentMethod, tx.BillerName, tx.TotalAmount))
	}
	return strings.Join(lines, "\n") + "\n"
}

func pathTail(path string, prefix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimPrefix(path, prefix), "/"))
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func parsePositiveLimit(raw string, fallback int, max int) int {
	limit := fallback
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx responses return a generic message so internal details never
	// reach the client. 4xx messages are user facing.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
