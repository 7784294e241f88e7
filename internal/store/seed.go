package store

import (
	"log"
	"os"

	"chaifi/backend/internal/domain"
)

type SeedUser struct {
	Username string
	Password string
}

// SeedCredentials returns the stall's default accounts. Passwords come from
// SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD; dev defaults are used when
// unset.
func SeedCredentials() []SeedUser {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin@2020")
	staffPwd := envOr("SEED_STAFF_PASSWORD", "Chai-fi@2025")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_STAFF_PASSWORD") == "" {
		log.Println("[store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD to override.")
	}
	return []SeedUser{
		{Username: "admin", Password: adminPwd},
		{Username: "Chai-fi", Password: staffPwd},
	}
}

func DefaultCategoryNames() []string {
	return []string{"Tea", "Coffee", "Snacks", "Beverages"}
}

func DefaultMenuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{Name: "Masala Chai", Description: "Traditional spiced tea", Price: 2500, Category: "Tea", Image: "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Green Tea", Description: "Healthy herbal tea", Price: 3000, Category: "Tea", Image: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Cappuccino", Description: "Rich coffee with foam", Price: 8000, Category: "Coffee", Image: "https://images.unsplash.com/photo-1509042239860-f550ce710b93?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Black Coffee", Description: "Strong black coffee", Price: 5000, Category: "Coffee", Image: "https://images.unsplash.com/photo-1447933601403-0c6688de566e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Samosa", Description: "Crispy fried snack", Price: 2000, Category: "Snacks", Image: "https://images.unsplash.com/photo-1601050690597-df0568f70950?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Veg Sandwich", Description: "Fresh vegetable sandwich", Price: 6000, Category: "Snacks", Image: "https://images.unsplash.com/photo-1509722747041-616f39b57569?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Orange Juice", Description: "Fresh squeezed orange", Price: 4000, Category: "Beverages", Image: "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
		{Name: "Mango Lassi", Description: "Sweet yogurt drink", Price: 4500, Category: "Beverages", Image: "https://images.unsplash.com/photo-1571091718767-18b5b1457add?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250", Available: true},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
