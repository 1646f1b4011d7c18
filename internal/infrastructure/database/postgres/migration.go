// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/domain/budget"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"github.com/your-org/workshop-backend/internal/domain/finance"
	"github.com/your-org/workshop-backend/internal/domain/schedule"
	"github.com/your-org/workshop-backend/internal/domain/serviceorder"
	"github.com/your-org/workshop-backend/internal/domain/subscription"
	"github.com/your-org/workshop-backend/internal/domain/supplier"
	"github.com/your-org/workshop-backend/internal/domain/user"
	"github.com/your-org/workshop-backend/internal/domain/workshop"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Tenancy base tables
		&workshop.Workshop{},
		&user.User{},

		// Subscription tables
		&subscription.Plan{},
		&subscription.Subscription{},

		// Client domain
		&client.Client{},
		&client.Vehicle{},

		// Supplier and catalog
		&supplier.Supplier{},
		&catalog.Item{},
		&catalog.StockMovement{},

		// Budgets and service orders
		&budget.Budget{},
		&budget.BudgetItem{},
		&serviceorder.ServiceOrder{},
		&serviceorder.OrderItem{},

		// Scheduling and finance
		&schedule.Appointment{},
		&finance.Transaction{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_workshop_active ON users(workshop_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Client and vehicle indexes
		"CREATE INDEX IF NOT EXISTS idx_clients_workshop_name ON clients(workshop_id, name)",
		"CREATE INDEX IF NOT EXISTS idx_vehicles_workshop_plate ON vehicles(workshop_id, plate)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_catalog_items_workshop_code ON catalog_items(workshop_id, code)",
		"CREATE INDEX IF NOT EXISTS idx_catalog_items_workshop_kind ON catalog_items(workshop_id, kind, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_item_created ON stock_movements(item_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements(reference_type, reference_id)",

		// Supplier indexes
		"CREATE INDEX IF NOT EXISTS idx_suppliers_workshop_tax_id ON suppliers(workshop_id, tax_id)",

		// Budget indexes
		"CREATE INDEX IF NOT EXISTS idx_budgets_workshop_status ON budgets(workshop_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_budgets_client ON budgets(client_id)",

		// Service order indexes
		"CREATE INDEX IF NOT EXISTS idx_service_orders_workshop_status ON service_orders(workshop_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_service_orders_client ON service_orders(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_service_orders_mechanic ON service_orders(mechanic_id)",
		"CREATE INDEX IF NOT EXISTS idx_service_orders_created_at ON service_orders(created_at DESC)",

		// Appointment indexes
		"CREATE INDEX IF NOT EXISTS idx_appointments_workshop_starts ON appointments(workshop_id, starts_at)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_mechanic_starts ON appointments(mechanic_id, starts_at)",

		// Finance indexes
		"CREATE INDEX IF NOT EXISTS idx_finance_workshop_type_status ON finance_transactions(workshop_id, type, status)",
		"CREATE INDEX IF NOT EXISTS idx_finance_due_date ON finance_transactions(due_date)",

		// Subscription indexes
		"CREATE INDEX IF NOT EXISTS idx_subscriptions_workshop ON subscriptions(workshop_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedPlans(); err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	if err := m.seedDemoWorkshop(); err != nil {
		return fmt.Errorf("failed to seed demo workshop: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedPlans creates the default subscription plans
func (m *Migration) seedPlans() error {
	log.Println("🏷️ Seeding plans...")

	plans := []subscription.Plan{
		{
			Slug:         "essencial",
			Name:         "Essencial",
			Description:  "Clientes, orçamentos, ordens de serviço e agenda para oficinas pequenas",
			MonthlyPrice: decimal.NewFromInt(99),
			MaxUsers:     3,
			IsActive:     true,
		},
		{
			Slug:         "profissional",
			Name:         "Profissional",
			Description:  "Tudo do Essencial mais estoque, importação de notas e financeiro",
			MonthlyPrice: decimal.NewFromInt(199),
			MaxUsers:     10,
			IsActive:     true,
		},
		{
			Slug:         "oficina-plus",
			Name:         "Oficina Plus",
			Description:  "Usuários ilimitados e todos os módulos para redes de oficinas",
			MonthlyPrice: decimal.NewFromInt(349),
			MaxUsers:     0,
			IsActive:     true,
		},
	}

	for _, plan := range plans {
		var existing subscription.Plan
		result := m.db.Where("slug = ?", plan.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&plan).Error; err != nil {
				return err
			}
			log.Printf("✅ Created plan: %s", plan.Name)
		} else {
			log.Printf("⏭️ Plan already exists: %s", plan.Name)
		}
	}

	return nil
}

// seedDemoWorkshop creates a demo workshop with an admin user for development
func (m *Migration) seedDemoWorkshop() error {
	log.Println("👤 Seeding demo workshop...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Demo admin already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		shop := workshop.Workshop{
			Name:     "Oficina Demo",
			IsActive: true,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return fmt.Errorf("failed to create demo workshop: %w", err)
		}

		adminUser := user.User{
			WorkshopID: shop.ID,
			Email:      "admin@example.com",
			Password:   string(hashedPassword),
			FirstName:  "Admin",
			LastName:   "Demo",
			Role:       user.RoleAdmin,
			IsActive:   true,
		}
		if err := tx.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create demo admin: %w", err)
		}

		log.Println("✅ Created demo workshop admin: admin@example.com (password: admin123)")
		return nil
	})
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"finance_transactions",
		"appointments",
		"service_order_items",
		"service_orders",
		"budget_items",
		"budgets",
		"stock_movements",
		"catalog_items",
		"suppliers",
		"vehicles",
		"clients",
		"subscriptions",
		"plans",
		"users",
		"workshops",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
