// Command seed populates a fresh database with an admin account and
// demo data for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storeboard/internal/config"
	"storeboard/internal/core/apperror"
	"storeboard/internal/core/types"
	"storeboard/internal/domain/auth"
	"storeboard/internal/domain/expense"
	"storeboard/internal/domain/inventory"
	"storeboard/internal/infrastructure/storage/postgres"
	"storeboard/pkg/logger"
)

func main() {
	adminUser := flag.String("admin-user", "admin", "admin username")
	adminName := flag.String("admin-name", "Administrator", "admin display name")
	adminPass := flag.String("admin-pass", "", "admin password (required)")
	demo := flag.Bool("demo", false, "also seed demo inventory and expenses")
	flag.Parse()

	if *adminPass == "" {
		fmt.Println("usage: seed -admin-pass <password> [-admin-user admin] [-demo]")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	if err := seedAdmin(ctx, txManager, cfg, *adminUser, *adminName, *adminPass); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	log.Infow("admin user ready", "username", *adminUser)

	if *demo {
		if err := seedDemo(ctx, txManager); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data seeded")
	}
}

func seedAdmin(ctx context.Context, txManager *postgres.TxManager, cfg *config.Config, username, name, password string) error {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.Auth.Secret))
	authService := auth.NewService(postgres.NewUserRepo(txManager), jwtService, auth.DefaultServiceConfig())

	_, err := authService.CreateUser(ctx, username, name, password, auth.RoleAdmin)
	if apperror.IsCode(err, apperror.CodeDuplicate) {
		logger.Info(ctx, "admin user already exists, skipping", "username", username)
		return nil
	}
	return err
}

func seedDemo(ctx context.Context, txManager *postgres.TxManager) error {
	if err := seedInventory(ctx, txManager); err != nil {
		return err
	}
	return seedExpenses(ctx, txManager)
}

func seedInventory(ctx context.Context, txManager *postgres.TxManager) error {
	ledger := inventory.NewLedger(postgres.NewInventoryRepo(txManager, nil))
	if err := ledger.Load(ctx); err != nil {
		return err
	}
	if len(ledger.Items()) > 0 {
		logger.Info(ctx, "inventory not empty, skipping demo items")
		return nil
	}

	items := []inventory.ItemInput{
		{Name: "oat milk", Category: "dairy", CurrentStock: 24, MinStock: 10, Unit: "carton", UnitPrice: types.MustMoney("12.50")},
		{Name: "espresso beans", Category: "coffee", CurrentStock: 8, MinStock: 12, Unit: "kg", UnitPrice: types.MustMoney("96.00")},
		{Name: "paper cups 12oz", Category: "packaging", CurrentStock: 400, MinStock: 200, Unit: "pc", UnitPrice: types.MustMoney("0.45")},
		{Name: "vanilla syrup", Category: "syrups", CurrentStock: 0, MinStock: 4, Unit: "bottle", UnitPrice: types.MustMoney("38.00")},
	}
	for _, input := range items {
		if _, err := ledger.AddProduct(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func seedExpenses(ctx context.Context, txManager *postgres.TxManager) error {
	svc := expense.NewService(postgres.NewExpenseRepo(txManager))

	existing, err := svc.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info(ctx, "expense categories not empty, skipping demo expenses")
		return nil
	}

	categories := []expense.Category{
		{Name: "rent", Type: expense.CategoryFixed, Description: "storefront lease"},
		{Name: "utilities", Type: expense.CategoryFixed},
		{Name: "packaging", Type: expense.CategoryVariable},
		{Name: "wages", Type: expense.CategoryLabor},
		{Name: "restock", Type: expense.CategoryProduct},
	}

	now := time.Now()
	amounts := map[string]types.Money{
		"rent":      types.MustMoney("8000"),
		"utilities": types.MustMoney("1200"),
		"packaging": types.MustMoney("2495.63"),
		"wages":     types.MustMoney("12000"),
		"restock":   types.MustMoney("6000"),
	}

	for _, c := range categories {
		created, err := svc.CreateCategory(ctx, c)
		if err != nil {
			return err
		}
		_, err = svc.CreateExpense(ctx, expense.Expense{
			CategoryID: created.ID,
			Name:       c.Name,
			Amount:     amounts[c.Name],
			Date:       now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
