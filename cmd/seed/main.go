// Seeds a demo user with sample expenses and prints a session token
// for exercising the API locally.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"finsight/internal/models"
	"finsight/internal/repository"
	"finsight/pkg/config"
	"finsight/pkg/identity"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sampleExpense struct {
	amount      float64
	category    string
	description string
	date        string
}

var sampleExpenses = []sampleExpense{
	{12.40, "Food", "Lunch at the taqueria", "2026-08-03"},
	{54.99, "Shopping", "Running shoes", "2026-08-05"},
	{9.50, "Transportation", "Metro card top-up", "2026-08-07"},
	{120.00, "Bills", "Electricity bill", "2026-08-10"},
	{15.00, "Entertainment", "Movie ticket", "2026-08-14"},
	{32.75, "Healthcare", "Pharmacy", "2026-08-18"},
	{6.80, "Food", "Starbucks coffee", "2026-08-21"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	now := time.Now()
	session := &identity.Session{
		ExternalID: "demo-user",
		Email:      "demo@example.com",
		FirstName:  "Demo",
		LastName:   "User",
		ImageURL:   "https://example.com/avatar.png",
	}

	user, err := userRepo.Upsert(ctx, &models.User{
		ID:         uuid.New(),
		ExternalID: session.ExternalID,
		Email:      session.Email,
		Name:       session.FullName(),
		ImageURL:   session.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		appLogger.Fatal("Failed to seed user", zap.Error(err))
	}

	existing, err := expenseRepo.ListByUser(ctx, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to list expenses", zap.Error(err))
	}

	if len(existing) == 0 {
		expenses := make([]*models.Expense, 0, len(sampleExpenses))
		for _, s := range sampleExpenses {
			date, err := time.Parse(models.ExpenseDateLayout, s.date)
			if err != nil {
				appLogger.Fatal("Invalid sample date", zap.String("date", s.date), zap.Error(err))
			}
			expenses = append(expenses, &models.Expense{
				ID:          uuid.New(),
				UserID:      user.ID,
				Amount:      s.amount,
				Category:    s.category,
				Description: s.description,
				Date:        date,
				CreatedAt:   now,
			})
		}
		if err := expenseRepo.CreateBatch(ctx, expenses); err != nil {
			appLogger.Fatal("Failed to seed expenses", zap.Error(err))
		}
		appLogger.Info("Seeded sample expenses", zap.Int("count", len(expenses)))
	} else {
		appLogger.Info("Expenses already present, skipping", zap.Int("count", len(existing)))
	}

	verifier := identity.NewVerifier(&cfg.Identity)
	token, err := verifier.Issue(session, 24*time.Hour)
	if err != nil {
		appLogger.Fatal("Failed to issue session token", zap.Error(err))
	}

	appLogger.Info("Seeding completed", zap.String("user_id", user.ID.String()))
	fmt.Printf("Session token for %s:\n%s\n", session.Email, token)
}
