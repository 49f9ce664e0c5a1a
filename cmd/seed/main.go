package main

import (
	"context"
	"log"
	"time"

	"ledgerbook/internal/models"
	"ledgerbook/internal/repository"
	"ledgerbook/pkg/config"
	"ledgerbook/pkg/logger"
	"ledgerbook/pkg/postgres"

	"go.uber.org/zap"
)

type categorySeed struct {
	name  string
	color string
	icon  string
}

var defaultCategories = []categorySeed{
	{"Income", "#10b981", "💰"},
	{"Housing", "#6366f1", "🏠"},
	{"Insurance", "#f59e0b", "🛡️"},
	{"Investments", "#22d3ee", "📈"},
	{"Credit Cards", "#a855f7", "💳"},
	{"Groceries", "#22c55e", "🛒"},
	{"Dining & Restaurants", "#f97316", "🍽️"},
	{"Transportation", "#3b82f6", "🚗"},
	{"Shopping", "#ec4899", "🛍️"},
	{"Entertainment", "#a855f7", "🎬"},
	{"Subscriptions", "#8b5cf6", "📱"},
	{"Utilities", "#f59e0b", "⚡"},
	{"Healthcare", "#14b8a6", "💊"},
	{"Travel", "#06b6d4", "✈️"},
	{"Finance & Banking", "#64748b", "🏦"},
	{"Personal Transfers", "#94a3b8", "👤"},
	{"Transfer", "#64748b", "🔄"},
	{"Other", "#94a3b8", "📌"},
}

type ruleSeed struct {
	pattern   string
	matchType string
	category  string
	priority  int
}

// Priority convention: higher number matches first. Ordering matters for
// overlapping patterns, e.g. "amazon prime" (80) outranks "amazon" (50) so
// Prime subscribers land in Subscriptions rather than Shopping.
var defaultRules = []ruleSeed{
	// Transfers first so "transfer from" never lands in Income.
	{"online banking transfer", models.MatchContains, "Transfer", 96},
	{"mobile banking transfer", models.MatchContains, "Transfer", 96},
	{"online banking payment", models.MatchContains, "Transfer", 93},
	{"account transfer", models.MatchContains, "Transfer", 91},
	{"overdraft protection", models.MatchContains, "Transfer", 86},
	{"keep the change", models.MatchContains, "Transfer", 86},

	{"payroll", models.MatchContains, "Income", 90},
	{"direct deposit", models.MatchContains, "Income", 90},
	{"salary", models.MatchContains, "Income", 85},
	{"transfer from", models.MatchContains, "Income", 80},

	{"amazon prime", models.MatchContains, "Subscriptions", 80},
	{"netflix", models.MatchContains, "Subscriptions", 75},
	{"spotify", models.MatchContains, "Subscriptions", 75},
	{"hulu", models.MatchContains, "Subscriptions", 75},
	{"disney", models.MatchContains, "Subscriptions", 75},
	{"apple.com/bill", models.MatchContains, "Subscriptions", 75},
	{"google.*storage", models.MatchRegex, "Subscriptions", 75},

	// Uber Eats before the generic Uber rule below.
	{"uber eats", models.MatchContains, "Dining & Restaurants", 80},
	{"doordash", models.MatchContains, "Dining & Restaurants", 75},
	{"grubhub", models.MatchContains, "Dining & Restaurants", 75},
	{"starbucks", models.MatchContains, "Dining & Restaurants", 70},
	{"mcdonald", models.MatchContains, "Dining & Restaurants", 70},
	{"chipotle", models.MatchContains, "Dining & Restaurants", 70},
	{"dunkin", models.MatchContains, "Dining & Restaurants", 70},
	{"subway", models.MatchContains, "Dining & Restaurants", 70},

	{"whole foods", models.MatchContains, "Groceries", 70},
	{"trader joe", models.MatchContains, "Groceries", 70},
	{"safeway", models.MatchContains, "Groceries", 65},
	{"kroger", models.MatchContains, "Groceries", 65},
	{"costco", models.MatchContains, "Groceries", 65},
	{"walmart", models.MatchContains, "Groceries", 60},

	{"lyft", models.MatchContains, "Transportation", 70},
	{"bart", models.MatchContains, "Transportation", 70},
	{"uber", models.MatchContains, "Transportation", 65},
	{"metro", models.MatchContains, "Transportation", 60},

	{"ebay", models.MatchContains, "Shopping", 60},
	{"etsy", models.MatchContains, "Shopping", 60},
	{"target", models.MatchContains, "Shopping", 55},
	{"amazon", models.MatchContains, "Shopping", 50},

	{"cvs", models.MatchContains, "Healthcare", 65},
	{"walgreens", models.MatchContains, "Healthcare", 65},
	{"rite aid", models.MatchContains, "Healthcare", 65},
	{"pharmacy", models.MatchContains, "Healthcare", 60},

	{"pg&e", models.MatchContains, "Utilities", 70},
	{"electric bill", models.MatchContains, "Utilities", 70},
	{"comcast", models.MatchContains, "Utilities", 65},
	{"verizon", models.MatchContains, "Utilities", 65},
	{"internet", models.MatchContains, "Utilities", 55},

	{"ticketmaster", models.MatchContains, "Entertainment", 70},
	{"amc theatre", models.MatchContains, "Entertainment", 70},
	{"eventbrite", models.MatchContains, "Entertainment", 65},

	{"airbnb", models.MatchContains, "Travel", 75},
	{"marriott", models.MatchContains, "Travel", 70},
	{"hilton", models.MatchContains, "Travel", 70},
	{"united airlines", models.MatchContains, "Travel", 70},
	{"delta", models.MatchContains, "Travel", 65},
	{"hotel", models.MatchContains, "Travel", 55},

	{"bank fee", models.MatchContains, "Finance & Banking", 70},
	{"interest charge", models.MatchContains, "Finance & Banking", 70},
	{"atm withdrawal", models.MatchContains, "Finance & Banking", 65},
	{"venmo", models.MatchContains, "Finance & Banking", 55},
	{"zelle", models.MatchContains, "Finance & Banking", 55},
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

	if err := repository.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	ruleRepo := repository.NewRuleRepository(db, appLogger)

	// Categories are idempotent by name, so the seeder is safe to re-run.
	categoryIDs := make(map[string]int64, len(defaultCategories))
	created := 0
	for _, seed := range defaultCategories {
		existing, err := categoryRepo.GetByName(ctx, seed.name)
		if err != nil {
			appLogger.Fatal("Failed to look up category", zap.String("name", seed.name), zap.Error(err))
		}
		if existing != nil {
			categoryIDs[seed.name] = existing.ID
			continue
		}
		category := &models.Category{
			Name:      seed.name,
			Color:     seed.color,
			Icon:      seed.icon,
			IsDefault: true,
			CreatedAt: time.Now(),
		}
		if err := categoryRepo.Create(ctx, category); err != nil {
			appLogger.Fatal("Failed to create category", zap.String("name", seed.name), zap.Error(err))
		}
		categoryIDs[seed.name] = category.ID
		created++
	}
	appLogger.Info("Seeded categories", zap.Int("created", created), zap.Int("total", len(defaultCategories)))

	// Rules are seeded only into an empty table so user edits survive.
	existingRules, err := ruleRepo.List(ctx)
	if err != nil {
		appLogger.Fatal("Failed to list rules", zap.Error(err))
	}
	if len(existingRules) > 0 {
		appLogger.Info("Rules already present, skipping rule seed", zap.Int("count", len(existingRules)))
		return
	}

	for _, seed := range defaultRules {
		categoryID, ok := categoryIDs[seed.category]
		if !ok {
			appLogger.Warn("Rule references unknown category, skipping",
				zap.String("pattern", seed.pattern),
				zap.String("category", seed.category),
			)
			continue
		}
		rule := &models.Rule{
			Pattern:    seed.pattern,
			MatchType:  seed.matchType,
			CategoryID: categoryID,
			Priority:   seed.priority,
			IsActive:   true,
			CreatedAt:  time.Now(),
		}
		if err := ruleRepo.Create(ctx, rule); err != nil {
			appLogger.Fatal("Failed to create rule", zap.String("pattern", seed.pattern), zap.Error(err))
		}
	}
	appLogger.Info("Seeded rules", zap.Int("count", len(defaultRules)))
}
