package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phoo-bakery/api/internal/auth"
	"github.com/phoo-bakery/api/internal/config"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/shopspring/decimal"
)

type cakeSeed struct {
	name      string
	size      string
	baseCost  int64
	basePrice int64
}

var defaultCakes = []cakeSeed{
	{"Classic Vanilla", "6 inch", 8000, 15000},
	{"Chocolate Fudge", "8 inch", 14000, 25000},
	{"Red Velvet", "8 inch", 15000, 27000},
	{"Thai Tea Crepe", "7 inch", 11000, 20000},
	{"Cheese Lava", "6 inch", 10000, 18000},
}

func main() {
	staff := flag.String("staff", "", "Print a staff token for this name and skip seeding")
	flag.Parse()

	cfg := config.Load()

	if *staff != "" {
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET must be set to issue staff tokens")
		}
		token, err := auth.GenerateToken(cfg.JWTSecret, *staff, auth.DefaultTTL)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		fmt.Println(token)
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction (all cake types or none)
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	created, err := seedCakes(ctx, database.New(pool).WithTx(tx))
	if err != nil {
		log.Fatalf("Failed to seed cakes: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Printf("Seed completed successfully (%d cake types created)", created)
}

// seedCakes creates each default cake type that doesn't exist yet.
func seedCakes(ctx context.Context, q *database.Queries) (int, error) {
	existing, err := q.ListCakes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cakes: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	created := 0
	for _, s := range defaultCakes {
		if have[s.name] {
			log.Printf("Cake '%s' already exists, skipping", s.name)
			continue
		}
		cake, err := q.CreateCake(ctx, database.CreateCakeParams{
			Name:      s.name,
			Size:      s.size,
			BaseCost:  money(s.baseCost),
			BasePrice: money(s.basePrice),
		})
		if err != nil {
			return created, fmt.Errorf("insert cake %q: %w", s.name, err)
		}
		log.Printf("Created cake '%s' (ID: %s)", cake.Name, cake.ID)
		created++
	}
	return created, nil
}

func money(v int64) pgtype.Numeric {
	d := decimal.NewFromInt(v)
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
