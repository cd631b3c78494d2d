// Command seed loads the reference profiles, contracts and jobs into the
// configured database and prints a development token per profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"jobpay/internal/config"
	"jobpay/internal/repositories"
	"jobpay/internal/services/auth"
)

func main() {
	reset := flag.Bool("reset", false, "drop all ledger tables before seeding")
	tokens := flag.Bool("tokens", true, "print a bearer token for each seeded profile")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	db, err := repositories.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
	}()

	if *reset {
		if err := repositories.DropAll(db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Dropped ledger tables")
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	fixture := repositories.ReferenceFixture()
	if err := repositories.Seed(context.Background(), db, fixture); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	log.Printf("✅ Seeded %d profiles, %d contracts, %d jobs",
		len(fixture.Profiles), len(fixture.Contracts), len(fixture.Jobs))

	if !*tokens {
		return
	}
	authService := auth.NewService(repositories.NewProfileRepository(db), cfg.JWTSecret, cfg.JWTTTL)
	for _, p := range fixture.Profiles {
		token, err := authService.IssueToken(p)
		if err != nil {
			log.Fatalf("Failed to issue token for profile %d: %v", p.ID, err)
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", p.ID, p.Type, p.FullName(), token)
	}
}
